package script

import "fmt"

// ExecutionStack is the runtime state of one input's evaluation: the primary and alternate
// stacks plus the script currently running, which signature operations re-serialize.
type ExecutionStack struct {
	main [][]byte
	alt  [][]byte

	script     []byte
	codeSepPos int
	opCount    int
}

// NewExecutionStack returns an empty stack.
func NewExecutionStack() *ExecutionStack {
	return &ExecutionStack{}
}

// NewWitnessStack seeds a stack with witness items, bottom first.
func NewWitnessStack(items [][]byte) (*ExecutionStack, error) {
	if len(items) > MaxStackSize {
		return nil, fmt.Errorf("%d witness items: %w", len(items), ErrWitnessCountOverflow)
	}
	s := NewExecutionStack()
	for _, item := range items {
		if len(item) > MaxScriptElementSize {
			return nil, fmt.Errorf("witness item of %d bytes: %w", len(item), ErrPushSize)
		}
		s.Push(item)
	}
	return s, nil
}

// begin switches the stack to a new script. The value stacks are kept so an unlocking
// script can hand its results to the locking script.
func (s *ExecutionStack) begin(script []byte, opCount int) {
	s.script = script
	s.codeSepPos = 0
	s.opCount = opCount
	s.alt = s.alt[:0]
}

// Len returns the depth of the primary stack.
func (s *ExecutionStack) Len() int { return len(s.main) }

// Items returns the primary stack, bottom first.
func (s *ExecutionStack) Items() [][]byte {
	out := make([][]byte, len(s.main))
	copy(out, s.main)
	return out
}

// Push places an item on top of the primary stack.
func (s *ExecutionStack) Push(item []byte) {
	s.main = append(s.main, item)
}

func (s *ExecutionStack) pushBool(v bool) {
	if v {
		s.Push([]byte{1})
		return
	}
	s.Push(nil)
}

func (s *ExecutionStack) pushNum(n scriptNum) {
	s.Push(n.Bytes())
}

// Pop removes the top item.
func (s *ExecutionStack) Pop() ([]byte, error) {
	if len(s.main) == 0 {
		return nil, ErrInvalidStackOp
	}
	item := s.main[len(s.main)-1]
	s.main = s.main[:len(s.main)-1]
	return item, nil
}

// Peek returns the item depth positions below the top without removing it.
func (s *ExecutionStack) Peek(depth int) ([]byte, error) {
	if depth < 0 || depth >= len(s.main) {
		return nil, fmt.Errorf("peek %d of %d: %w", depth, len(s.main), ErrInvalidStackOp)
	}
	return s.main[len(s.main)-1-depth], nil
}

func (s *ExecutionStack) popNum(requireMinimal bool, maxLen int) (scriptNum, error) {
	item, err := s.Pop()
	if err != nil {
		return 0, err
	}
	return makeScriptNum(item, requireMinimal, maxLen)
}

func (s *ExecutionStack) peekNum(depth int, requireMinimal bool, maxLen int) (scriptNum, error) {
	item, err := s.Peek(depth)
	if err != nil {
		return 0, err
	}
	return makeScriptNum(item, requireMinimal, maxLen)
}

func (s *ExecutionStack) popBool() (bool, error) {
	item, err := s.Pop()
	if err != nil {
		return false, err
	}
	return asBool(item), nil
}

// nipN removes the item depth positions below the top and returns it.
func (s *ExecutionStack) nipN(depth int) ([]byte, error) {
	if depth < 0 || depth >= len(s.main) {
		return nil, ErrInvalidStackOp
	}
	idx := len(s.main) - 1 - depth
	item := s.main[idx]
	s.main = append(s.main[:idx], s.main[idx+1:]...)
	return item, nil
}

// dupN duplicates the top n items in order.
func (s *ExecutionStack) dupN(n int) error {
	if len(s.main) < n {
		return ErrInvalidStackOp
	}
	s.main = append(s.main, s.main[len(s.main)-n:]...)
	return nil
}

// overN copies the n items found n positions below the top.
func (s *ExecutionStack) overN(n int) error {
	if len(s.main) < 2*n {
		return ErrInvalidStackOp
	}
	start := len(s.main) - 2*n
	s.main = append(s.main, s.main[start:start+n]...)
	return nil
}

// rotN moves the block of n items found 2n positions below the top to the top.
func (s *ExecutionStack) rotN(n int) error {
	if len(s.main) < 3*n {
		return ErrInvalidStackOp
	}
	start := len(s.main) - 3*n
	moved := make([][]byte, n)
	copy(moved, s.main[start:start+n])
	s.main = append(s.main[:start], s.main[start+n:]...)
	s.main = append(s.main, moved...)
	return nil
}

// swapN swaps the top n items with the n items below them.
func (s *ExecutionStack) swapN(n int) error {
	if len(s.main) < 2*n {
		return ErrInvalidStackOp
	}
	top := len(s.main) - n
	below := len(s.main) - 2*n
	for i := 0; i < n; i++ {
		s.main[below+i], s.main[top+i] = s.main[top+i], s.main[below+i]
	}
	return nil
}

func (s *ExecutionStack) dropN(n int) error {
	if len(s.main) < n {
		return ErrInvalidStackOp
	}
	s.main = s.main[:len(s.main)-n]
	return nil
}

func (s *ExecutionStack) size() int {
	return len(s.main) + len(s.alt)
}

// asBool is false for empty strings, zero bytes and negative zero.
func asBool(v []byte) bool {
	for i, b := range v {
		if b != 0 {
			if i == len(v)-1 && b == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}
