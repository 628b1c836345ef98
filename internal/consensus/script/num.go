package script

import (
	"fmt"
	"math"
)

const (
	defaultNumLen  = 4
	lockTimeNumLen = 5
)

// scriptNum is a numeric stack operand. Operands are little-endian sign-magnitude byte
// strings; results may exceed the operand width and are only range checked when consumed.
type scriptNum int64

// checkMinimalDataEncoding rejects numbers carrying a redundant most significant byte.
func checkMinimalDataEncoding(v []byte) error {
	if len(v) == 0 {
		return nil
	}
	if v[len(v)-1]&0x7f == 0 {
		if len(v) == 1 || v[len(v)-2]&0x80 == 0 {
			return fmt.Errorf("number %x: %w", v, ErrMinimalData)
		}
	}
	return nil
}

func makeScriptNum(v []byte, requireMinimal bool, maxLen int) (scriptNum, error) {
	if len(v) > maxLen {
		return 0, fmt.Errorf("%d byte number, max %d: %w", len(v), maxLen, ErrNumberTooBig)
	}
	if requireMinimal {
		if err := checkMinimalDataEncoding(v); err != nil {
			return 0, err
		}
	}
	if len(v) == 0 {
		return 0, nil
	}

	var result int64
	for i, b := range v {
		result |= int64(b) << uint8(8*i)
	}
	if v[len(v)-1]&0x80 != 0 {
		result &= ^(int64(0x80) << uint8(8*(len(v)-1)))
		return scriptNum(-result), nil
	}
	return scriptNum(result), nil
}

// Bytes encodes the number minimally.
func (n scriptNum) Bytes() []byte {
	if n == 0 {
		return nil
	}

	negative := n < 0
	if negative {
		n = -n
	}

	result := make([]byte, 0, 9)
	for n > 0 {
		result = append(result, byte(n&0xff))
		n >>= 8
	}

	if result[len(result)-1]&0x80 != 0 {
		extra := byte(0x00)
		if negative {
			extra = 0x80
		}
		result = append(result, extra)
	} else if negative {
		result[len(result)-1] |= 0x80
	}
	return result
}

// Int32 saturates the number into the int32 range.
func (n scriptNum) Int32() int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int32(n)
}

// EncodeNumber serializes an integer the way the script machine pushes numbers.
func EncodeNumber(n int64) []byte {
	return scriptNum(n).Bytes()
}

// PushNumber returns the single instruction that pushes n: OP_0, OP_1NEGATE, OP_1..OP_16
// or a minimal data push.
func PushNumber(n int64) []byte {
	switch {
	case n == 0:
		return []byte{OP_0}
	case n == -1:
		return []byte{OP_1NEGATE}
	case n >= 1 && n <= 16:
		return []byte{byte(OP_1 + n - 1)}
	}
	return PushData(EncodeNumber(n))
}

// PushData returns the minimal push instruction for data.
func PushData(data []byte) []byte {
	size := len(data)
	var out []byte
	switch {
	case size <= OP_DATA_75:
		out = append(out, byte(size))
	case size <= 0xff:
		out = append(out, OP_PUSHDATA1, byte(size))
	case size <= 0xffff:
		out = append(out, OP_PUSHDATA2, byte(size), byte(size>>8))
	default:
		out = append(out, OP_PUSHDATA4, byte(size), byte(size>>8), byte(size>>16), byte(size>>24))
	}
	return append(out, data...)
}
