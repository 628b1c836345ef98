package script

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SignatureVerifier checks an ECDSA signature over a 32-byte message.
	SignatureVerifier interface {
		Verify(message, signature, pubKey []byte) bool
	}
)
