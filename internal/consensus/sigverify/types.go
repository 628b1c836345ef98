package sigverify

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// SignatureVerifier is the primitive wrapped by Cached.
	SignatureVerifier interface {
		Verify(message, signature, pubKey []byte) bool
	}

	// Metrics records signature cache lookups.
	Metrics interface {
		ObserveLookup(hit bool)
	}
)
