package ringvrf

import "errors"

var (
	// ErrMalformedSRS is returned when an SRS encoding has the wrong structure, declares counts that do not match its
	// length, or carries too few powers.
	ErrMalformedSRS = errors.New("ringvrf: malformed SRS")

	// ErrInvalidPoint is returned when an SRS point fails its on-curve or subgroup check.
	ErrInvalidPoint = errors.New("ringvrf: invalid point")

	// ErrRingTooLarge is returned when a ring does not fit in the largest domain the SRS supports.
	ErrRingTooLarge = errors.New("ringvrf: ring too large")

	// ErrInvalidPublicKey is returned when a public key is not a canonical encoding of a non-identity point in the
	// prime-order subgroup, or when a ring is empty.
	ErrInvalidPublicKey = errors.New("ringvrf: invalid public key")

	// ErrIndexOutOfRange is returned when a signer index is not a position in the ring.
	ErrIndexOutOfRange = errors.New("ringvrf: index out of range")

	// ErrSecretKeyMismatch is returned when the ring key at the signer index does not belong to the secret key.
	ErrSecretKeyMismatch = errors.New("ringvrf: secret key does not match ring key at index")

	// ErrMalformedSignature is returned when a signature cannot be decoded.
	ErrMalformedSignature = errors.New("ringvrf: malformed signature")

	// ErrMalformedCommitment is returned when a ring commitment cannot be decoded.
	ErrMalformedCommitment = errors.New("ringvrf: malformed ring commitment")

	// ErrInvalidSecretKey is returned when a secret key seed has the wrong length.
	ErrInvalidSecretKey = errors.New("ringvrf: invalid secret key")
)
