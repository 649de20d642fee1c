package ringvrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/codahale/ringvrf/transcript"
)

const (
	// SecretKeySize is the size, in bytes, of a secret key seed.
	SecretKeySize = 32

	// PublicKeySize is the size, in bytes, of an encoded public key.
	PublicKeySize = curve.PointSize
)

// SecretKey is a signer's secret scalar, derived from a 32-byte seed.
type SecretKey struct {
	seed [SecretKeySize]byte
	x    *big.Int
	pk   PublicKey
}

// NewSecretKey derives a secret key from the given seed.
func NewSecretKey(seed []byte) (*SecretKey, error) {
	if len(seed) != SecretKeySize {
		return nil, fmt.Errorf("%w: seed is %d bytes, want %d", ErrInvalidSecretKey, len(seed), SecretKeySize)
	}

	p := transcript.New("ringvrf secret key")
	defer p.Clear()
	p.Mix("seed", seed)

	uniform := p.Derive("scalar", nil, curve.UniformSize)
	x := curve.ScalarFromUniform(uniform)
	clear(uniform)
	if x.Sign() == 0 {
		return nil, ErrInvalidSecretKey
	}

	sk := &SecretKey{x: x, pk: PublicKey{p: curve.MulGenerator(x)}}
	copy(sk.seed[:], seed)
	return sk, nil
}

// GenerateSecretKey returns a secret key with a seed read from the given reader. If rand is nil, crypto/rand is used.
func GenerateSecretKey(r io.Reader) (*SecretKey, error) {
	if r == nil {
		r = rand.Reader
	}

	var seed [SecretKeySize]byte
	defer clear(seed[:])
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return nil, fmt.Errorf("ringvrf: generating secret key: %w", err)
	}
	return NewSecretKey(seed[:])
}

// PublicKey returns the public key x·G.
func (sk *SecretKey) PublicKey() PublicKey {
	return sk.pk
}

// Bytes returns the seed the secret key was derived from.
func (sk *SecretKey) Bytes() []byte {
	return append([]byte(nil), sk.seed[:]...)
}

// Equal returns true if the two secret keys are identical. It runs in constant time.
func (sk *SecretKey) Equal(other *SecretKey) bool {
	return subtle.ConstantTimeCompare(sk.seed[:], other.seed[:]) == 1
}

// Clear zeroes the secret key. It must not be used afterward.
func (sk *SecretKey) Clear() {
	clear(sk.seed[:])
	clearScalar(sk.x)
}

// clearScalar zeroes the words backing x before resetting it.
func clearScalar(x *big.Int) {
	clear(x.Bits())
	x.SetInt64(0)
}

// PublicKey is a ring member's public key, a non-identity point in the prime-order subgroup.
type PublicKey struct {
	p curve.Point
}

// ParsePublicKey decodes a public key, rejecting non-canonical encodings, points outside the prime-order subgroup and
// the identity.
func ParsePublicKey(b []byte) (PublicKey, error) {
	p, err := curve.Decode(b)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}

	if p.IsZero() {
		return PublicKey{}, fmt.Errorf("%w: identity", ErrInvalidPublicKey)
	}

	return PublicKey{p: p}, nil
}

// ParseRing decodes a whitespace-separated list of hex-encoded public keys.
func ParseRing(s string) ([]PublicKey, error) {
	fields := strings.Fields(s)
	keys := make([]PublicKey, len(fields))
	for i, f := range fields {
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("%w: key %d: %w", ErrInvalidPublicKey, i, err)
		}

		if keys[i], err = ParsePublicKey(b); err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
	}
	return keys, nil
}

// Bytes returns the canonical encoding of the public key.
func (pk PublicKey) Bytes() []byte {
	b := curve.Encode(&pk.p)
	return b[:]
}

// Equal returns true if the two public keys are the same point.
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.p.Equal(&other.p)
}

// valid returns false for the zero value and the identity. Parsed keys are always valid.
func (pk PublicKey) valid() bool {
	return pk.p.IsOnCurve() && !pk.p.IsZero()
}

func (pk PublicKey) String() string {
	return hex.EncodeToString(pk.Bytes())
}
