package ringvrf

import (
	"errors"
	"fmt"

	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/codahale/ringvrf/hazmat/ringproof"
)

// CommitmentSize is the size, in bytes, of an encoded ring commitment.
const CommitmentSize = ringproof.CommitmentSize

// Params holds the precomputed domain and proving key for rings up to a fixed capacity. Building rings from the same
// Params amortizes that setup. A Params is safe for concurrent use.
type Params struct {
	inner *ringproof.Params
}

// Setup returns parameters for rings of up to ringSize keys, using the smallest domain the SRS supports for that size.
// A ringSize of zero selects the largest domain. Rings must be built from parameters chosen by the same ring size for
// their commitments to match.
func Setup(srs *SRS, ringSize int) (*Params, error) {
	if ringSize < 0 {
		return nil, fmt.Errorf("ringvrf: invalid ring size %d", ringSize)
	}

	n, err := ringproof.DomainSize(srs.inner, ringSize)
	if err != nil {
		return nil, ringError(err)
	}

	p, err := ringproof.NewParams(srs.inner, n)
	if err != nil {
		return nil, ringError(err)
	}
	return &Params{inner: p}, nil
}

// Capacity returns the maximum number of keys in a ring built from these parameters.
func (p *Params) Capacity() int {
	return p.inner.Capacity()
}

// DomainSize returns the size of the evaluation domain.
func (p *Params) DomainSize() int {
	return p.inner.DomainSize()
}

// NewRing builds a ring from an ordered list of public keys. The order matters: a ring commitment binds each key to
// its position.
func (p *Params) NewRing(keys []PublicKey) (*Ring, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: empty ring", ErrInvalidPublicKey)
	}

	points := make([]curve.Point, len(keys))
	for i := range keys {
		if !keys[i].valid() {
			return nil, fmt.Errorf("%w: key %d", ErrInvalidPublicKey, i)
		}
		points[i] = keys[i].p
	}

	r, err := p.inner.NewRing(points)
	if err != nil {
		return nil, ringError(err)
	}

	return &Ring{
		keys:       append([]PublicKey(nil), keys...),
		inner:      r,
		commitment: &RingCommitment{inner: r.Commitment()},
	}, nil
}

// Ring is a prover's view of an ordered list of public keys. It is immutable and safe for concurrent use.
type Ring struct {
	keys       []PublicKey
	inner      *ringproof.Ring
	commitment *RingCommitment
}

// NewRing builds a ring over the smallest domain the SRS supports for len(keys) keys.
func NewRing(srs *SRS, keys []PublicKey) (*Ring, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: empty ring", ErrInvalidPublicKey)
	}

	p, err := Setup(srs, len(keys))
	if err != nil {
		return nil, err
	}
	return p.NewRing(keys)
}

// Commitment returns the ring's commitment.
func (r *Ring) Commitment() *RingCommitment {
	return r.commitment
}

// Len returns the number of keys in the ring.
func (r *Ring) Len() int {
	return len(r.keys)
}

// Keys returns a copy of the ring's keys.
func (r *Ring) Keys() []PublicKey {
	return append([]PublicKey(nil), r.keys...)
}

// RingCommitment is a succinct commitment to a ring, sufficient to verify signatures made by its members. It is
// immutable and safe for concurrent use.
type RingCommitment struct {
	inner *ringproof.Commitment
}

// Aggregate returns the commitment to the given ordered ring of public keys.
func Aggregate(srs *SRS, keys []PublicKey) (*RingCommitment, error) {
	r, err := NewRing(srs, keys)
	if err != nil {
		return nil, err
	}
	return r.Commitment(), nil
}

// ParseRingCommitment decodes a ring commitment.
func ParseRingCommitment(b []byte) (*RingCommitment, error) {
	var c ringproof.Commitment
	if err := c.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCommitment, err)
	}
	return &RingCommitment{inner: &c}, nil
}

// Capacity returns the maximum number of keys in a ring with this commitment's domain.
func (c *RingCommitment) Capacity() int {
	return c.inner.Capacity()
}

// Equal returns true if the two commitments are identical.
func (c *RingCommitment) Equal(other *RingCommitment) bool {
	return c.inner.Equal(other.inner)
}

// Bytes returns the encoding of the commitment.
func (c *RingCommitment) Bytes() []byte {
	b, _ := c.inner.MarshalBinary()
	return b
}

// AppendBinary appends the encoding of the commitment to b.
func (c *RingCommitment) AppendBinary(b []byte) ([]byte, error) {
	return c.inner.AppendBinary(b)
}

// MarshalBinary returns the encoding of the commitment.
func (c *RingCommitment) MarshalBinary() ([]byte, error) {
	return c.inner.MarshalBinary()
}

// UnmarshalBinary decodes a commitment.
func (c *RingCommitment) UnmarshalBinary(b []byte) error {
	parsed, err := ParseRingCommitment(b)
	if err != nil {
		return err
	}
	c.inner = parsed.inner
	return nil
}

func ringError(err error) error {
	switch {
	case errors.Is(err, ringproof.ErrRingTooLarge):
		return fmt.Errorf("%w: %w", ErrRingTooLarge, err)
	case errors.Is(err, ringproof.ErrIndexOutOfRange):
		return fmt.Errorf("%w: %w", ErrIndexOutOfRange, err)
	default:
		return fmt.Errorf("ringvrf: %w", err)
	}
}
