package ringproof

import (
	"errors"
	"fmt"

	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/codahale/ringvrf/hazmat/pcs"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

// CommitmentSize is the size, in bytes, of an encoded ring commitment.
const CommitmentSize = 1 + 3*bls12381.SizeOfG1AffineCompressed + bls12381.SizeOfG2AffineCompressed

// ErrInvalidCommitment is returned when a ring commitment encoding is malformed.
var ErrInvalidCommitment = errors.New("ringproof: invalid ring commitment")

// Commitment is the verifier's view of a ring: KZG commitments to the fixed columns and the verifying key they were
// made under. It is immutable and safe for concurrent use.
type Commitment struct {
	logN        uint8
	px, py, sel kzg.Digest
	tau         bls12381.G2Affine
	vk          kzg.VerifyingKey
}

// DomainSize returns the size of the evaluation domain the ring was committed over.
func (c *Commitment) DomainSize() int {
	return 1 << c.logN
}

// Capacity returns the maximum number of keys a ring over this domain holds.
func (c *Commitment) Capacity() int {
	return capacity(c.DomainSize())
}

// Equal reports whether the two commitments are identical.
func (c *Commitment) Equal(other *Commitment) bool {
	return c.logN == other.logN && c.px.Equal(&other.px) && c.py.Equal(&other.py) && c.sel.Equal(&other.sel) &&
		c.tau.Equal(&other.tau)
}

// AppendBinary appends the encoding of the commitment to b.
func (c *Commitment) AppendBinary(b []byte) ([]byte, error) {
	b = append(b, c.logN)
	for _, d := range []*kzg.Digest{&c.px, &c.py, &c.sel} {
		enc := d.Bytes()
		b = append(b, enc[:]...)
	}
	tau := c.tau.Bytes()
	return append(b, tau[:]...), nil
}

// MarshalBinary returns the encoding of the commitment.
func (c *Commitment) MarshalBinary() ([]byte, error) {
	return c.AppendBinary(make([]byte, 0, CommitmentSize))
}

// UnmarshalBinary decodes a commitment, checking that every point is a valid group element.
func (c *Commitment) UnmarshalBinary(b []byte) error {
	if len(b) != CommitmentSize {
		return fmt.Errorf("%w: length %d", ErrInvalidCommitment, len(b))
	}

	logN := b[0]
	if logN < minLogDomain || logN > maxLogDomain {
		return fmt.Errorf("%w: domain 2^%d", ErrInvalidCommitment, logN)
	}
	b = b[1:]

	var digests [3]kzg.Digest
	for i := range digests {
		if !setG1(&digests[i], b[:bls12381.SizeOfG1AffineCompressed]) {
			return fmt.Errorf("%w: invalid column commitment", ErrInvalidCommitment)
		}
		b = b[bls12381.SizeOfG1AffineCompressed:]
	}

	var tau bls12381.G2Affine
	if n, err := tau.SetBytes(b); err != nil || n != bls12381.SizeOfG2AffineCompressed || tau.IsInfinity() {
		return fmt.Errorf("%w: invalid verifying key", ErrInvalidCommitment)
	}

	c.logN = logN
	c.px, c.py, c.sel = digests[0], digests[1], digests[2]
	c.tau = tau
	c.vk = pcs.VerifyingKey(&tau)
	return nil
}

// Ring is the prover's view of a ring: the keys, the fixed columns and their commitment.
type Ring struct {
	params     *Params
	keys       []curve.Point
	commitment Commitment

	// Fixed columns, in evaluation form over the domain and in coefficient form.
	px, py, sel                   []fr.Element
	pxCoeffs, pyCoeffs, selCoeffs []fr.Element
}

// NewRing builds the fixed columns for the given keys and commits to them. The keys must be in the prime-order
// subgroup.
func (p *Params) NewRing(keys []curve.Point) (*Ring, error) {
	if len(keys) > p.Capacity() {
		return nil, fmt.Errorf("%w: %d keys, capacity %d", ErrRingTooLarge, len(keys), p.Capacity())
	}

	n, k := p.n, p.Capacity()
	r := &Ring{
		params: p,
		keys:   append([]curve.Point(nil), keys...),
		px:     make([]fr.Element, n),
		py:     make([]fr.Element, n),
		sel:    make([]fr.Element, n),
	}

	padding := curve.PaddingPoint()
	for i := range k {
		pt := &padding
		if i < len(keys) {
			pt = &keys[i]
		}
		r.px[i], r.py[i] = pt.X, pt.Y
		r.sel[i].SetOne()
	}

	for j, pt := range blindingPowers() {
		r.px[k+j], r.py[k+j] = pt.X, pt.Y
	}

	r.pxCoeffs = p.interpolate(r.px)
	r.pyCoeffs = p.interpolate(r.py)
	r.selCoeffs = p.interpolate(r.sel)

	digests, err := p.commit(r.pxCoeffs, r.pyCoeffs, r.selCoeffs)
	if err != nil {
		return nil, err
	}

	r.commitment = Commitment{
		logN: p.logN,
		px:   digests[0],
		py:   digests[1],
		sel:  digests[2],
		tau:  p.tau,
		vk:   pcs.VerifyingKey(&p.tau),
	}

	return r, nil
}

// Commitment returns the ring's commitment.
func (r *Ring) Commitment() *Commitment {
	return &r.commitment
}

// Len returns the number of keys in the ring.
func (r *Ring) Len() int {
	return len(r.keys)
}

// Key returns the key at the given position.
func (r *Ring) Key(i int) curve.Point {
	return r.keys[i]
}

// interpolate returns the coefficients of the polynomial taking the given values over the domain.
func (p *Params) interpolate(values []fr.Element) []fr.Element {
	coeffs := append([]fr.Element(nil), values...)
	p.domain.FFTInverse(coeffs, fft.DIF)
	fft.BitReverse(coeffs)
	return coeffs
}

// onCoset returns the evaluations of the polynomial with the given coefficients over the quotient coset.
func (p *Params) onCoset(coeffs []fr.Element) []fr.Element {
	evals := make([]fr.Element, cosetFactor*p.n)
	copy(evals, coeffs)
	p.coset.FFT(evals, fft.DIF, fft.OnCoset())
	fft.BitReverse(evals)
	return evals
}

func (p *Params) commit(polys ...[]fr.Element) ([]kzg.Digest, error) {
	digests := make([]kzg.Digest, len(polys))
	for i, poly := range polys {
		d, err := kzg.Commit(poly, p.pk)
		if err != nil {
			return nil, fmt.Errorf("ringproof: commit: %w", err)
		}
		digests[i] = d
	}
	return digests, nil
}

// setG1 decodes a compressed G1 point, which must occupy all of b.
func setG1(p *bls12381.G1Affine, b []byte) bool {
	n, err := p.SetBytes(b)
	return err == nil && n == len(b)
}
