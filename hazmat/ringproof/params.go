// Package ringproof implements a zero-knowledge argument that a blinded Bandersnatch key is a member of a committed
// ring of public keys.
//
// The argument is a PLONK-style proof over the BLS12-381 scalar field with KZG commitments. Because Bandersnatch is
// defined over that field, point coordinates are native field elements and Edwards addition is a low-degree
// constraint. The evaluation domain of size n is laid out as:
//
//	rows [0, K)            ring keys, padded with a fixed point of unknown discrete log
//	rows [K, K+253)        powers 2ʲ·B of the blinding base
//	row  K+253             the accumulated blinded key
//	rows (K+253, n)        random values for zero knowledge
//
// where K = n - 257 is the ring capacity. The prover selects exactly one key row and the bits of the blinding
// factor, and accumulates the selected points; the accumulator must end at the blinded key.
package ringproof

import (
	"errors"
	"fmt"
	"math/bits"
	"sync"

	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/codahale/ringvrf/hazmat/pcs"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

const (
	// blindingRows is the number of rows holding powers of the blinding base.
	blindingRows = curve.ScalarBits

	// tailRows is the number of rows after the key and blinding rows: the final accumulator and the random rows.
	tailRows = 1 + zkRows

	// zkRows is the number of random rows in each witness column.
	zkRows = 3

	// reservedRows is the number of rows unavailable to ring keys.
	reservedRows = blindingRows + tailRows

	// quotientChunks is the number of degree-n chunks the quotient polynomial is split into.
	quotientChunks = 5

	// cosetFactor is the ratio between the quotient evaluation domain and the witness domain.
	cosetFactor = 8

	minLogDomain = 9
	maxLogDomain = 24
)

var (
	// ErrRingTooLarge is returned when a ring does not fit in the largest domain supported by an SRS.
	ErrRingTooLarge = errors.New("ringproof: ring too large")

	// ErrIndexOutOfRange is returned when the signer index is not a position in the ring.
	ErrIndexOutOfRange = errors.New("ringproof: index out of range")

	// ErrUnsatisfied is returned when the prover's witness does not satisfy the constraints.
	ErrUnsatisfied = errors.New("ringproof: witness does not satisfy constraints")

	// ErrInvalidDomain is returned when a domain size is not a supported power of two.
	ErrInvalidDomain = errors.New("ringproof: invalid domain size")
)

// Params holds the domain and proving key for rings of up to Capacity keys.
type Params struct {
	n      int
	logN   uint8
	domain *fft.Domain
	coset  *fft.Domain
	pk     kzg.ProvingKey
	tau    bls12381.G2Affine
}

// DomainSize returns the smallest supported domain size that fits a ring of the given size, or ErrRingTooLarge if the
// SRS cannot support it. A ring size of zero selects the largest domain the SRS supports.
func DomainSize(srs *pcs.SRS, ringSize int) (int, error) {
	maxN := srs.MaxDomainSize()
	if ringSize == 0 {
		return maxN, nil
	}

	n := pcs.MinDomainSize
	for n-reservedRows < ringSize {
		n <<= 1
	}

	if n > maxN {
		return 0, fmt.Errorf("%w: %d keys, capacity %d", ErrRingTooLarge, ringSize, maxN-reservedRows)
	}
	return n, nil
}

// NewParams returns the parameters for a domain of size n, which must be a power of two between pcs.MinDomainSize and
// the SRS's maximum domain size.
func NewParams(srs *pcs.SRS, n int) (*Params, error) {
	logN, err := logDomain(n)
	if err != nil {
		return nil, err
	}
	if n > srs.MaxDomainSize() {
		return nil, fmt.Errorf("%w: %d exceeds SRS", ErrInvalidDomain, n)
	}

	return &Params{
		n:      n,
		logN:   logN,
		domain: fft.NewDomain(uint64(n)),
		coset:  fft.NewDomain(uint64(cosetFactor * n)),
		pk:     srs.ProvingKey(n),
		tau:    srs.Tau(),
	}, nil
}

// DomainSize returns the size of the evaluation domain.
func (p *Params) DomainSize() int {
	return p.n
}

// Capacity returns the maximum number of keys in a ring.
func (p *Params) Capacity() int {
	return capacity(p.n)
}

// MaxCapacity returns the largest ring the SRS supports.
func MaxCapacity(srs *pcs.SRS) int {
	return capacity(srs.MaxDomainSize())
}

func capacity(n int) int {
	return n - reservedRows
}

// lastRow returns the index of the row holding the final accumulator.
func lastRow(n int) int {
	return n - tailRows
}

func logDomain(n int) (uint8, error) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, fmt.Errorf("%w: %d is not a power of two", ErrInvalidDomain, n)
	}

	logN := bits.TrailingZeros(uint(n))
	if logN < minLogDomain || logN > maxLogDomain {
		return 0, fmt.Errorf("%w: 2^%d", ErrInvalidDomain, logN)
	}
	return uint8(logN), nil
}

// rootOfUnity returns the generator of the multiplicative subgroup of size n.
func rootOfUnity(n int) fr.Element {
	w, err := fr.Generator(uint64(n))
	if err != nil {
		panic(err)
	}
	return w
}

// blindingPowers holds 2ʲ·B for j in [0, 253).
var blindingPowers = sync.OnceValue(func() []curve.Point {
	powers := make([]curve.Point, blindingRows)
	powers[0] = curve.BlindingBase()
	for j := 1; j < blindingRows; j++ {
		powers[j].Double(&powers[j-1])
	}
	return powers
})
