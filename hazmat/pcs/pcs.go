// Package pcs implements the KZG polynomial commitment setup used by the ring proof: parsing and validating a
// structured reference string (SRS) and deriving gnark-crypto KZG proving and verifying keys from it.
//
// An SRS is encoded in the uncompressed arkworks layout:
//
//	u64le(n1) || n1 * G1 (96 bytes each) || u64le(n2) || n2 * G2 (192 bytes each)
//
// where the G1 points are [τ⁰]G₁, [τ¹]G₁, … and the G2 points are [τ⁰]G₂, [τ¹]G₂, …. Points use the zcash flag
// bits and are checked for subgroup membership.
package pcs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

const (
	// MinDomainSize is the smallest evaluation domain a ring proof uses.
	MinDomainSize = 512

	// MinG1 is the minimum number of G1 powers an SRS must carry to support the smallest domain.
	MinG1 = MinDomainSize + 1

	// MinG2 is the minimum number of G2 powers an SRS must carry.
	MinG2 = 2

	g1Size = bls12381.SizeOfG1AffineUncompressed
	g2Size = bls12381.SizeOfG2AffineUncompressed
)

var (
	// ErrMalformed is returned when an SRS encoding has the wrong structure or too few powers.
	ErrMalformed = errors.New("pcs: malformed SRS")

	// ErrInvalidPoint is returned when an SRS contains a point which is not a valid group element.
	ErrInvalidPoint = errors.New("pcs: invalid SRS point")
)

// SRS is a validated structured reference string. It is immutable and safe for concurrent use.
type SRS struct {
	g1 []bls12381.G1Affine
	g2 []bls12381.G2Affine
}

// Parse decodes and validates an SRS.
func Parse(b []byte) (*SRS, error) {
	n1, rest, err := readCount(b, g1Size)
	if err != nil {
		return nil, err
	}
	g1Bytes, rest := rest[:n1*g1Size], rest[n1*g1Size:]

	n2, rest, err := readCount(rest, g2Size)
	if err != nil {
		return nil, err
	}
	if len(rest) != n2*g2Size {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(rest)-n2*g2Size)
	}

	if n1 < MinG1 || n2 < MinG2 {
		return nil, fmt.Errorf("%w: %d G1 and %d G2 powers, need at least %d and %d", ErrMalformed, n1, n2, MinG1, MinG2)
	}

	s := &SRS{
		g1: make([]bls12381.G1Affine, n1),
		g2: make([]bls12381.G2Affine, n2),
	}

	for i := range s.g1 {
		buf := g1Bytes[i*g1Size : (i+1)*g1Size]
		if n, err := s.g1[i].SetBytes(buf); err != nil || n != g1Size {
			return nil, fmt.Errorf("%w: G1 power %d", ErrInvalidPoint, i)
		}
	}

	for i := range s.g2 {
		buf := rest[i*g2Size : (i+1)*g2Size]
		if n, err := s.g2[i].SetBytes(buf); err != nil || n != g2Size {
			return nil, fmt.Errorf("%w: G2 power %d", ErrInvalidPoint, i)
		}
	}

	_, _, g1Gen, g2Gen := bls12381.Generators()
	if !s.g1[0].Equal(&g1Gen) || !s.g2[0].Equal(&g2Gen) {
		return nil, fmt.Errorf("%w: first powers are not the generators", ErrMalformed)
	}
	if s.g2[1].IsInfinity() || s.g2[1].Equal(&g2Gen) {
		return nil, fmt.Errorf("%w: degenerate toxic waste", ErrMalformed)
	}

	return s, nil
}

// Load reads an SRS from r until EOF and parses it.
func Load(r io.Reader) (*SRS, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pcs: reading SRS: %w", err)
	}
	return Parse(b)
}

// LoadFile reads and parses the SRS file at the given path.
func LoadFile(path string) (*SRS, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pcs: opening SRS: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// AppendBinary appends the arkworks encoding of the SRS to b.
func (s *SRS) AppendBinary(b []byte) ([]byte, error) {
	b = binary.LittleEndian.AppendUint64(b, uint64(len(s.g1)))
	for i := range s.g1 {
		raw := s.g1[i].RawBytes()
		b = append(b, raw[:]...)
	}
	b = binary.LittleEndian.AppendUint64(b, uint64(len(s.g2)))
	for i := range s.g2 {
		raw := s.g2[i].RawBytes()
		b = append(b, raw[:]...)
	}
	return b, nil
}

// MarshalBinary returns the arkworks encoding of the SRS.
func (s *SRS) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, 16+len(s.g1)*g1Size+len(s.g2)*g2Size))
}

// WriteTo writes the arkworks encoding of the SRS to w.
func (s *SRS) WriteTo(w io.Writer) (int64, error) {
	b, _ := s.MarshalBinary()
	n, err := w.Write(b)
	return int64(n), err
}

// Powers returns the number of G1 and G2 powers in the SRS.
func (s *SRS) Powers() (g1, g2 int) {
	return len(s.g1), len(s.g2)
}

// MaxDomainSize returns the largest power-of-two domain size n for which the SRS holds the n+1 G1 powers a ring proof
// commits with.
func (s *SRS) MaxDomainSize() int {
	return 1 << (bits.Len(uint(len(s.g1)-1)) - 1)
}

// ProvingKey returns a KZG proving key holding the first n+1 G1 powers. The domain size must not exceed
// MaxDomainSize.
func (s *SRS) ProvingKey(n int) kzg.ProvingKey {
	if n > s.MaxDomainSize() {
		panic("pcs: domain size exceeds SRS")
	}
	return kzg.ProvingKey{G1: s.g1[:n+1]}
}

// Tau returns [τ]G₂, the only SRS element a verifier needs.
func (s *SRS) Tau() bls12381.G2Affine {
	return s.g2[1]
}

// VerifyingKey returns a KZG verifying key for the given [τ]G₂ with precomputed pairing lines.
func VerifyingKey(tau *bls12381.G2Affine) kzg.VerifyingKey {
	_, _, g1, g2 := bls12381.Generators()

	var vk kzg.VerifyingKey
	vk.G1 = g1
	vk.G2[0] = g2
	vk.G2[1] = *tau
	vk.Lines[0] = bls12381.PrecomputeLines(vk.G2[0])
	vk.Lines[1] = bls12381.PrecomputeLines(vk.G2[1])
	return vk
}

// readCount reads a little-endian u64 point count and checks that b holds at least that many points of the given
// size after it.
func readCount(b []byte, size int) (int, []byte, error) {
	if len(b) < 8 {
		return 0, nil, fmt.Errorf("%w: truncated length", ErrMalformed)
	}

	n := binary.LittleEndian.Uint64(b)
	b = b[8:]
	if n > uint64(len(b)/size) {
		return 0, nil, fmt.Errorf("%w: %d points declared, %d bytes remain", ErrMalformed, n, len(b))
	}

	return int(n), b, nil
}
