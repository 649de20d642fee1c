// Package curve implements the Bandersnatch group operations the ring VRF needs on top of gnark-crypto: a canonical
// point encoding with subgroup validation, scalars modulo the prime subgroup order, and hashing to the curve.
//
// Bandersnatch is the twisted Edwards curve -5x² + y² = 1 + dx²y² over the BLS12-381 scalar field, so its coordinates
// are native elements of the field the ring proof is computed over.
//
// Points are encoded in 32 bytes: the y coordinate in little-endian order, with the most significant bit of the last
// byte set if and only if x is lexicographically largest. Scalars are encoded in 32 bytes, little-endian, and must be
// less than the group order.
package curve

import (
	"errors"
	"math/big"
	"slices"
	"sync"

	"github.com/codahale/ringvrf/transcript"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const (
	// PointSize is the size, in bytes, of an encoded point.
	PointSize = fr.Bytes

	// ScalarSize is the size, in bytes, of an encoded scalar.
	ScalarSize = 32

	// UniformSize is the number of uniform bytes reduced to produce a scalar with negligible bias.
	UniformSize = 64

	// ScalarBits is the bit length of the group order.
	ScalarBits = 253
)

var (
	// ErrInvalidEncoding is returned when a point or scalar encoding is not canonical.
	ErrInvalidEncoding = errors.New("curve: invalid encoding")

	// ErrNotInSubgroup is returned when a point is on the curve but outside the prime-order subgroup.
	ErrNotInSubgroup = errors.New("curve: point not in prime-order subgroup")

	// ErrHashToCurve is returned when hashing to the curve exhausts its attempts.
	ErrHashToCurve = errors.New("curve: hash to curve failed")
)

// Point is an affine Bandersnatch point.
type Point = bandersnatch.PointAffine

var params = sync.OnceValue(func() *bandersnatch.CurveParams {
	c := bandersnatch.GetEdwardsCurve()
	return &c
})

// Order returns the order of the prime-order subgroup.
func Order() *big.Int {
	p := params()
	return new(big.Int).Set(&p.Order)
}

// A returns the curve coefficient a.
func A() fr.Element {
	return params().A
}

// D returns the curve coefficient d.
func D() fr.Element {
	return params().D
}

// Generator returns the generator of the prime-order subgroup.
func Generator() Point {
	return params().Base
}

// Identity returns the neutral element (0, 1).
func Identity() Point {
	var p Point
	p.Y.SetOne()
	return p
}

// BlindingBase returns the fixed point used to blind public keys. Its discrete logarithm with respect to the generator
// is unknown.
func BlindingBase() Point {
	return blindingBase()
}

// PaddingPoint returns the fixed point that fills ring slots beyond the end of a ring. Its discrete logarithm with
// respect to the generator is unknown, so no signer can occupy a padded slot.
func PaddingPoint() Point {
	return paddingPoint()
}

var (
	blindingBase = sync.OnceValue(func() Point {
		return mustHash("ringvrf blinding base")
	})
	paddingPoint = sync.OnceValue(func() Point {
		return mustHash("ringvrf padding")
	})
)

func mustHash(domain string) Point {
	p, err := HashToCurve(domain, nil)
	if err != nil {
		panic(err)
	}
	return p
}

// Encode returns the canonical encoding of p.
func Encode(p *Point) [PointSize]byte {
	return p.Bytes()
}

// Decode parses a canonical point encoding and checks that the point lies in the prime-order subgroup.
func Decode(b []byte) (Point, error) {
	if len(b) != PointSize {
		return Point{}, ErrInvalidEncoding
	}

	var buf [PointSize]byte
	copy(buf[:], b)
	slices.Reverse(buf[:])
	negative := buf[0]&0x80 != 0
	buf[0] &= 0x7f

	y, err := fr.BigEndian.Element(&buf)
	if err != nil {
		return Point{}, ErrInvalidEncoding
	}

	x, ok := recoverX(&y)
	if !ok || (x.IsZero() && negative) {
		return Point{}, ErrInvalidEncoding
	}
	if x.LexicographicallyLargest() != negative {
		x.Neg(&x)
	}

	p := Point{X: x, Y: y}
	if !p.IsOnCurve() {
		return Point{}, ErrInvalidEncoding
	}

	if !InSubgroup(&p) {
		return Point{}, ErrNotInSubgroup
	}

	return p, nil
}

// InSubgroup reports whether p, assumed to be on the curve, lies in the prime-order subgroup.
func InSubgroup(p *Point) bool {
	q := mulVartime(p, &params().Order)
	return q.IsZero()
}

// HashToCurve maps the given message to a point in the prime-order subgroup using try-and-increment. Candidate y
// coordinates are derived from a transcript bound to the domain and message; the first candidate with a valid x
// coordinate is multiplied by the cofactor.
func HashToCurve(domain string, msg []byte) (Point, error) {
	p := transcript.New("ringvrf hash to curve")
	p.Mix("domain", []byte(domain))
	p.Mix("message", msg)

	for range maxHashAttempts {
		var buf [PointSize]byte
		p.Derive("candidate", buf[:0], PointSize)
		slices.Reverse(buf[:])
		negative := buf[0]&0x80 != 0
		buf[0] &= 0x7f

		var y fr.Element
		y.SetBytes(buf[:])

		x, ok := recoverX(&y)
		if !ok {
			continue
		}
		if x.LexicographicallyLargest() != negative {
			x.Neg(&x)
		}

		candidate := Point{X: x, Y: y}
		q := clearCofactor(&candidate)
		if q.IsZero() {
			continue
		}
		return q, nil
	}

	return Point{}, ErrHashToCurve
}

// Mul returns s*p. The point must be in the prime-order subgroup.
func Mul(p *Point, s *big.Int) Point {
	var q Point
	q.ScalarMultiplication(p, s)
	return q
}

// MulGenerator returns s*G.
func MulGenerator(s *big.Int) Point {
	g := Generator()
	return Mul(&g, s)
}

// Add returns p+q.
func Add(p, q *Point) Point {
	var r Point
	r.Add(p, q)
	return r
}

// Sub returns p-q.
func Sub(p, q *Point) Point {
	var n, r Point
	n.Neg(q)
	r.Add(p, &n)
	return r
}

// ScalarFromUniform reduces the given uniform bytes (at least UniformSize of them) modulo the group order.
func ScalarFromUniform(b []byte) *big.Int {
	s := new(big.Int).SetBytes(b)
	return s.Mod(s, &params().Order)
}

// EncodeScalar returns the canonical little-endian encoding of s, which must be reduced.
func EncodeScalar(s *big.Int) [ScalarSize]byte {
	var buf [ScalarSize]byte
	s.FillBytes(buf[:])
	slices.Reverse(buf[:])
	return buf
}

// DecodeScalar parses a canonical little-endian scalar.
func DecodeScalar(b []byte) (*big.Int, error) {
	if len(b) != ScalarSize {
		return nil, ErrInvalidEncoding
	}

	buf := slices.Clone(b)
	slices.Reverse(buf)
	s := new(big.Int).SetBytes(buf)
	if s.Cmp(&params().Order) >= 0 {
		return nil, ErrInvalidEncoding
	}
	return s, nil
}

// recoverX solves the curve equation for x given y, returning one of the two roots.
func recoverX(y *fr.Element) (fr.Element, bool) {
	c := params()

	// x² = (1 - y²) / (a - d*y²)
	var one, y2, num, den, x fr.Element
	one.SetOne()
	y2.Square(y)
	num.Sub(&one, &y2)
	den.Mul(&c.D, &y2)
	den.Sub(&c.A, &den)
	if den.IsZero() {
		return fr.Element{}, false
	}
	x.Div(&num, &den)
	if x.Sqrt(&x) == nil {
		return fr.Element{}, false
	}
	return x, true
}

// mulVartime computes s*p with a plain double-and-add ladder. Unlike the GLV multiplication used elsewhere, it is
// correct for points outside the prime-order subgroup.
func mulVartime(p *Point, s *big.Int) Point {
	var acc, base bandersnatch.PointExtended
	id := Identity()
	acc.FromAffine(&id)
	base.FromAffine(p)

	for i := s.BitLen() - 1; i >= 0; i-- {
		acc.Double(&acc)
		if s.Bit(i) == 1 {
			acc.Add(&acc, &base)
		}
	}

	var q Point
	q.FromExtended(&acc)
	return q
}

// clearCofactor returns 4*p.
func clearCofactor(p *Point) Point {
	var e bandersnatch.PointExtended
	e.FromAffine(p)
	e.Double(&e)
	e.Double(&e)

	var q Point
	q.FromExtended(&e)
	return q
}

const maxHashAttempts = 256
