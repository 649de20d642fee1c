// Package pedersen implements a Pedersen VRF proof over Bandersnatch.
//
// The prover shows that the VRF output point Γ = x·I and the blinded key Y = x·G + b·B share the secret x, without
// revealing x or the blinding factor b. The ring proof then shows that Y - b·B is a member of the ring, which ties the
// output to an anonymous ring member.
//
// Callers are responsible for binding the transcript to the input point, the output point and the blinded key before
// proving or verifying.
package pedersen

import (
	"crypto/subtle"
	"errors"
	"math/big"
	"slices"

	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/codahale/ringvrf/transcript"
)

// ProofSize is the size, in bytes, of an encoded proof.
const ProofSize = curve.PointSize + 3*curve.ScalarSize

// ErrIncompleteProof is returned when encoding a proof that was neither produced by Prove nor decoded.
var ErrIncompleteProof = errors.New("pedersen: incomplete proof")

// Proof is a Pedersen VRF proof.
type Proof struct {
	// Blinded is the blinded public key Y = x·G + b·B.
	Blinded curve.Point

	c, s, sb *big.Int
}

// Blind returns the blinded key x·G + b·B for a public key x·G and blinding factor b.
func Blind(pk *curve.Point, b *big.Int) curve.Point {
	base := curve.BlindingBase()
	bB := curve.Mul(&base, b)
	return curve.Add(pk, &bB)
}

// Prove returns a proof that Γ = x·I and Y = x·G + b·B for the given secret x and blinding factor b. Nonces are
// derived from the prover transcript; the challenge from the verifier transcript.
func Prove(prover, verifier *transcript.Protocol, x, b *big.Int, input *curve.Point) *Proof {
	order := curve.Order()
	base := curve.BlindingBase()

	// Calculate hedged nonces.
	k := curve.ScalarFromUniform(prover.Derive("pedersen-nonce", nil, curve.UniformSize))
	kb := curve.ScalarFromUniform(prover.Derive("pedersen-blinding-nonce", nil, curve.UniformSize))

	// Calculate the blinded key and the commitments.
	pk := curve.MulGenerator(x)
	y := Blind(&pk, b)
	kG := curve.MulGenerator(k)
	kbB := curve.Mul(&base, kb)
	r := curve.Add(&kG, &kbB)
	ok := curve.Mul(input, k)

	c := challenge(verifier, &y, &r, &ok)

	// s = k + c·x, sb = kb + c·b
	s := new(big.Int).Mul(c, x)
	s.Add(s, k).Mod(s, order)
	sb := new(big.Int).Mul(c, b)
	sb.Add(sb, kb).Mod(sb, order)

	// Leaking a nonce leaks x.
	clear(k.Bits())
	clear(kb.Bits())

	return &Proof{Blinded: y, c: c, s: s, sb: sb}
}

// Verify checks the proof against the input point and output point Γ.
func Verify(verifier *transcript.Protocol, input, gamma *curve.Point, p *Proof) bool {
	if p == nil || !p.complete() || !p.Blinded.IsOnCurve() || p.Blinded.IsZero() {
		return false
	}

	order := curve.Order()
	base := curve.BlindingBase()
	negC := new(big.Int).Sub(order, p.c)

	// R = s·G + sb·B - c·Y
	sG := curve.MulGenerator(p.s)
	sbB := curve.Mul(&base, p.sb)
	cY := curve.Mul(&p.Blinded, negC)
	r := curve.Add(&sG, &sbB)
	r = curve.Add(&r, &cY)

	// Ok = s·I - c·Γ
	sI := curve.Mul(input, p.s)
	cGamma := curve.Mul(gamma, negC)
	ok := curve.Add(&sI, &cGamma)

	expected := challenge(verifier, &p.Blinded, &r, &ok)
	return subtle.ConstantTimeCompare(scalarBytes(expected), scalarBytes(p.c)) == 1
}

// AppendBinary appends the encoding of the proof (Y || c || s || sb) to b.
func (p *Proof) AppendBinary(b []byte) ([]byte, error) {
	if !p.complete() {
		return nil, ErrIncompleteProof
	}

	y := curve.Encode(&p.Blinded)
	return slices.Concat(b, y[:], scalarBytes(p.c), scalarBytes(p.s), scalarBytes(p.sb)), nil
}

// MarshalBinary returns the encoding of the proof.
func (p *Proof) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, ProofSize))
}

// UnmarshalBinary decodes a proof, rejecting non-canonical scalars and blinded keys outside the prime-order subgroup.
func (p *Proof) UnmarshalBinary(b []byte) error {
	if len(b) != ProofSize {
		return curve.ErrInvalidEncoding
	}

	y, err := curve.Decode(b[:curve.PointSize])
	if err != nil {
		return err
	}

	var scalars [3]*big.Int
	for i := range scalars {
		off := curve.PointSize + i*curve.ScalarSize
		if scalars[i], err = curve.DecodeScalar(b[off : off+curve.ScalarSize]); err != nil {
			return err
		}
	}

	p.Blinded, p.c, p.s, p.sb = y, scalars[0], scalars[1], scalars[2]
	return nil
}

func (p *Proof) complete() bool {
	return p.c != nil && p.s != nil && p.sb != nil
}

func challenge(verifier *transcript.Protocol, y, r, ok *curve.Point) *big.Int {
	yb, rb, okb := curve.Encode(y), curve.Encode(r), curve.Encode(ok)
	verifier.Mix("pedersen-blinded-key", yb[:])
	verifier.Mix("pedersen-commitment", rb[:])
	verifier.Mix("pedersen-output-commitment", okb[:])
	return curve.ScalarFromUniform(verifier.Derive("pedersen-challenge", nil, curve.UniformSize))
}

func scalarBytes(s *big.Int) []byte {
	b := curve.EncodeScalar(s)
	return b[:]
}
