package ringvrf

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/codahale/ringvrf/hazmat/pedersen"
	"github.com/codahale/ringvrf/hazmat/ringproof"
	"github.com/codahale/ringvrf/transcript"
)

const (
	// OutputSize is the size, in bytes, of a VRF output.
	OutputSize = 32

	// SignatureSize is the size, in bytes, of an encoded signature: the output point Γ, the Pedersen proof and the
	// ring proof.
	SignatureSize = curve.PointSize + pedersen.ProofSize + ringproof.ProofSize
)

// Signature is an anonymous ring VRF signature. It carries the VRF output point Γ and proofs that Γ was computed with
// the secret key of some member of the ring.
type Signature struct {
	gamma    curve.Point
	pedersen pedersen.Proof
	ring     ringproof.Proof
}

// ParseSignature decodes a signature, rejecting non-canonical encodings.
func ParseSignature(b []byte) (*Signature, error) {
	if len(b) != SignatureSize {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrMalformedSignature, len(b), SignatureSize)
	}

	var sig Signature
	var err error
	if sig.gamma, err = curve.Decode(b[:curve.PointSize]); err != nil {
		return nil, fmt.Errorf("%w: output point: %w", ErrMalformedSignature, err)
	}
	if sig.gamma.IsZero() {
		return nil, fmt.Errorf("%w: output point is the identity", ErrMalformedSignature)
	}
	b = b[curve.PointSize:]

	if err := sig.pedersen.UnmarshalBinary(b[:pedersen.ProofSize]); err != nil {
		return nil, fmt.Errorf("%w: pedersen proof: %w", ErrMalformedSignature, err)
	}
	b = b[pedersen.ProofSize:]

	if err := sig.ring.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: ring proof: %w", ErrMalformedSignature, err)
	}

	return &sig, nil
}

// AppendBinary appends the encoding of the signature to b.
func (s *Signature) AppendBinary(b []byte) ([]byte, error) {
	gamma := curve.Encode(&s.gamma)
	b = append(b, gamma[:]...)

	b, err := s.pedersen.AppendBinary(b)
	if err != nil {
		return nil, err
	}
	return s.ring.AppendBinary(b)
}

// MarshalBinary returns the encoding of the signature.
func (s *Signature) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(make([]byte, 0, SignatureSize))
}

// Bytes returns the encoding of the signature.
func (s *Signature) Bytes() []byte {
	b, _ := s.MarshalBinary()
	return b
}

// Sign returns a signature by the ring member at the given index over input and aux, along with the VRF output. The
// output depends only on the secret key and the input. If rnd is nil, crypto/rand is used for hedging.
func (r *Ring) Sign(rnd io.Reader, sk *SecretKey, index int, input, aux []byte) (*Signature, [OutputSize]byte, error) {
	var output [OutputSize]byte
	if index < 0 || index >= len(r.keys) {
		return nil, output, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(r.keys))
	}

	if !r.keys[index].Equal(sk.pk) {
		return nil, output, fmt.Errorf("%w: %d", ErrSecretKeyMismatch, index)
	}

	if rnd == nil {
		rnd = rand.Reader
	}
	var hedge [32]byte
	defer clear(hedge[:])
	if _, err := io.ReadFull(rnd, hedge[:]); err != nil {
		return nil, output, fmt.Errorf("ringvrf: reading randomness: %w", err)
	}

	// Hash the input to a point and calculate Γ = x·I.
	point, err := inputPoint(input)
	if err != nil {
		return nil, output, err
	}
	sig := &Signature{gamma: curve.Mul(&point, sk.x)}

	// Fork the statement into prover and verifier roles.
	statement := bindStatement(r.commitment, input, &sig.gamma, aux)
	prover, verifier := statement.Fork("role", []byte("prover"), []byte("verifier"))
	defer prover.Clear()

	// Derive a hedged blinding factor.
	secret := curve.EncodeScalar(sk.x)
	prover.Mix("prover-private", secret[:])
	clear(secret[:])
	prover.Mix("rand", hedge[:])
	blinding := curve.ScalarFromUniform(prover.Derive("blinding", nil, curve.UniformSize))
	defer clearScalar(blinding)

	blinded := pedersen.Blind(&sk.pk.p, blinding)
	yb := curve.Encode(&blinded)
	verifier.Mix("blinded-key", yb[:])

	proverRing, proverPedersen := prover.Fork("argument", []byte("ring"), []byte("pedersen"))
	defer proverRing.Clear()
	defer proverPedersen.Clear()
	verifierRing, verifierPedersen := verifier.Fork("argument", []byte("ring"), []byte("pedersen"))

	ring, ringBlinded, err := r.inner.Prove(proverRing, verifierRing, index, blinding)
	if err != nil {
		return nil, output, ringError(err)
	}
	if !ringBlinded.Equal(&blinded) {
		return nil, output, fmt.Errorf("ringvrf: ring proof is not for the blinded key")
	}
	sig.ring = *ring
	sig.pedersen = *pedersen.Prove(proverPedersen, verifierPedersen, sk.x, blinding, &point)

	return sig, outputFromGamma(input, &sig.gamma), nil
}

// Sign builds the ring for keys and returns a signature by the member at the given index. Use [Ring.Sign] to amortize
// ring construction over many signatures.
func Sign(rnd io.Reader, srs *SRS, sk *SecretKey, keys []PublicKey, index int, input, aux []byte) (*Signature, [OutputSize]byte, error) {
	if index < 0 || index >= len(keys) {
		return nil, [OutputSize]byte{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(keys))
	}

	if !keys[index].Equal(sk.pk) {
		return nil, [OutputSize]byte{}, fmt.Errorf("%w: %d", ErrSecretKeyMismatch, index)
	}

	r, err := NewRing(srs, keys)
	if err != nil {
		return nil, [OutputSize]byte{}, err
	}
	return r.Sign(rnd, sk, index, input, aux)
}

// Verify checks that the signature was made over input and aux by a member of the committed ring. If it is valid,
// returns true and the VRF output; otherwise, returns false and a zero output.
func (c *RingCommitment) Verify(input, aux []byte, sig *Signature) (bool, [OutputSize]byte) {
	var zero [OutputSize]byte
	if c == nil || c.inner == nil || sig == nil || !sig.gamma.IsOnCurve() || sig.gamma.IsZero() {
		return false, zero
	}

	point, err := inputPoint(input)
	if err != nil {
		return false, zero
	}

	statement := bindStatement(c, input, &sig.gamma, aux)
	_, verifier := statement.Fork("role", []byte("prover"), []byte("verifier"))

	yb := curve.Encode(&sig.pedersen.Blinded)
	verifier.Mix("blinded-key", yb[:])
	verifierRing, verifierPedersen := verifier.Fork("argument", []byte("ring"), []byte("pedersen"))

	if !pedersen.Verify(verifierPedersen, &point, &sig.gamma, &sig.pedersen) {
		return false, zero
	}

	if !ringproof.Verify(verifierRing, c.inner, &sig.pedersen.Blinded, &sig.ring) {
		return false, zero
	}

	return true, outputFromGamma(input, &sig.gamma)
}

// Verify decodes and checks an encoded signature against the ring commitment. It never returns an error: malformed
// signatures are invalid.
func Verify(c *RingCommitment, input, aux, sig []byte) (bool, [OutputSize]byte) {
	s, err := ParseSignature(sig)
	if err != nil {
		return false, [OutputSize]byte{}
	}
	return c.Verify(input, aux, s)
}

// Evaluate returns the VRF output of the secret key for the given input, as a verified signature would reveal it.
func (sk *SecretKey) Evaluate(input []byte) ([OutputSize]byte, error) {
	point, err := inputPoint(input)
	if err != nil {
		return [OutputSize]byte{}, err
	}
	gamma := curve.Mul(&point, sk.x)
	return outputFromGamma(input, &gamma), nil
}

func inputPoint(input []byte) (curve.Point, error) {
	p, err := curve.HashToCurve("ringvrf input", input)
	if err != nil {
		return curve.Point{}, fmt.Errorf("ringvrf: hashing input: %w", err)
	}
	return p, nil
}

// bindStatement returns a transcript bound to everything a verifier checks: the ring, the input, the output point and
// the auxiliary data.
func bindStatement(c *RingCommitment, input []byte, gamma *curve.Point, aux []byte) *transcript.Protocol {
	gb := curve.Encode(gamma)
	p := transcript.New("ringvrf")
	p.Mix("ring", c.Bytes())
	p.Mix("input", input)
	p.Mix("gamma", gb[:])
	p.Mix("aux", aux)
	return p
}

func outputFromGamma(input []byte, gamma *curve.Point) [OutputSize]byte {
	gb := curve.Encode(gamma)
	p := transcript.New("ringvrf output")
	p.Mix("input", input)
	p.Mix("gamma", gb[:])

	var out [OutputSize]byte
	p.Derive("output", out[:0], OutputSize)
	return out
}
