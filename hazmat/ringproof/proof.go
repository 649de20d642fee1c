package ringproof

import (
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

// ProofSize is the size, in bytes, of an encoded proof.
const ProofSize = (witnessColumns+quotientChunks+2)*bls12381.SizeOfG1AffineCompressed + evaluationCount*fr.Bytes

const (
	witnessColumns  = 4
	zetaEvals       = 8
	shiftedEvals    = 3
	evaluationCount = zetaEvals + shiftedEvals
)

// ErrInvalidProof is returned when a proof encoding is malformed.
var ErrInvalidProof = errors.New("ringproof: invalid proof")

// Proof is a ring membership proof.
type Proof struct {
	// Commitments to the witness columns: selector bits, accumulator coordinates and selection counter.
	b, accX, accY, counter kzg.Digest

	// Commitments to the quotient chunks.
	quotient [quotientChunks]kzg.Digest

	evals evaluations

	// Aggregated opening proofs at ζ and ζω.
	openZeta, openZetaOmega kzg.Digest
}

// evaluations holds the claimed values of the columns at the challenge points.
type evaluations struct {
	// px, py, sel, b, accX, accY, counter, quotient at ζ.
	atZeta [zetaEvals]fr.Element
	// accX, accY, counter at ζω.
	atZetaOmega [shiftedEvals]fr.Element
}

// Evaluation indexes into atZeta.
const (
	evalPx = iota
	evalPy
	evalSel
	evalB
	evalAccX
	evalAccY
	evalCounter
	evalQuotient
)

func (e *evaluations) all() []fr.Element {
	all := make([]fr.Element, 0, evaluationCount)
	all = append(all, e.atZeta[:]...)
	return append(all, e.atZetaOmega[:]...)
}

func (p *Proof) digests() []*kzg.Digest {
	d := []*kzg.Digest{&p.b, &p.accX, &p.accY, &p.counter}
	for i := range p.quotient {
		d = append(d, &p.quotient[i])
	}
	return append(d, &p.openZeta, &p.openZetaOmega)
}

// AppendBinary appends the encoding of the proof to b: the column commitments, the quotient chunk commitments, the
// evaluations as little-endian field elements, and the two opening proofs.
func (p *Proof) AppendBinary(b []byte) ([]byte, error) {
	digests := p.digests()
	for _, d := range digests[:witnessColumns+quotientChunks] {
		enc := d.Bytes()
		b = append(b, enc[:]...)
	}

	for _, e := range p.evals.all() {
		var buf [fr.Bytes]byte
		fr.LittleEndian.PutElement(&buf, e)
		b = append(b, buf[:]...)
	}

	for _, d := range digests[witnessColumns+quotientChunks:] {
		enc := d.Bytes()
		b = append(b, enc[:]...)
	}

	return b, nil
}

// MarshalBinary returns the encoding of the proof.
func (p *Proof) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, ProofSize))
}

// UnmarshalBinary decodes a proof, rejecting invalid group elements and non-canonical field elements.
func (p *Proof) UnmarshalBinary(b []byte) error {
	if len(b) != ProofSize {
		return ErrInvalidProof
	}

	var q Proof
	digests := q.digests()
	for _, d := range digests[:witnessColumns+quotientChunks] {
		if !setG1(d, b[:bls12381.SizeOfG1AffineCompressed]) {
			return ErrInvalidProof
		}
		b = b[bls12381.SizeOfG1AffineCompressed:]
	}

	for i := range evaluationCount {
		e, err := fr.LittleEndian.Element((*[fr.Bytes]byte)(b[:fr.Bytes]))
		if err != nil {
			return ErrInvalidProof
		}
		if i < zetaEvals {
			q.evals.atZeta[i] = e
		} else {
			q.evals.atZetaOmega[i-zetaEvals] = e
		}
		b = b[fr.Bytes:]
	}

	for _, d := range digests[witnessColumns+quotientChunks:] {
		if !setG1(d, b[:bls12381.SizeOfG1AffineCompressed]) {
			return ErrInvalidProof
		}
		b = b[bls12381.SizeOfG1AffineCompressed:]
	}

	*p = q
	return nil
}
