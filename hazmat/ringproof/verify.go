package ringproof

import (
	"math/big"

	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/codahale/ringvrf/transcript"
	"github.com/consensys/gnark-crypto/ecc"
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

// Verify checks that the proof shows the blinded key is a member of the committed ring.
func Verify(verifier *transcript.Protocol, c *Commitment, blinded *curve.Point, p *Proof) bool {
	n := c.DomainSize()
	bindStatement(verifier, c, blinded)

	// Replay the transcript.
	digests := p.digests()
	mixDigests(verifier, "ring-columns", digests[:witnessColumns])
	alpha := challenge(verifier, "ring-alpha")
	mixDigests(verifier, "ring-quotient", digests[witnessColumns:witnessColumns+quotientChunks])
	zeta := challenge(verifier, "ring-zeta")
	mixEvaluations(verifier, &p.evals)
	nu := challenge(verifier, "ring-nu")

	// Check the constraints at ζ against the claimed quotient.
	var zetaN, zh fr.Element
	zetaN.Exp(zeta, big.NewInt(int64(n)))
	one := fr.One()
	zh.Sub(&zetaN, &one)

	g := newGates(n)
	s, ok := g.at(&zeta, &zh)
	if !ok {
		return false
	}

	e := &p.evals
	r := row{
		px: e.atZeta[evalPx], py: e.atZeta[evalPy], sel: e.atZeta[evalSel],
		b: e.atZeta[evalB], accX: e.atZeta[evalAccX], accY: e.atZeta[evalAccY], counter: e.atZeta[evalCounter],
		accXNext: e.atZetaOmega[0], accYNext: e.atZetaOmega[1], counterNext: e.atZetaOmega[2],
	}
	a, d := curveCoefficients()
	lhs := combine(&r, &s, &alpha, blinded, &a, &d)

	var rhs fr.Element
	rhs.Mul(&e.atZeta[evalQuotient], &zh)
	if !lhs.Equal(&rhs) {
		return false
	}

	// Aggregate the quotient chunk commitments: Σ ζ^(i·n)·[tᵢ].
	var quotient kzg.Digest
	if _, err := quotient.MultiExp(p.quotient[:], powers(&zetaN, quotientChunks), ecc.MultiExpConfig{}); err != nil {
		return false
	}

	// Fold the commitments and claimed values with ν.
	nus := powers(&nu, zetaEvals)
	var atZeta, atZetaOmega kzg.Digest
	if _, err := atZeta.MultiExp(
		[]bls12381.G1Affine{c.px, c.py, c.sel, p.b, p.accX, p.accY, p.counter, quotient}, nus, ecc.MultiExpConfig{},
	); err != nil {
		return false
	}
	if _, err := atZetaOmega.MultiExp(
		[]bls12381.G1Affine{p.accX, p.accY, p.counter}, nus[:shiftedEvals], ecc.MultiExpConfig{},
	); err != nil {
		return false
	}

	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &g.omega)

	err := kzg.BatchVerifyMultiPoints(
		[]kzg.Digest{atZeta, atZetaOmega},
		[]kzg.OpeningProof{
			{H: p.openZeta, ClaimedValue: innerProduct(e.atZeta[:], nus)},
			{H: p.openZetaOmega, ClaimedValue: innerProduct(e.atZetaOmega[:], nus)},
		},
		[]fr.Element{zeta, zetaOmega},
		c.vk,
	)
	return err == nil
}

// bindStatement mixes the ring commitment and the blinded key into the transcript.
func bindStatement(verifier *transcript.Protocol, c *Commitment, blinded *curve.Point) {
	cb, _ := c.MarshalBinary()
	yb := curve.Encode(blinded)
	verifier.Mix("ring-commitment", cb)
	verifier.Mix("ring-blinded-key", yb[:])
}

func mixDigests(verifier *transcript.Protocol, label string, digests []*kzg.Digest) {
	values := make([][]byte, len(digests))
	for i, d := range digests {
		b := d.Bytes()
		values[i] = b[:]
	}
	verifier.MixAll(label, values...)
}

func mixEvaluations(verifier *transcript.Protocol, e *evaluations) {
	all := e.all()
	values := make([][]byte, len(all))
	for i := range all {
		var b [fr.Bytes]byte
		fr.LittleEndian.PutElement(&b, all[i])
		values[i] = b[:]
	}
	verifier.MixAll("ring-evaluations", values...)
}

// challenge derives a field element from the verifier transcript.
func challenge(verifier *transcript.Protocol, label string) fr.Element {
	var e fr.Element
	e.SetBytes(verifier.Derive(label, nil, 64))
	return e
}

// powers returns [1, x, x², …] of length n.
func powers(x *fr.Element, n int) []fr.Element {
	res := make([]fr.Element, n)
	res[0].SetOne()
	for i := 1; i < n; i++ {
		res[i].Mul(&res[i-1], x)
	}
	return res
}

// innerProduct returns Σ a[i]·b[i] over the length of a.
func innerProduct(a, b []fr.Element) fr.Element {
	var res, tmp fr.Element
	for i := range a {
		tmp.Mul(&a[i], &b[i])
		res.Add(&res, &tmp)
	}
	return res
}
