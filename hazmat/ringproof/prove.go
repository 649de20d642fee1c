package ringproof

import (
	"fmt"
	"math/big"

	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/codahale/ringvrf/transcript"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/polynomial"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

// Prove returns a proof that the blinded key Key(index) + blinding·B is a member of the ring, along with that blinded
// key. Randomness for zero knowledge is derived from the prover transcript; challenges from the verifier transcript.
func (r *Ring) Prove(prover, verifier *transcript.Protocol, index int, blinding *big.Int) (*Proof, curve.Point, error) {
	if index < 0 || index >= len(r.keys) {
		return nil, curve.Point{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(r.keys))
	}

	p := r.params
	n := p.n
	w := r.witness(prover, index, blinding)
	blinded := curve.Point{X: w.accX[lastRow(n)], Y: w.accY[lastRow(n)]}
	bindStatement(verifier, &r.commitment, &blinded)

	// Commit to the witness columns.
	bCoeffs := p.interpolate(w.b)
	accXCoeffs := p.interpolate(w.accX)
	accYCoeffs := p.interpolate(w.accY)
	counterCoeffs := p.interpolate(w.counter)

	columns, err := p.commit(bCoeffs, accXCoeffs, accYCoeffs, counterCoeffs)
	if err != nil {
		return nil, curve.Point{}, err
	}

	proof := &Proof{b: columns[0], accX: columns[1], accY: columns[2], counter: columns[3]}
	mixDigests(verifier, "ring-columns", proof.digests()[:witnessColumns])
	alpha := challenge(verifier, "ring-alpha")

	// Compute the quotient and commit to its blinded chunks.
	quotient, err := r.quotient(&alpha, &blinded, bCoeffs, accXCoeffs, accYCoeffs, counterCoeffs)
	if err != nil {
		return nil, curve.Point{}, err
	}

	chunks := make([][]fr.Element, quotientChunks)
	for i := range chunks {
		chunks[i] = make([]fr.Element, n+1)
		copy(chunks[i], quotient[i*n:(i+1)*n])
	}
	for i := range quotientChunks - 1 {
		beta := randomElement(prover, "ring-quotient-blinding")
		chunks[i][n].Add(&chunks[i][n], &beta)
		chunks[i+1][0].Sub(&chunks[i+1][0], &beta)
	}

	chunkDigests, err := p.commit(chunks...)
	if err != nil {
		return nil, curve.Point{}, err
	}
	copy(proof.quotient[:], chunkDigests)
	mixDigests(verifier, "ring-quotient", proof.digests()[witnessColumns:witnessColumns+quotientChunks])
	zeta := challenge(verifier, "ring-zeta")

	// Evaluate the columns and the aggregated quotient.
	var zetaN, zetaOmega fr.Element
	zetaN.Exp(zeta, big.NewInt(int64(n)))
	zetaOmega.Mul(&zeta, &p.domain.Generator)

	atZeta := [][]fr.Element{
		r.pxCoeffs, r.pyCoeffs, r.selCoeffs,
		bCoeffs, accXCoeffs, accYCoeffs, counterCoeffs,
		linearCombination(chunks, &zetaN),
	}
	atZetaOmega := [][]fr.Element{accXCoeffs, accYCoeffs, counterCoeffs}

	for i, poly := range atZeta {
		pp := polynomial.Polynomial(poly)
		proof.evals.atZeta[i] = pp.Eval(&zeta)
	}
	for i, poly := range atZetaOmega {
		pp := polynomial.Polynomial(poly)
		proof.evals.atZetaOmega[i] = pp.Eval(&zetaOmega)
	}
	mixEvaluations(verifier, &proof.evals)
	nu := challenge(verifier, "ring-nu")

	// Open the ν-aggregated polynomials at ζ and ζω.
	openZeta, err := kzg.Open(linearCombination(atZeta, &nu), zeta, p.pk)
	if err != nil {
		return nil, curve.Point{}, fmt.Errorf("ringproof: open: %w", err)
	}

	openZetaOmega, err := kzg.Open(linearCombination(atZetaOmega, &nu), zetaOmega, p.pk)
	if err != nil {
		return nil, curve.Point{}, fmt.Errorf("ringproof: open: %w", err)
	}

	proof.openZeta, proof.openZetaOmega = openZeta.H, openZetaOmega.H
	return proof, blinded, nil
}

// witness holds the witness columns in evaluation form.
type witness struct {
	b, accX, accY, counter []fr.Element
}

// witness selects the key row at index and the bits of the blinding factor, and accumulates the selected points.
func (r *Ring) witness(prover *transcript.Protocol, index int, blinding *big.Int) *witness {
	n, k, last := r.params.n, r.params.Capacity(), lastRow(r.params.n)
	w := &witness{
		b:       make([]fr.Element, n),
		accX:    make([]fr.Element, n),
		accY:    make([]fr.Element, n),
		counter: make([]fr.Element, n),
	}

	w.b[index].SetOne()
	for j := range blindingRows {
		if blinding.Bit(j) == 1 {
			w.b[k+j].SetOne()
		}
	}

	acc := curve.Identity()
	w.accX[0], w.accY[0] = acc.X, acc.Y
	for i := range last {
		var selected fr.Element
		if w.b[i].IsOne() {
			pt := curve.Point{X: r.px[i], Y: r.py[i]}
			acc = curve.Add(&acc, &pt)
			selected = r.sel[i]
		}
		w.accX[i+1], w.accY[i+1] = acc.X, acc.Y
		w.counter[i+1].Add(&w.counter[i], &selected)
	}

	for i := last + 1; i < n; i++ {
		w.b[i] = randomElement(prover, "ring-zk-b")
		w.accX[i] = randomElement(prover, "ring-zk-acc-x")
		w.accY[i] = randomElement(prover, "ring-zk-acc-y")
		w.counter[i] = randomElement(prover, "ring-zk-counter")
	}

	return w
}

// quotient returns the coefficients of the combined constraint polynomial divided by the vanishing polynomial of the
// domain, or ErrUnsatisfied if the division leaves a remainder.
func (r *Ring) quotient(alpha *fr.Element, blinded *curve.Point, b, accX, accY, counter []fr.Element) ([]fr.Element, error) {
	p := r.params
	n, m := p.n, cosetFactor*p.n

	px, py, sel := p.onCoset(r.pxCoeffs), p.onCoset(r.pyCoeffs), p.onCoset(r.selCoeffs)
	bE, accXE, accYE, counterE := p.onCoset(b), p.onCoset(accX), p.onCoset(accY), p.onCoset(counter)

	// Over the coset g·⟨ω₈ₙ⟩, xⁿ - 1 takes only cosetFactor distinct values.
	var zh, zhInv [cosetFactor]fr.Element
	var gN, step fr.Element
	gN.Exp(p.coset.FrMultiplicativeGen, big.NewInt(int64(n)))
	step.Exp(p.coset.Generator, big.NewInt(int64(n)))
	one := fr.One()
	for i := range zh {
		zh[i].Sub(&gN, &one)
		gN.Mul(&gN, &step)
	}
	copy(zhInv[:], fr.BatchInvert(zh[:]))

	g := newGates(n)
	a, d := curveCoefficients()
	x := p.coset.FrMultiplicativeGen
	t := make([]fr.Element, m)
	for i := range m {
		next := (i + cosetFactor) % m
		rw := row{
			px: px[i], py: py[i], sel: sel[i],
			b: bE[i], accX: accXE[i], accY: accYE[i], counter: counterE[i],
			accXNext: accXE[next], accYNext: accYE[next], counterNext: counterE[next],
		}

		s, _ := g.at(&x, &zh[i%cosetFactor])
		c := combine(&rw, &s, alpha, blinded, &a, &d)
		t[i].Mul(&c, &zhInv[i%cosetFactor])
		x.Mul(&x, &p.coset.Generator)
	}

	p.coset.FFTInverse(t, fft.DIF, fft.OnCoset())
	fft.BitReverse(t)

	for i := quotientChunks * n; i < m; i++ {
		if !t[i].IsZero() {
			return nil, ErrUnsatisfied
		}
	}

	return t[:quotientChunks*n], nil
}

// linearCombination returns Σ rⁱ·polys[i].
func linearCombination(polys [][]fr.Element, r *fr.Element) []fr.Element {
	size := 0
	for _, p := range polys {
		size = max(size, len(p))
	}

	res := make([]fr.Element, size)
	scale := fr.One()
	var tmp fr.Element
	for _, p := range polys {
		for j := range p {
			tmp.Mul(&p[j], &scale)
			res[j].Add(&res[j], &tmp)
		}
		scale.Mul(&scale, r)
	}
	return res
}

func randomElement(prover *transcript.Protocol, label string) fr.Element {
	var e fr.Element
	e.SetBytes(prover.Derive(label, nil, 64))
	return e
}
