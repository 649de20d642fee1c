package ringproof

import (
	"math/big"

	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// row holds the values of every column at a point X, plus the shifted witness columns at ωX.
type row struct {
	px, py, sel                     fr.Element
	b, accX, accY, counter          fr.Element
	accXNext, accYNext, counterNext fr.Element
}

// selectors holds the values of the polynomials that gate the constraints at a point X.
type selectors struct {
	// notLast vanishes on the final accumulator row and the random rows.
	notLast fr.Element
	// first and last are the Lagrange basis polynomials for row 0 and the final accumulator row.
	first, last fr.Element
}

// curveCoefficients returns the Bandersnatch a and d coefficients.
func curveCoefficients() (a, d fr.Element) {
	return curve.A(), curve.D()
}

// combine returns the α-linear combination of all constraints at a point. It vanishes on the whole domain if and
// only if the witness is valid for the blinded key y.
//
// The transition constraints are:
//
//	b·(b - 1)
//	b·(x'·(1 + d·x·y·px·py) - (x·py + y·px)) + (1 - b)·(x' - x)
//	b·(y'·(1 - d·x·y·px·py) - (y·py - a·x·px)) + (1 - b)·(y' - y)
//	c' - c - b·sel
//
// each gated by notLast. The boundary constraints pin the accumulator to the identity and the counter to zero on the
// first row, and the accumulator to y and the counter to one on the final row.
func combine(r *row, s *selectors, alpha *fr.Element, y *curve.Point, a, d *fr.Element) fr.Element {
	var one, notB, tmp, tmp2, xyp fr.Element
	one.SetOne()
	notB.Sub(&one, &r.b)

	var c [10]fr.Element

	// booleanity
	c[0].Sub(&r.b, &one).Mul(&c[0], &r.b)

	// d·x·y·px·py
	xyp.Mul(&r.accX, &r.accY).Mul(&xyp, &r.px).Mul(&xyp, &r.py).Mul(&xyp, d)

	// conditional addition, x coordinate
	tmp.Add(&one, &xyp).Mul(&tmp, &r.accXNext)
	tmp2.Mul(&r.accX, &r.py)
	tmp.Sub(&tmp, &tmp2)
	tmp2.Mul(&r.accY, &r.px)
	tmp.Sub(&tmp, &tmp2)
	c[1].Mul(&tmp, &r.b)
	tmp.Sub(&r.accXNext, &r.accX).Mul(&tmp, &notB)
	c[1].Add(&c[1], &tmp)

	// conditional addition, y coordinate
	tmp.Sub(&one, &xyp).Mul(&tmp, &r.accYNext)
	tmp2.Mul(&r.accY, &r.py)
	tmp.Sub(&tmp, &tmp2)
	tmp2.Mul(&r.accX, &r.px).Mul(&tmp2, a)
	tmp.Add(&tmp, &tmp2)
	c[2].Mul(&tmp, &r.b)
	tmp.Sub(&r.accYNext, &r.accY).Mul(&tmp, &notB)
	c[2].Add(&c[2], &tmp)

	// selection counter
	tmp.Mul(&r.b, &r.sel)
	c[3].Sub(&r.counterNext, &r.counter).Sub(&c[3], &tmp)

	for i := range 4 {
		c[i].Mul(&c[i], &s.notLast)
	}

	// accumulator starts at the identity, counter at zero
	c[4].Mul(&r.accX, &s.first)
	c[5].Sub(&r.accY, &one).Mul(&c[5], &s.first)
	c[6].Mul(&r.counter, &s.first)

	// accumulator ends at the blinded key, counter at one
	c[7].Sub(&r.accX, &y.X).Mul(&c[7], &s.last)
	c[8].Sub(&r.accY, &y.Y).Mul(&c[8], &s.last)
	c[9].Sub(&r.counter, &one).Mul(&c[9], &s.last)

	// Horner's rule in α.
	res := c[len(c)-1]
	for i := len(c) - 2; i >= 0; i-- {
		res.Mul(&res, alpha).Add(&res, &c[i])
	}
	return res
}

// gates evaluates the gating polynomials for a domain.
type gates struct {
	n                  int
	omega, wLast, nInv fr.Element
}

func newGates(n int) *gates {
	g := &gates{n: n, omega: rootOfUnity(n)}
	g.wLast.Exp(g.omega, big.NewInt(int64(lastRow(n))))
	g.nInv.SetUint64(uint64(n)).Inverse(&g.nInv)
	return g
}

// at evaluates the gating polynomials at x, given zh = xⁿ - 1. Returns false if x is in the domain.
func (g *gates) at(x, zh *fr.Element) (selectors, bool) {
	var s selectors
	if zh.IsZero() {
		return s, false
	}

	var one, den, tmp fr.Element
	one.SetOne()

	// ∏ (x - ωʲ) for j in [last, n)
	s.notLast.SetOne()
	w := g.wLast
	for range tailRows {
		tmp.Sub(x, &w)
		s.notLast.Mul(&s.notLast, &tmp)
		w.Mul(&w, &g.omega)
	}

	// L₀(x) = (xⁿ - 1) / (n·(x - 1))
	den.Sub(x, &one)
	s.first.Mul(zh, &g.nInv).Div(&s.first, &den)

	// L_last(x) = ω^last·(xⁿ - 1) / (n·(x - ω^last))
	den.Sub(x, &g.wLast)
	s.last.Mul(zh, &g.nInv).Mul(&s.last, &g.wLast).Div(&s.last, &den)

	return s, true
}
