// Package testdata provides a deterministic random bit generator and fixtures for testing.
package testdata

import (
	"crypto/sha3"
	"encoding/binary"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
)

// DRBG is a deterministic random bit generator based on SHAKE128.
type DRBG struct {
	h *sha3.SHAKE
}

// New returns a new DRBG instance initialized with the given customization string.
func New(customization string) *DRBG {
	h := sha3.NewSHAKE128()
	_, _ = h.Write([]byte(customization))
	return &DRBG{h}
}

// Seed returns a deterministic 32-byte secret key seed from the DRBG.
func (d *DRBG) Seed() []byte {
	return d.Data(32)
}

// KeyPair returns a deterministic Bandersnatch key pair from the DRBG. The secret scalar is reduced modulo the prime
// subgroup order.
func (d *DRBG) KeyPair() (*big.Int, bandersnatch.PointAffine) {
	params := bandersnatch.GetEdwardsCurve()
	x := new(big.Int).SetBytes(d.Data(64))
	x.Mod(x, &params.Order)

	var y bandersnatch.PointAffine
	y.ScalarMultiplication(&params.Base, x)
	return x, y
}

// Element returns a deterministic element of the BLS12-381 scalar field.
func (d *DRBG) Element() fr.Element {
	var e fr.Element
	e.SetBytes(d.Data(64))
	return e
}

// Data returns n bytes of deterministic data from the DRBG.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.h.Read(b)
	return b
}

// Reader returns pseudorandom reader seeded with a value from this DRBG.
func (d *DRBG) Reader() io.Reader {
	h := sha3.NewSHAKE128()
	_, _ = h.Write(d.Data(32))
	return h
}

// SRS returns an insecure structured reference string with g1 powers in G1 and two powers in G2, encoded in the
// uncompressed arkworks layout. The toxic waste is derived from the DRBG and is therefore known to anyone who knows the
// customization string.
func (d *DRBG) SRS(g1 int) []byte {
	tau := d.Element()
	var b big.Int
	tau.BigInt(&b)

	srs, err := kzg.NewSRS(uint64(g1), &b)
	if err != nil {
		panic(err)
	}

	return EncodeSRS(srs.Pk.G1, srs.Vk.G2[:])
}

// EncodeSRS encodes the given powers in the uncompressed arkworks layout: a little-endian u64 count followed by the
// points, for G1 and then G2.
func EncodeSRS(g1 []bls12381.G1Affine, g2 []bls12381.G2Affine) []byte {
	out := make([]byte, 0, 16+len(g1)*bls12381.SizeOfG1AffineUncompressed+len(g2)*bls12381.SizeOfG2AffineUncompressed)
	out = binary.LittleEndian.AppendUint64(out, uint64(len(g1)))
	for i := range g1 {
		raw := g1[i].RawBytes()
		out = append(out, raw[:]...)
	}
	out = binary.LittleEndian.AppendUint64(out, uint64(len(g2)))
	for i := range g2 {
		raw := g2[i].RawBytes()
		out = append(out, raw[:]...)
	}
	return out
}
