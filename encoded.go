package ringvrf

import (
	"fmt"
	"io"
)

// These functions accept and return plain byte encodings, for callers that store keys, commitments and signatures as
// opaque blobs. Each builds its ring from scratch; callers signing or verifying repeatedly against the same ring should
// hold on to a [Ring] or [RingCommitment] instead.

// DecodeKeys decodes a list of encoded public keys.
func DecodeKeys(keys [][]byte) ([]PublicKey, error) {
	pks := make([]PublicKey, len(keys))
	for i, b := range keys {
		pk, err := ParsePublicKey(b)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		pks[i] = pk
	}
	return pks, nil
}

// AggregateEncoded returns the encoded commitment to the ring of encoded public keys.
func AggregateEncoded(srs *SRS, keys [][]byte) ([]byte, error) {
	pks, err := DecodeKeys(keys)
	if err != nil {
		return nil, err
	}

	c, err := Aggregate(srs, pks)
	if err != nil {
		return nil, err
	}
	return c.Bytes(), nil
}

// SignEncoded returns an encoded signature by the secret key seed at the given index of the ring of encoded public
// keys.
func SignEncoded(rnd io.Reader, srs *SRS, secret []byte, keys [][]byte, index int, input, aux []byte) ([]byte, error) {
	sk, err := NewSecretKey(secret)
	if err != nil {
		return nil, err
	}
	defer sk.Clear()

	pks, err := DecodeKeys(keys)
	if err != nil {
		return nil, err
	}

	sig, _, err := Sign(rnd, srs, sk, pks, index, input, aux)
	if err != nil {
		return nil, err
	}
	return sig.Bytes(), nil
}

// VerifyEncoded checks an encoded signature against the ring of encoded public keys. Malformed keys and signatures
// are invalid.
func VerifyEncoded(srs *SRS, keys [][]byte, input, aux, sig []byte) (bool, [OutputSize]byte) {
	s, err := ParseSignature(sig)
	if err != nil {
		return false, [OutputSize]byte{}
	}

	pks, err := DecodeKeys(keys)
	if err != nil {
		return false, [OutputSize]byte{}
	}

	c, err := Aggregate(srs, pks)
	if err != nil {
		return false, [OutputSize]byte{}
	}
	return c.Verify(input, aux, s)
}
