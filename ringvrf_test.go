package ringvrf_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/codahale/ringvrf"
	"github.com/codahale/ringvrf/hazmat/curve"
	"github.com/codahale/ringvrf/hazmat/pcs"
	"github.com/codahale/ringvrf/internal/testdata"
)

// knownRing is a ring of six public keys whose secret keys are unknown.
const knownRing = `
5e465beb01dbafe160ce8216047f2155dd0569f058afd52dcea601025a8d161d
3d5e5a51aab2b048f8686ecd79712a80e3265a114cc73f14bdb2a59233fb66d0
aa2b95f7572875b0d0f186552ae745ba8222fc0b5bd456554bfe51c68938f8bc
7f6190116d118d643a98878e294ccf62b509e214299931aad8ff9764181a4e33
48e5fcdce10e0b64ec4eebd0d9211c7bac2f27ce54bca6f7776ff6fee86ab3e3
f16e5352840afb47e206b5c89f560f2611835855cf2e6ebad1acc9520a72591d
`

func newSRS(t testing.TB, drbg *testdata.DRBG) *ringvrf.SRS {
	t.Helper()

	srs, err := ringvrf.ParseSRS(drbg.SRS(pcs.MinG1))
	if err != nil {
		t.Fatal(err)
	}
	return srs
}

func newKeys(t testing.TB, drbg *testdata.DRBG, n int) ([]*ringvrf.SecretKey, []ringvrf.PublicKey) {
	t.Helper()

	sks := make([]*ringvrf.SecretKey, n)
	pks := make([]ringvrf.PublicKey, n)
	for i := range n {
		sk, err := ringvrf.NewSecretKey(drbg.Seed())
		if err != nil {
			t.Fatal(err)
		}
		sks[i], pks[i] = sk, sk.PublicKey()
	}
	return sks, pks
}

func TestNewSecretKey(t *testing.T) {
	drbg := testdata.New("ringvrf secret key")
	seed := drbg.Seed()

	sk, err := ringvrf.NewSecretKey(seed)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("deterministic", func(t *testing.T) {
		other, err := ringvrf.NewSecretKey(seed)
		if err != nil {
			t.Fatal(err)
		}

		if !sk.Equal(other) || !sk.PublicKey().Equal(other.PublicKey()) {
			t.Error("identical seeds produced different keys")
		}
	})

	t.Run("bytes", func(t *testing.T) {
		if got, want := sk.Bytes(), seed; !bytes.Equal(got, want) {
			t.Errorf("Bytes() = %x, want = %x", got, want)
		}
	})

	t.Run("wrong length", func(t *testing.T) {
		for _, n := range []int{0, 31, 33, 64} {
			if _, err := ringvrf.NewSecretKey(make([]byte, n)); !errors.Is(err, ringvrf.ErrInvalidSecretKey) {
				t.Errorf("NewSecretKey(%d bytes) err = %v, want = %v", n, err, ringvrf.ErrInvalidSecretKey)
			}
		}
	})

	t.Run("generate", func(t *testing.T) {
		generated, err := ringvrf.GenerateSecretKey(drbg.Reader())
		if err != nil {
			t.Fatal(err)
		}

		if generated.Equal(sk) {
			t.Error("GenerateSecretKey() returned a known key")
		}
	})

	t.Run("generate error", func(t *testing.T) {
		want := errors.New("out of entropy")
		if _, err := ringvrf.GenerateSecretKey(&testdata.ErrReader{Err: want}); !errors.Is(err, want) {
			t.Errorf("GenerateSecretKey() err = %v, want = %v", err, want)
		}
	})

	t.Run("clear", func(t *testing.T) {
		other, _ := ringvrf.NewSecretKey(seed)
		other.Clear()

		if got, want := other.Bytes(), make([]byte, ringvrf.SecretKeySize); !bytes.Equal(got, want) {
			t.Errorf("Bytes() = %x, want = %x", got, want)
		}
	})
}

func TestParsePublicKey(t *testing.T) {
	drbg := testdata.New("ringvrf public key")
	_, pks := newKeys(t, drbg, 1)

	t.Run("round trip", func(t *testing.T) {
		pk, err := ringvrf.ParsePublicKey(pks[0].Bytes())
		if err != nil {
			t.Fatal(err)
		}

		if !pk.Equal(pks[0]) {
			t.Errorf("ParsePublicKey() = %v, want = %v", pk, pks[0])
		}

		if got, want := len(pk.Bytes()), ringvrf.PublicKeySize; got != want {
			t.Errorf("len(Bytes()) = %d, want = %d", got, want)
		}
	})

	t.Run("identity", func(t *testing.T) {
		id := curve.Identity()
		b := curve.Encode(&id)

		if _, err := ringvrf.ParsePublicKey(b[:]); !errors.Is(err, ringvrf.ErrInvalidPublicKey) {
			t.Errorf("ParsePublicKey() err = %v, want = %v", err, ringvrf.ErrInvalidPublicKey)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for name, b := range map[string][]byte{
			"empty":         nil,
			"short":         pks[0].Bytes()[1:],
			"non-canonical": bytes.Repeat([]byte{0xff}, ringvrf.PublicKeySize),
		} {
			if _, err := ringvrf.ParsePublicKey(b); !errors.Is(err, ringvrf.ErrInvalidPublicKey) {
				t.Errorf("%s: ParsePublicKey() err = %v, want = %v", name, err, ringvrf.ErrInvalidPublicKey)
			}
		}
	})
}

func TestParseRing(t *testing.T) {
	keys, err := ringvrf.ParseRing(knownRing)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := len(keys), 6; got != want {
		t.Fatalf("len(ParseRing()) = %d, want = %d", got, want)
	}

	if got, want := keys[0].String(), "5e465beb01dbafe160ce8216047f2155dd0569f058afd52dcea601025a8d161d"; got != want {
		t.Errorf("keys[0] = %s, want = %s", got, want)
	}

	for name, s := range map[string]string{
		"bad hex":   "5e465beb zz",
		"bad point": "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
	} {
		if _, err := ringvrf.ParseRing(s); !errors.Is(err, ringvrf.ErrInvalidPublicKey) {
			t.Errorf("%s: ParseRing() err = %v, want = %v", name, err, ringvrf.ErrInvalidPublicKey)
		}
	}
}

func TestLoadSRS(t *testing.T) {
	drbg := testdata.New("ringvrf srs")
	b := drbg.SRS(pcs.MinG1)

	t.Run("parse", func(t *testing.T) {
		srs, err := ringvrf.ParseSRS(b)
		if err != nil {
			t.Fatal(err)
		}

		if got, want := srs.MaxRingSize(), 255; got != want {
			t.Errorf("MaxRingSize() = %d, want = %d", got, want)
		}

		got, err := srs.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, b) {
			t.Error("MarshalBinary() did not reproduce the input")
		}
	})

	t.Run("reader", func(t *testing.T) {
		if _, err := ringvrf.LoadSRS(bytes.NewReader(b)); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "srs.bin")
		if err := os.WriteFile(path, b, 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := ringvrf.LoadSRSFile(path); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ringvrf.LoadSRSFile(filepath.Join(t.TempDir(), "missing.bin"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("LoadSRSFile() err = %v, want = %v", err, os.ErrNotExist)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		if _, err := ringvrf.ParseSRS(b[:len(b)/2]); !errors.Is(err, ringvrf.ErrMalformedSRS) {
			t.Errorf("ParseSRS() err = %v, want = %v", err, ringvrf.ErrMalformedSRS)
		}
	})

	t.Run("invalid point", func(t *testing.T) {
		bad := bytes.Clone(b)
		bad[8+7*96+40] ^= 1

		if _, err := ringvrf.ParseSRS(bad); !errors.Is(err, ringvrf.ErrInvalidPoint) {
			t.Errorf("ParseSRS() err = %v, want = %v", err, ringvrf.ErrInvalidPoint)
		}
	})

	t.Run("write to", func(t *testing.T) {
		srs, err := ringvrf.ParseSRS(b)
		if err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if _, err := srs.WriteTo(&buf); err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(buf.Bytes(), b) {
			t.Error("WriteTo() did not reproduce the input")
		}
	})
}

func TestAggregate(t *testing.T) {
	drbg := testdata.New("ringvrf aggregate")
	srs := newSRS(t, drbg)
	_, pks := newKeys(t, drbg, 6)

	c, err := ringvrf.Aggregate(srs, pks)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("deterministic", func(t *testing.T) {
		other, err := ringvrf.Aggregate(srs, pks)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(c.Bytes(), other.Bytes()) {
			t.Error("Aggregate() is not deterministic")
		}
	})

	t.Run("order matters", func(t *testing.T) {
		reversed := slices.Clone(pks)
		slices.Reverse(reversed)

		other, err := ringvrf.Aggregate(srs, reversed)
		if err != nil {
			t.Fatal(err)
		}

		if c.Equal(other) {
			t.Error("reordered ring produced the same commitment")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		b := c.Bytes()
		if got, want := len(b), ringvrf.CommitmentSize; got != want {
			t.Fatalf("len(Bytes()) = %d, want = %d", got, want)
		}

		parsed, err := ringvrf.ParseRingCommitment(b)
		if err != nil {
			t.Fatal(err)
		}

		if !parsed.Equal(c) {
			t.Error("ParseRingCommitment() produced a different commitment")
		}

		var unmarshaled ringvrf.RingCommitment
		if err := unmarshaled.UnmarshalBinary(b); err != nil {
			t.Fatal(err)
		}

		if !unmarshaled.Equal(c) {
			t.Error("UnmarshalBinary() produced a different commitment")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		if _, err := ringvrf.ParseRingCommitment(c.Bytes()[1:]); !errors.Is(err, ringvrf.ErrMalformedCommitment) {
			t.Errorf("ParseRingCommitment() err = %v, want = %v", err, ringvrf.ErrMalformedCommitment)
		}
	})

	t.Run("empty ring", func(t *testing.T) {
		if _, err := ringvrf.Aggregate(srs, nil); !errors.Is(err, ringvrf.ErrInvalidPublicKey) {
			t.Errorf("Aggregate() err = %v, want = %v", err, ringvrf.ErrInvalidPublicKey)
		}
	})

	t.Run("zero value key", func(t *testing.T) {
		bad := append(slices.Clone(pks), ringvrf.PublicKey{})
		if _, err := ringvrf.Aggregate(srs, bad); !errors.Is(err, ringvrf.ErrInvalidPublicKey) {
			t.Errorf("Aggregate() err = %v, want = %v", err, ringvrf.ErrInvalidPublicKey)
		}
	})
}

func TestCapacity(t *testing.T) {
	drbg := testdata.New("ringvrf capacity")
	srs := newSRS(t, drbg)
	_, pks := newKeys(t, drbg, srs.MaxRingSize()+1)

	t.Run("full", func(t *testing.T) {
		c, err := ringvrf.Aggregate(srs, pks[:srs.MaxRingSize()])
		if err != nil {
			t.Fatal(err)
		}

		if got, want := c.Capacity(), srs.MaxRingSize(); got != want {
			t.Errorf("Capacity() = %d, want = %d", got, want)
		}
	})

	t.Run("too large", func(t *testing.T) {
		if _, err := ringvrf.Aggregate(srs, pks); !errors.Is(err, ringvrf.ErrRingTooLarge) {
			t.Errorf("Aggregate() err = %v, want = %v", err, ringvrf.ErrRingTooLarge)
		}
	})

	t.Run("setup", func(t *testing.T) {
		params, err := ringvrf.Setup(srs, 0)
		if err != nil {
			t.Fatal(err)
		}

		if got, want := params.Capacity(), srs.MaxRingSize(); got != want {
			t.Errorf("Capacity() = %d, want = %d", got, want)
		}

		if _, err := params.NewRing(pks); !errors.Is(err, ringvrf.ErrRingTooLarge) {
			t.Errorf("NewRing() err = %v, want = %v", err, ringvrf.ErrRingTooLarge)
		}

		if _, err := ringvrf.Setup(srs, len(pks)); !errors.Is(err, ringvrf.ErrRingTooLarge) {
			t.Errorf("Setup() err = %v, want = %v", err, ringvrf.ErrRingTooLarge)
		}
	})
}

func TestSign(t *testing.T) {
	drbg := testdata.New("ringvrf sign")
	srs := newSRS(t, drbg)
	sks, pks := newKeys(t, drbg, 6)

	ring, err := ringvrf.NewRing(srs, pks)
	if err != nil {
		t.Fatal(err)
	}

	input, aux := []byte("input"), []byte("aux")
	sig, output, err := ring.Sign(drbg.Reader(), sks[3], 3, input, aux)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("complete", func(t *testing.T) {
		for i, sk := range sks {
			sig, output, err := ring.Sign(drbg.Reader(), sk, i, input, aux)
			if err != nil {
				t.Fatal(err)
			}

			valid, got := ring.Commitment().Verify(input, aux, sig)
			if !valid {
				t.Errorf("Verify() = false for signer %d", i)
			}

			if got != output {
				t.Errorf("Verify() output = %x, want = %x", got, output)
			}
		}
	})

	t.Run("output", func(t *testing.T) {
		want, err := sks[3].Evaluate(input)
		if err != nil {
			t.Fatal(err)
		}

		if output != want {
			t.Errorf("Sign() output = %x, want = %x", output, want)
		}
	})

	t.Run("output independent of aux", func(t *testing.T) {
		_, other, err := ring.Sign(drbg.Reader(), sks[3], 3, input, []byte("other aux"))
		if err != nil {
			t.Fatal(err)
		}

		if other != output {
			t.Errorf("Sign() output = %x, want = %x", other, output)
		}
	})

	t.Run("output independent of ring", func(t *testing.T) {
		_, others := newKeys(t, drbg, 3)
		others[1] = pks[3]

		_, other, err := ringvrf.Sign(drbg.Reader(), srs, sks[3], others, 1, input, aux)
		if err != nil {
			t.Fatal(err)
		}

		if other != output {
			t.Errorf("Sign() output = %x, want = %x", other, output)
		}
	})

	t.Run("output depends on input", func(t *testing.T) {
		_, other, err := ring.Sign(drbg.Reader(), sks[3], 3, []byte("other input"), aux)
		if err != nil {
			t.Fatal(err)
		}

		if other == output {
			t.Error("different inputs produced the same output")
		}
	})

	t.Run("hedged", func(t *testing.T) {
		other, _, err := ring.Sign(drbg.Reader(), sks[3], 3, input, aux)
		if err != nil {
			t.Fatal(err)
		}

		if bytes.Equal(sig.Bytes(), other.Bytes()) {
			t.Error("signatures with different randomness are identical")
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		for _, index := range []int{-1, 6, 255} {
			_, _, err := ring.Sign(nil, sks[3], index, input, aux)
			if !errors.Is(err, ringvrf.ErrIndexOutOfRange) {
				t.Errorf("Sign(%d) err = %v, want = %v", index, err, ringvrf.ErrIndexOutOfRange)
			}
		}
	})

	t.Run("secret key mismatch", func(t *testing.T) {
		_, _, err := ring.Sign(nil, sks[3], 2, input, aux)
		if !errors.Is(err, ringvrf.ErrSecretKeyMismatch) {
			t.Errorf("Sign() err = %v, want = %v", err, ringvrf.ErrSecretKeyMismatch)
		}
	})

	t.Run("randomness error", func(t *testing.T) {
		want := errors.New("out of entropy")
		if _, _, err := ring.Sign(&testdata.ErrReader{Err: want}, sks[3], 3, input, aux); !errors.Is(err, want) {
			t.Errorf("Sign() err = %v, want = %v", err, want)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		b := sig.Bytes()
		if got, want := len(b), ringvrf.SignatureSize; got != want {
			t.Fatalf("len(Bytes()) = %d, want = %d", got, want)
		}

		parsed, err := ringvrf.ParseSignature(b)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(parsed.Bytes(), b) {
			t.Error("ParseSignature() did not round trip")
		}

		valid, got := ringvrf.Verify(ring.Commitment(), input, aux, b)
		if !valid || got != output {
			t.Errorf("Verify() = (%v, %x), want = (true, %x)", valid, got, output)
		}
	})
}

func TestVerify(t *testing.T) {
	drbg := testdata.New("ringvrf verify")
	srs := newSRS(t, drbg)
	sks, pks := newKeys(t, drbg, 6)

	c, err := ringvrf.Aggregate(srs, pks)
	if err != nil {
		t.Fatal(err)
	}

	input, aux := []byte("input"), []byte("aux")
	sig, _, err := ringvrf.Sign(drbg.Reader(), srs, sks[0], pks, 0, input, aux)
	if err != nil {
		t.Fatal(err)
	}
	b := sig.Bytes()

	invalid := func(t *testing.T, c *ringvrf.RingCommitment, input, aux, sig []byte) {
		t.Helper()

		valid, output := ringvrf.Verify(c, input, aux, sig)
		if valid {
			t.Error("Verify() = true, want = false")
		}

		if output != [ringvrf.OutputSize]byte{} {
			t.Errorf("Verify() output = %x, want = zero", output)
		}
	}

	t.Run("wrong input", func(t *testing.T) {
		invalid(t, c, []byte("other input"), aux, b)
	})

	t.Run("wrong aux", func(t *testing.T) {
		invalid(t, c, input, []byte("other aux"), b)
	})

	t.Run("wrong ring", func(t *testing.T) {
		others := slices.Clone(pks)
		_, outsiders := newKeys(t, drbg, 1)
		others[5] = outsiders[0]

		other, err := ringvrf.Aggregate(srs, others)
		if err != nil {
			t.Fatal(err)
		}

		invalid(t, other, input, aux, b)
	})

	t.Run("wrong SRS", func(t *testing.T) {
		other, err := ringvrf.Aggregate(newSRS(t, drbg), pks)
		if err != nil {
			t.Fatal(err)
		}

		invalid(t, other, input, aux, b)
	})

	t.Run("wrong length", func(t *testing.T) {
		invalid(t, c, input, aux, b[1:])
		invalid(t, c, input, aux, append(slices.Clone(b), 0))
		invalid(t, c, input, aux, nil)
	})

	t.Run("zero value", func(t *testing.T) {
		for _, sig := range []*ringvrf.Signature{nil, {}} {
			valid, output := c.Verify(input, aux, sig)
			if valid {
				t.Errorf("Verify(%v) = true, want = false", sig)
			}

			if output != [ringvrf.OutputSize]byte{} {
				t.Errorf("Verify(%v) output = %x, want = zero", sig, output)
			}
		}

		if valid, _ := (&ringvrf.RingCommitment{}).Verify(input, aux, sig); valid {
			t.Error("Verify() with zero commitment = true, want = false")
		}

		if _, err := new(ringvrf.Signature).MarshalBinary(); err == nil {
			t.Error("MarshalBinary() of zero signature succeeded")
		}
	})

	t.Run("bit flips", func(t *testing.T) {
		stride := 1
		if testing.Short() {
			stride = 17
		}

		for i := 0; i < len(b); i += stride {
			bad := slices.Clone(b)
			bad[i] ^= 1 << (i % 8)

			if valid, _ := ringvrf.Verify(c, input, aux, bad); valid {
				t.Fatalf("Verify() = true with byte %d modified", i)
			}
		}
	})
}

func TestKnownRing(t *testing.T) {
	drbg := testdata.New("ringvrf known ring")
	srs := newSRS(t, drbg)

	keys, err := ringvrf.ParseRing(knownRing)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("sign and verify", func(t *testing.T) {
		sk, err := ringvrf.NewSecretKey(drbg.Seed())
		if err != nil {
			t.Fatal(err)
		}

		ring := slices.Clone(keys)
		ring[2] = sk.PublicKey()

		c, err := ringvrf.Aggregate(srs, ring)
		if err != nil {
			t.Fatal(err)
		}

		sig, output, err := ringvrf.Sign(nil, srs, sk, ring, 2, []byte("foo"), []byte("bar"))
		if err != nil {
			t.Fatal(err)
		}

		valid, got := ringvrf.Verify(c, []byte("foo"), []byte("bar"), sig.Bytes())
		if !valid {
			t.Fatal("Verify() = false, want = true")
		}

		if got != output {
			t.Errorf("Verify() output = %x, want = %x", got, output)
		}

		again, _, err := ringvrf.Sign(nil, srs, sk, ring, 2, []byte("foo"), []byte("bar"))
		if err != nil {
			t.Fatal(err)
		}

		if _, got := ringvrf.Verify(c, []byte("foo"), []byte("bar"), again.Bytes()); got != output {
			t.Errorf("second signature output = %x, want = %x", got, output)
		}
	})

	t.Run("secret key mismatch", func(t *testing.T) {
		sk, err := ringvrf.NewSecretKey(bytes.Repeat([]byte{0xff}, ringvrf.SecretKeySize))
		if err != nil {
			t.Fatal(err)
		}

		_, _, err = ringvrf.Sign(nil, srs, sk, keys, 2, []byte("foo"), []byte("bar"))
		if !errors.Is(err, ringvrf.ErrSecretKeyMismatch) {
			t.Errorf("Sign() err = %v, want = %v", err, ringvrf.ErrSecretKeyMismatch)
		}
	})
}

func TestEncoded(t *testing.T) {
	drbg := testdata.New("ringvrf encoded")
	srs := newSRS(t, drbg)
	sks, pks := newKeys(t, drbg, 4)

	keys := make([][]byte, len(pks))
	for i, pk := range pks {
		keys[i] = pk.Bytes()
	}

	t.Run("aggregate", func(t *testing.T) {
		got, err := ringvrf.AggregateEncoded(srs, keys)
		if err != nil {
			t.Fatal(err)
		}

		c, err := ringvrf.Aggregate(srs, pks)
		if err != nil {
			t.Fatal(err)
		}

		if !bytes.Equal(got, c.Bytes()) {
			t.Error("AggregateEncoded() differs from Aggregate()")
		}
	})

	t.Run("sign and verify", func(t *testing.T) {
		sig, err := ringvrf.SignEncoded(drbg.Reader(), srs, sks[1].Bytes(), keys, 1, []byte("in"), []byte("aux"))
		if err != nil {
			t.Fatal(err)
		}

		valid, output := ringvrf.VerifyEncoded(srs, keys, []byte("in"), []byte("aux"), sig)
		if !valid {
			t.Fatal("VerifyEncoded() = false, want = true")
		}

		want, _ := sks[1].Evaluate([]byte("in"))
		if output != want {
			t.Errorf("VerifyEncoded() output = %x, want = %x", output, want)
		}
	})

	t.Run("invalid key", func(t *testing.T) {
		bad := slices.Clone(keys)
		bad[0] = bytes.Repeat([]byte{0xff}, ringvrf.PublicKeySize)

		if _, err := ringvrf.AggregateEncoded(srs, bad); !errors.Is(err, ringvrf.ErrInvalidPublicKey) {
			t.Errorf("AggregateEncoded() err = %v, want = %v", err, ringvrf.ErrInvalidPublicKey)
		}

		if valid, _ := ringvrf.VerifyEncoded(srs, bad, nil, nil, make([]byte, ringvrf.SignatureSize)); valid {
			t.Error("VerifyEncoded() = true, want = false")
		}
	})

	t.Run("invalid secret", func(t *testing.T) {
		_, err := ringvrf.SignEncoded(nil, srs, []byte("short"), keys, 0, nil, nil)
		if !errors.Is(err, ringvrf.ErrInvalidSecretKey) {
			t.Errorf("SignEncoded() err = %v, want = %v", err, ringvrf.ErrInvalidSecretKey)
		}
	})
}
