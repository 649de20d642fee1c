// Package transcript implements the Fiat-Shamir transcript used by the ring VRF.
//
// Operations append frames to a cSHAKE128 instance. At each Derive, cSHAKE128 is
// evaluated over the transcript twice with distinct domain bytes: once to produce a chain value and once to produce the
// caller-visible output. The transcript is then reset to a single CHAIN frame carrying the chain value. Frames are
// encoded with NIST SP 800-185 left_encode, so the transcript is recoverable from its encoding.
//
// Prover and verifier must perform the same sequence of operations with the same labels and inputs to arrive at the
// same challenges.
package transcript

import (
	"github.com/codahale/ringvrf/internal/mem"
	"golang.org/x/crypto/sha3"
)

// Protocol is a transcript-based protocol instance.
type Protocol struct {
	h         sha3.ShakeHash
	initLabel string
}

// New creates a new protocol instance with the given label for domain separation. Two protocols using different labels
// produce cryptographically independent transcripts.
func New(label string) *Protocol {
	p := &Protocol{
		h:         sha3.NewCShake128(nil, []byte(customization)),
		initLabel: label,
	}
	p.writeOpLabel(opInit, label)
	return p
}

// Mix absorbs data into the protocol transcript. Use for public inputs, commitments, key material, and nonces.
func (p *Protocol) Mix(label string, data []byte) {
	p.writeOpLabel(opMix, label)
	p.writeLengthEncode(data)
}

// MixAll absorbs each of the given values as a single Mix operation over their concatenated length-encodings.
func (p *Protocol) MixAll(label string, data ...[]byte) {
	p.writeOpLabel(opMix, label)
	p.writeLeftEncode(uint64(len(data)))
	for _, d := range data {
		p.writeLengthEncode(d)
	}
}

// Fork calls ForkN with the given label and values and returns the two branches.
func (p *Protocol) Fork(label string, left, right []byte) (*Protocol, *Protocol) {
	branches := p.ForkN(label, left, right)
	return branches[0], branches[1]
}

// ForkN clones the protocol state into N independent branches and modifies the base. The base receives ordinal 0 with an
// empty value. Each clone receives ordinals 1 through N with the corresponding value. Callers must ensure clone values
// are distinct from each other.
func (p *Protocol) ForkN(label string, values ...[]byte) []*Protocol {
	n := len(values)

	// Write the common prefix.
	p.writeOpLabel(opFork, label)
	p.writeLeftEncode(uint64(n))

	// Create clones before writing base ordinal.
	clones := make([]*Protocol, n)
	for i := range n {
		clone := p.Clone()
		clone.writeLeftEncode(uint64(i + 1))
		clone.writeLengthEncode(values[i])
		clones[i] = clone
	}

	p.writeLeftEncode(0)
	p.writeLengthEncode(nil)

	return clones
}

// Derive produces pseudorandom output that is a deterministic function of the full transcript. The outputLen must be
// greater than zero.
func (p *Protocol) Derive(label string, dst []byte, outputLen int) []byte {
	if outputLen <= 0 {
		panic("transcript: Derive output_len must be greater than zero")
	}
	ret, out := mem.SliceForAppend(dst, outputLen)

	p.writeOpLabel(opDerive, label)
	p.writeLeftEncode(uint64(outputLen))

	cv := p.finalize(dsDerive, out)
	p.resetChain(opDerive, cv[:])

	return ret
}

// Clone returns an independent copy of the protocol state. The original and clone evolve independently.
func (p *Protocol) Clone() *Protocol {
	return &Protocol{h: p.h.Clone(), initLabel: p.initLabel}
}

// Clear resets the protocol state and invalidates the instance. Transcripts which have absorbed secrets should be
// cleared once they are no longer needed. After Clear, the instance retains nothing it absorbed and should not
// be reused.
func (p *Protocol) Clear() {
	p.h.Reset()
	p.initLabel = ""
}

// finalize evaluates cSHAKE128 over the transcript twice. The branch finalized with dsChain produces the chain value;
// the branch finalized with outputDS produces the output read into dst.
func (p *Protocol) finalize(outputDS byte, dst []byte) [chainValueSize]byte {
	var cv [chainValueSize]byte

	ch := p.h.Clone()
	defer ch.Reset()
	_, _ = ch.Write([]byte{dsChain})
	_, _ = ch.Read(cv[:])

	oh := p.h.Clone()
	defer oh.Reset()
	_, _ = oh.Write([]byte{outputDS})
	_, _ = oh.Read(dst)

	return cv
}

// writeOpLabel writes op || length_encode(label). All protocol operations start with this preamble.
func (p *Protocol) writeOpLabel(op byte, label string) {
	n := len(label)
	if n < 256 {
		// Common case: left_encode(n) = [1, n], so frame is op || 1 || n || label.
		var buf [259]byte // 3 + 256
		buf[0] = op
		buf[1] = 1
		buf[2] = byte(n)
		copy(buf[3:], label)
		_, _ = p.h.Write(buf[:3+n])
	} else {
		_, _ = p.h.Write([]byte{op})
		p.writeLengthEncode([]byte(label))
	}
}

// resetChain resets the transcript with a CHAIN frame:
//
//	opChain || originOp || left_encode(len(cv)) || cv
func (p *Protocol) resetChain(originOp byte, chainValue []byte) {
	p.h.Reset()

	var buf [4 + chainValueSize]byte
	buf[0] = opChain
	buf[1] = originOp
	buf[2] = 1 // left_encode length prefix
	buf[3] = chainValueSize
	copy(buf[4:], chainValue)
	_, _ = p.h.Write(buf[:])
}

// writeLeftEncode writes left_encode(x) as defined in NIST SP 800-185.
func (p *Protocol) writeLeftEncode(x uint64) {
	var buf [9]byte

	if x == 0 {
		buf[0] = 1
		_, _ = p.h.Write(buf[:2])
		return
	}

	i := 8
	v := x
	for v > 0 {
		buf[i] = byte(v)
		v >>= 8
		i--
	}
	buf[i] = byte(8 - i)
	_, _ = p.h.Write(buf[i:9])
}

// writeLengthEncode writes length_encode(x) = left_encode(len(x)) || x.
func (p *Protocol) writeLengthEncode(data []byte) {
	n := len(data)
	if n > 0 && n < 128 {
		// Common case: batch left_encode(len) and data into a single write.
		var buf [130]byte // 2 + 128
		buf[0] = 1
		buf[1] = byte(n)
		copy(buf[2:], data)
		_, _ = p.h.Write(buf[:2+n])
		return
	}
	p.writeLeftEncode(uint64(n))
	if n > 0 {
		_, _ = p.h.Write(data)
	}
}

const (
	// customization is the cSHAKE128 customization string binding every transcript to this module.
	customization = "ringvrf transcript v1"

	// chainValueSize is the chain value size in bytes.
	chainValueSize = 64

	// Finalization domain bytes.
	dsChain  = 0x20
	dsDerive = 0x21

	// Operation codes.
	opInit   = 0x10
	opMix    = 0x11
	opFork   = 0x13
	opDerive = 0x14
	opChain  = 0x18
)
