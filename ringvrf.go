// Package ringvrf implements an anonymous ring verifiable random function over Bandersnatch.
//
// A signer holding the secret key for one public key in an ordered ring produces a signature over an input and
// auxiliary data. Anyone holding the ring's commitment can verify that some ring member signed, without learning which
// one, and recover a 32-byte VRF output. The output depends only on the signer's secret key and the input: the same
// signer always produces the same output for the same input, whatever the ring or auxiliary data.
//
// A signature consists of the VRF output point Γ = x·H(input), a Pedersen VRF proof that Γ and a blinded key
// Y = x·G + b·B share the secret x, and a KZG-based ring proof that Y - b·B is a member of the committed ring. The
// ring proof requires a structured reference string (SRS) from a trusted setup, which callers load once and share.
package ringvrf
