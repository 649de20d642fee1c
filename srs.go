package ringvrf

import (
	"errors"
	"fmt"
	"io"

	"github.com/codahale/ringvrf/hazmat/pcs"
	"github.com/codahale/ringvrf/hazmat/ringproof"
)

// SRS is a validated structured reference string. It is immutable and safe to share between goroutines.
type SRS struct {
	inner *pcs.SRS
}

// ParseSRS decodes and validates an SRS in the uncompressed arkworks layout.
func ParseSRS(b []byte) (*SRS, error) {
	s, err := pcs.Parse(b)
	if err != nil {
		return nil, srsError(err)
	}
	return &SRS{inner: s}, nil
}

// LoadSRS reads an SRS from r until EOF.
func LoadSRS(r io.Reader) (*SRS, error) {
	s, err := pcs.Load(r)
	if err != nil {
		return nil, srsError(err)
	}
	return &SRS{inner: s}, nil
}

// LoadSRSFile reads the SRS stored at the given path.
func LoadSRSFile(path string) (*SRS, error) {
	s, err := pcs.LoadFile(path)
	if err != nil {
		return nil, srsError(err)
	}
	return &SRS{inner: s}, nil
}

// MaxRingSize returns the largest ring the SRS supports.
func (s *SRS) MaxRingSize() int {
	return ringproof.MaxCapacity(s.inner)
}

// MarshalBinary returns the arkworks encoding of the SRS.
func (s *SRS) MarshalBinary() ([]byte, error) {
	return s.inner.MarshalBinary()
}

// WriteTo writes the arkworks encoding of the SRS to w.
func (s *SRS) WriteTo(w io.Writer) (int64, error) {
	return s.inner.WriteTo(w)
}

func srsError(err error) error {
	switch {
	case errors.Is(err, pcs.ErrInvalidPoint):
		return fmt.Errorf("%w: %w", ErrInvalidPoint, err)
	case errors.Is(err, pcs.ErrMalformed):
		return fmt.Errorf("%w: %w", ErrMalformedSRS, err)
	default:
		return fmt.Errorf("ringvrf: loading SRS: %w", err)
	}
}
