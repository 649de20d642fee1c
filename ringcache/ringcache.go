// Package ringcache caches ring commitments and prepared rings for repeated signing and verification against the same
// rings.
//
// Building a ring is the expensive part of both signing and verifying: it interpolates and commits to the ring's
// columns. A Cache keeps recently used prepared rings in an LRU and their encoded commitments in a byte cache, both
// keyed by a hash of the ordered ring keys. Verifiers hitting the commitment cache never rebuild the ring.
package ringcache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/codahale/ringvrf"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/blake2b"
)

// Config controls the size and lifetime of cache entries.
type Config struct {
	// Rings is the maximum number of prepared rings kept in memory. Defaults to 16.
	Rings int

	// CommitmentTTL is how long encoded commitments are kept. Defaults to one hour.
	CommitmentTTL time.Duration

	// MaxCommitments bounds the number of commitments the byte cache is sized for. Defaults to 4096.
	MaxCommitments int

	// Registerer receives the cache's metrics. If nil, metrics are collected but not registered.
	Registerer prometheus.Registerer
}

func (c *Config) setDefaults() {
	if c.Rings <= 0 {
		c.Rings = 16
	}
	if c.CommitmentTTL <= 0 {
		c.CommitmentTTL = time.Hour
	}
	if c.MaxCommitments <= 0 {
		c.MaxCommitments = 4096
	}
}

// Cache holds prepared rings and ring commitments for a single SRS. It is safe for concurrent use.
type Cache struct {
	srs         *ringvrf.SRS
	rings       *lru.Cache[Key, *ringvrf.Ring]
	commitments *bigcache.BigCache
	metrics     *metrics
}

// New returns a cache for rings built from the given SRS. The context bounds the byte cache's background cleanup.
func New(ctx context.Context, srs *ringvrf.SRS, cfg Config) (*Cache, error) {
	cfg.setDefaults()

	rings, err := lru.New[Key, *ringvrf.Ring](cfg.Rings)
	if err != nil {
		return nil, fmt.Errorf("ringcache: %w", err)
	}

	bc := bigcache.DefaultConfig(cfg.CommitmentTTL)
	bc.Shards = 16
	bc.MaxEntriesInWindow = cfg.MaxCommitments
	bc.MaxEntrySize = ringvrf.CommitmentSize
	bc.CleanWindow = cfg.CommitmentTTL / 2
	bc.Verbose = false

	commitments, err := bigcache.New(ctx, bc)
	if err != nil {
		return nil, fmt.Errorf("ringcache: %w", err)
	}

	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		_ = commitments.Close()
		return nil, err
	}

	return &Cache{srs: srs, rings: rings, commitments: commitments, metrics: m}, nil
}

// Close releases the byte cache.
func (c *Cache) Close() error {
	return c.commitments.Close()
}

// Ring returns the prepared ring for the given ordered keys, building it on a miss.
func (c *Cache) Ring(keys []ringvrf.PublicKey) (*ringvrf.Ring, error) {
	k := KeyOf(keys)
	if r, ok := c.rings.Get(k); ok {
		c.metrics.hit(kindRing)
		return r, nil
	}
	c.metrics.miss(kindRing)

	r, err := ringvrf.NewRing(c.srs, keys)
	if err != nil {
		return nil, err
	}

	c.rings.Add(k, r)
	c.storeCommitment(k, r.Commitment())
	return r, nil
}

// Commitment returns the commitment for the given ordered keys. A prepared ring is only built if neither the
// commitment nor the ring is cached.
func (c *Cache) Commitment(keys []ringvrf.PublicKey) (*ringvrf.RingCommitment, error) {
	k := KeyOf(keys)
	if b, err := c.commitments.Get(k.String()); err == nil {
		if rc, err := ringvrf.ParseRingCommitment(b); err == nil {
			c.metrics.hit(kindCommitment)
			return rc, nil
		}
		_ = c.commitments.Delete(k.String())
	} else if !errors.Is(err, bigcache.ErrEntryNotFound) {
		return nil, fmt.Errorf("ringcache: %w", err)
	}
	c.metrics.miss(kindCommitment)

	if r, ok := c.rings.Peek(k); ok {
		c.storeCommitment(k, r.Commitment())
		return r.Commitment(), nil
	}

	rc, err := ringvrf.Aggregate(c.srs, keys)
	if err != nil {
		return nil, err
	}

	c.storeCommitment(k, rc)
	return rc, nil
}

// Sign signs with the cached ring for the given keys.
func (c *Cache) Sign(rnd io.Reader, sk *ringvrf.SecretKey, keys []ringvrf.PublicKey, index int, input, aux []byte) (*ringvrf.Signature, [ringvrf.OutputSize]byte, error) {
	if index < 0 || index >= len(keys) {
		return nil, [ringvrf.OutputSize]byte{}, fmt.Errorf("%w: %d not in [0, %d)", ringvrf.ErrIndexOutOfRange, index, len(keys))
	}

	r, err := c.Ring(keys)
	if err != nil {
		return nil, [ringvrf.OutputSize]byte{}, err
	}
	return r.Sign(rnd, sk, index, input, aux)
}

// Verify checks an encoded signature against the cached commitment for the given keys. Failures to build the
// commitment make the signature invalid.
func (c *Cache) Verify(keys []ringvrf.PublicKey, input, aux, sig []byte) (bool, [ringvrf.OutputSize]byte) {
	rc, err := c.Commitment(keys)
	if err != nil {
		return false, [ringvrf.OutputSize]byte{}
	}

	valid, output := ringvrf.Verify(rc, input, aux, sig)
	c.metrics.verified(valid)
	return valid, output
}

func (c *Cache) storeCommitment(k Key, rc *ringvrf.RingCommitment) {
	// A failed store only costs a rebuild later.
	_ = c.commitments.Set(k.String(), rc.Bytes())
}

// Key identifies an ordered ring.
type Key [blake2b.Size256]byte

// KeyOf returns the key for the given ordered ring.
func KeyOf(keys []ringvrf.PublicKey) Key {
	h, _ := blake2b.New256([]byte("ringvrf ring"))

	_, _ = h.Write(binary.LittleEndian.AppendUint64(nil, uint64(len(keys))))

	for _, pk := range keys {
		_, _ = h.Write(pk.Bytes())
	}

	var k Key
	h.Sum(k[:0])
	return k
}

func (k Key) String() string {
	return fmt.Sprintf("%x", k[:])
}
