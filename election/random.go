// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// RandomSource supplies the value used to break a tie between proposals.
// seed describes the tie being broken and is identical for every caller
// that observes the same election state.
type RandomSource interface {
	Uint64(seed []byte) (uint64, error)
}

// WeakSource hashes the wall clock together with the seed.
//
// Anyone who can observe the election and guess the moment the tally runs
// can compute the outcome ahead of time, and a controller can retry the
// call until the draw goes their way. Do not use it where the controller
// is not trusted; use CryptoSource or an externally verifiable source.
type WeakSource struct {
	Now func() time.Time
}

func (s WeakSource) Uint64(seed []byte) (uint64, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(now().UnixNano()))

	h := sha256.New()
	h.Write(ts[:])
	h.Write(seed)
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8]), nil
}

// CryptoSource reads from crypto/rand and ignores the seed.
type CryptoSource struct{}

func (CryptoSource) Uint64([]byte) (uint64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// FixedSource always returns the same value.
type FixedSource uint64

func (s FixedSource) Uint64([]byte) (uint64, error) {
	return uint64(s), nil
}

// NewRandomSource returns the source registered under name: "weak"
// (the default when name is empty) or "crypto".
func NewRandomSource(name string) (RandomSource, error) {
	switch name {
	case "", "weak":
		return WeakSource{}, nil
	case "crypto":
		return CryptoSource{}, nil
	default:
		return nil, fmt.Errorf("unknown tie-break source %q", name)
	}
}

// drawSeed encodes the observable shape of a tie.
func drawSeed(proposals int, totalVotes uint64, candidates []int) []byte {
	b := make([]byte, 0, 16+8*len(candidates))
	b = binary.BigEndian.AppendUint64(b, uint64(proposals))
	b = binary.BigEndian.AppendUint64(b, totalVotes)
	for _, c := range candidates {
		b = binary.BigEndian.AppendUint64(b, uint64(c))
	}
	return b
}
