package sampler

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"
)

const seedDomain = "sievego/sampler/v1"

// Source is a math/rand/v2 source backed by a lattigo keyed PRNG.
type Source struct {
	prng *utils.KeyedPRNG
	buf  [8]byte
}

// NewSource derives a 32-byte key from seed with SHAKE-256 and keys a PRNG
// with it. Equal seeds yield equal streams.
func NewSource(seed []byte) (*Source, error) {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(seedDomain))
	_, _ = h.Write(seed)
	key := make([]byte, 32)
	if _, err := h.Read(key); err != nil {
		return nil, fmt.Errorf("expand seed: %w", err)
	}

	prng, err := utils.NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("keyed prng: %w", err)
	}
	return &Source{prng: prng}, nil
}

// Uint64 implements rand.Source.
func (s *Source) Uint64() uint64 {
	if _, err := s.prng.Read(s.buf[:]); err != nil {
		panic(fmt.Errorf("sampler: prng read: %w", err))
	}
	return binary.LittleEndian.Uint64(s.buf[:])
}

// NewRand returns a *rand.Rand over a Source seeded with seed.
func NewRand(seed uint64) (*rand.Rand, error) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], seed)
	src, err := NewSource(b[:])
	if err != nil {
		return nil, err
	}
	return rand.New(src), nil
}
