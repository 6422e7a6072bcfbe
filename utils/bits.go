package utils

import "math/bits"

const bitSetSize = 64 // Number of bits in a uint64

// StaticBitSet is a simple fixed-size bit set.
type StaticBitSet struct {
	bits []uint64
	size int
}

// NewStaticBitSet creates a new StaticBitSet with the given size.
func NewStaticBitSet(size int) *StaticBitSet {
	return &StaticBitSet{
		bits: make([]uint64, (size+bitSetSize-1)/bitSetSize),
		size: size,
	}
}

// Size returns the number of addressable bits.
func (s *StaticBitSet) Size() int { return s.size }

// Set sets the bit at the given idx to 1.
func (s *StaticBitSet) Set(idx int) {
	Assert(idx >= 0 && idx < s.size, "index out of bounds")
	i, offset := s.addr(idx)
	s.bits[i] |= 1 << offset
}

// Unset clears the bit at the given idx.
func (s *StaticBitSet) Unset(idx int) {
	Assert(idx >= 0 && idx < s.size, "index out of bounds")
	i, offset := s.addr(idx)
	s.bits[i] &^= 1 << offset
}

// IsSet returns true if the bit at the given idx is set.
func (s *StaticBitSet) IsSet(idx int) bool {
	Assert(idx >= 0 && idx < s.size, "index out of bounds")
	i, offset := s.addr(idx)
	return s.bits[i]&(1<<offset) != 0
}

// Count counts the number of bits set.
func (s *StaticBitSet) Count() int {
	total := 0
	for _, u := range s.bits {
		total += bits.OnesCount64(u)
	}
	return total
}

// Clear unsets every bit.
func (s *StaticBitSet) Clear() {
	for i := range s.bits {
		s.bits[i] = 0
	}
}

// addr returns the word index holding the bit at idx and the bit offset
// within that word.
func (s *StaticBitSet) addr(idx int) (int, int) {
	return idx / bitSetSize, idx % bitSetSize
}
