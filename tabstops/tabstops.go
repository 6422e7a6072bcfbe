// Package tabstops tracks tab stop columns as a bit set.
package tabstops

import "github.com/hnimtadd/artio/utils"

// DefaultInterval is the classic every-8-columns tab layout.
const DefaultInterval = 8

// Tabstops tracks which columns carry a tab stop.
type Tabstops struct {
	cols int
	bits *utils.StaticBitSet
}

// New creates tab stops for cols columns at the default interval.
func New(cols int) *Tabstops {
	t := &Tabstops{cols: cols, bits: utils.NewStaticBitSet(max(cols, 1))}
	t.Reset(DefaultInterval)
	return t
}

// Set sets a tab stop at col (0-indexed).
func (t *Tabstops) Set(col int) {
	if col >= 0 && col < t.cols {
		t.bits.Set(col)
	}
}

// Unset removes the tab stop at col.
func (t *Tabstops) Unset(col int) {
	if col >= 0 && col < t.cols {
		t.bits.Unset(col)
	}
}

// Get reports whether col carries a tab stop.
func (t *Tabstops) Get(col int) bool {
	return col >= 0 && col < t.cols && t.bits.IsSet(col)
}

// Next returns the first stop after col, or the last column when none is
// set.
func (t *Tabstops) Next(col int) int {
	for c := col + 1; c < t.cols; c++ {
		if t.bits.IsSet(c) {
			return c
		}
	}
	return max(t.cols-1, 0)
}

// Clear removes every stop.
func (t *Tabstops) Clear() {
	t.bits.Clear()
}

// Reset clears all stops and, when interval > 0, sets stops at every
// multiple of interval.
func (t *Tabstops) Reset(interval int) {
	t.bits.Clear()
	if interval <= 0 {
		return
	}
	for c := interval; c < t.cols; c += interval {
		t.bits.Set(c)
	}
}

// Resize grows or shrinks the tracked column range, keeping existing stops
// that still fit.
func (t *Tabstops) Resize(cols int) {
	bits := utils.NewStaticBitSet(max(cols, 1))
	for c := 0; c < min(cols, t.cols); c++ {
		if t.bits.IsSet(c) {
			bits.Set(c)
		}
	}
	t.cols = cols
	t.bits = bits
}
