// Copyright (C) 2026 The adrenotools Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cs builds command streams.
//
// A stream is an append-only sequence of typed commands. Commands carry
// their meaning (a register write, a cache event, a raw clear); their word
// encoding lives next to them and nowhere else, so everything upstream can
// be tested against the typed form.
package cs

import "fmt"

// Command is a single command in a stream.
type Command interface {
	fmt.Stringer
	// Encode appends the command's words to w.
	Encode(w *Writer)
	isCommand()
}

// EventKind identifies a cache event.
type EventKind uint32

const (
	// EventLRZClear clears the two LRZ caches (fast-clear bitmap cache and
	// direction byte + depth view cache).
	EventLRZClear EventKind = 37
	// EventLRZFlush flushes and invalidates both LRZ caches, committing
	// their contents to memory.
	EventLRZFlush EventKind = 38
)

func (k EventKind) String() string {
	switch k {
	case EventLRZClear:
		return "LRZ_CLEAR"
	case EventLRZFlush:
		return "LRZ_FLUSH"
	default:
		return fmt.Sprintf("Event(%d)", uint32(k))
	}
}

// RegWrite is a direct write of a 32-bit register.
type RegWrite struct {
	Reg   uint32
	Value uint32
}

func (c RegWrite) String() string {
	return fmt.Sprintf("RegWrite(0x%04x, 0x%08x)", c.Reg, c.Value)
}

func (c RegWrite) Encode(w *Writer) {
	w.Uint32(packType4(c.Reg, 1))
	w.Uint32(c.Value)
}

// RegWrite64 is a direct write of a 64-bit register pair.
type RegWrite64 struct {
	Reg   uint32
	Value uint64
}

func (c RegWrite64) String() string {
	return fmt.Sprintf("RegWrite64(0x%04x, 0x%016x)", c.Reg, c.Value)
}

func (c RegWrite64) Encode(w *Writer) {
	w.Uint32(packType4(c.Reg, 2))
	w.Uint32(uint32(c.Value))
	w.Uint32(uint32(c.Value >> 32))
}

// TrackedRegWrite routes a register write through the indirect
// tracked-register mechanism. Required on generations where direct writes
// to tracked registers race the device's own bookkeeping.
type TrackedRegWrite struct {
	Tracker uint32
	Reg     uint32
	Value   uint32
}

func (c TrackedRegWrite) String() string {
	return fmt.Sprintf("TrackedRegWrite(tracker: %d, 0x%04x, 0x%08x)", c.Tracker, c.Reg, c.Value)
}

func (c TrackedRegWrite) Encode(w *Writer) {
	w.Uint32(packType7(opRegWrite, 3))
	w.Uint32(c.Tracker)
	w.Uint32(c.Reg)
	w.Uint32(c.Value)
}

// Event is a cache event write.
type Event struct {
	Kind EventKind
}

func (c Event) String() string { return fmt.Sprintf("Event(%v)", c.Kind) }

func (c Event) Encode(w *Writer) {
	w.Uint32(packType7(opEventWrite, 1))
	w.Uint32(uint32(c.Kind))
}

// RawClear fills a buffer region with a 16-bit value through the blit
// engine, used to clear the LRZ buffer to an arbitrary depth value when
// fast-clear is not eligible, and to dirty the fast-clear bitmap.
type RawClear struct {
	Base   uint64
	Pitch  uint32
	Height uint32
	Value  uint16
}

func (c RawClear) String() string {
	return fmt.Sprintf("RawClear(base: 0x%x, pitch: %d, height: %d, value: 0x%04x)",
		c.Base, c.Pitch, c.Height, c.Value)
}

func (c RawClear) Encode(w *Writer) {
	w.Uint32(packType7(opRawClear, 5))
	w.Uint32(uint32(c.Base))
	w.Uint32(uint32(c.Base >> 32))
	w.Uint32(c.Pitch)
	w.Uint32(c.Height)
	w.Uint32(uint32(c.Value))
}

func (RegWrite) isCommand()        {}
func (RegWrite64) isCommand()      {}
func (TrackedRegWrite) isCommand() {}
func (Event) isCommand()           {}
func (RawClear) isCommand()        {}
