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

package cs

import "honnef.co/go/safeish"

// Writer accumulates encoded command words.
type Writer struct {
	words []uint32
}

// Uint32 appends a single word.
func (w *Writer) Uint32(v uint32) { w.words = append(w.words, v) }

// Words returns the accumulated words.
func (w *Writer) Words() []uint32 { return w.words }

// Stream is an append-only sequence of commands being recorded. The zero
// value is an empty stream ready for use.
type Stream struct {
	cmds []Command
}

// New returns an empty stream.
func New() *Stream { return &Stream{} }

// Emit appends cmd to the stream.
func (s *Stream) Emit(cmd Command) { s.cmds = append(s.cmds, cmd) }

// EmitRegisterWrite appends a direct 32-bit register write.
func (s *Stream) EmitRegisterWrite(reg, value uint32) {
	s.Emit(RegWrite{Reg: reg, Value: value})
}

// EmitRegisterWrite64 appends a direct 64-bit register write.
func (s *Stream) EmitRegisterWrite64(reg uint32, value uint64) {
	s.Emit(RegWrite64{Reg: reg, Value: value})
}

// EmitTrackedRegisterWrite appends a register write routed through the
// indirect tracked-register mechanism.
func (s *Stream) EmitTrackedRegisterWrite(tracker, reg, value uint32) {
	s.Emit(TrackedRegWrite{Tracker: tracker, Reg: reg, Value: value})
}

// EmitCacheEvent appends a cache event.
func (s *Stream) EmitCacheEvent(kind EventKind) {
	s.Emit(Event{Kind: kind})
}

// EmitRawClear appends a blit-engine fill of a buffer region.
func (s *Stream) EmitRawClear(base uint64, pitch, height uint32, value uint16) {
	s.Emit(RawClear{Base: base, Pitch: pitch, Height: height, Value: value})
}

// Commands returns the recorded commands. The returned slice is owned by
// the stream and must not be mutated.
func (s *Stream) Commands() []Command { return s.cmds }

// Len returns the number of recorded commands.
func (s *Stream) Len() int { return len(s.cmds) }

// Reset discards all recorded commands.
func (s *Stream) Reset() { s.cmds = s.cmds[:0] }

// Words encodes the stream to command processor words.
func (s *Stream) Words() []uint32 {
	w := &Writer{}
	for _, c := range s.cmds {
		c.Encode(w)
	}
	return w.Words()
}

// Bytes encodes the stream to bytes in host word order, the layout the
// device reads the stream buffer in.
func (s *Stream) Bytes() []byte {
	return safeish.SliceCast[[]byte](s.Words())
}
