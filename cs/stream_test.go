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

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamRoundTrip(t *testing.T) {
	s := New()
	s.EmitRegisterWrite(0x8100, 0x123)
	s.EmitRegisterWrite64(0x8102, 0x1_0000_2000)
	s.EmitTrackedRegisterWrite(1, 0x8100, 0x381)
	s.EmitCacheEvent(EventLRZClear)
	s.EmitCacheEvent(EventLRZFlush)
	s.EmitRawClear(0x2_0000_1000, 64, 32, 0xffff)

	want := []Command{
		RegWrite{Reg: 0x8100, Value: 0x123},
		RegWrite64{Reg: 0x8102, Value: 0x1_0000_2000},
		TrackedRegWrite{Tracker: 1, Reg: 0x8100, Value: 0x381},
		Event{Kind: EventLRZClear},
		Event{Kind: EventLRZFlush},
		RawClear{Base: 0x2_0000_1000, Pitch: 64, Height: 32, Value: 0xffff},
	}
	require.Equal(t, want, s.Commands())

	got, err := Decode(s.Words())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStreamEncoding(t *testing.T) {
	for _, test := range []struct {
		cmd   Command
		words []uint32
	}{
		{RegWrite{Reg: 0x8104, Value: 64}, []uint32{0x4<<28 | 1<<20 | 0x8104, 64}},
		{RegWrite64{Reg: 0x8102, Value: 0x1_0000_2000}, []uint32{0x4<<28 | 2<<20 | 0x8102, 0x2000, 0x1}},
		{TrackedRegWrite{Tracker: 1, Reg: 0x8100, Value: 0x9}, []uint32{0x7<<28 | 0x6d<<16 | 3, 1, 0x8100, 0x9}},
		{Event{Kind: EventLRZFlush}, []uint32{0x7<<28 | 0x46<<16 | 1, 38}},
		{RawClear{Base: 0x3000, Pitch: 64, Height: 8, Value: 0x8000}, []uint32{0x7<<28 | 0x3c<<16 | 5, 0x3000, 0, 64, 8, 0x8000}},
	} {
		t.Run(test.cmd.String(), func(t *testing.T) {
			w := &Writer{}
			test.cmd.Encode(w)
			assert.Equal(t, test.words, w.Words())
		})
	}
}

func TestStreamResetAndLen(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Len())
	s.EmitCacheEvent(EventLRZFlush)
	assert.Equal(t, 1, s.Len())
	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Words())
}

func TestStreamBytes(t *testing.T) {
	s := New()
	s.EmitRegisterWrite(0x8c01, 1)
	assert.Len(t, s.Bytes(), 8)
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		name  string
		words []uint32
	}{
		{"unknown header", []uint32{0x1 << 28}},
		{"truncated type-4", []uint32{0x4<<28 | 2<<20 | 0x8102, 0x2000}},
		{"truncated type-7", []uint32{0x7<<28 | 0x46<<16 | 1}},
		{"unknown type-7 op", []uint32{0x7<<28 | 0x11<<16 | 1, 0}},
		{"bad type-4 length", []uint32{0x4<<28 | 3<<20 | 0x8100, 0, 0, 0}},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.words)
			assert.Error(t, err)
		})
	}
}

func TestDisassemble(t *testing.T) {
	s := New()
	s.EmitRegisterWrite(0x8100, 0x13)
	s.EmitCacheEvent(EventLRZClear)

	buf := &bytes.Buffer{}
	require.NoError(t, Disassemble(s.Words(), buf))
	assert.Equal(t, "RegWrite(0x8100, 0x00000013)\nEvent(LRZ_CLEAR)\n", buf.String())
}

func TestPackOverflow(t *testing.T) {
	assert.Panics(t, func() { RegWrite{Reg: 0x100000}.Encode(&Writer{}) })
	assert.Panics(t, func() { packType7(0x80, 1) })
	assert.Panics(t, func() { packType7(0x46, 0x4000) })
}
