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

// Package regs holds the LRZ register identifiers and the packing of their
// control words. Everything upstream of the command emitter works with the
// unpacked structs; only the emitter and the disassembler touch the words.
package regs

// LRZ register offsets in the GRAS and RB blocks.
const (
	// GrasLrzCntl is the main LRZ control register.
	GrasLrzCntl uint32 = 0x8100
	// GrasLrzBufferBase is the 64-bit device address of the LRZ buffer.
	GrasLrzBufferBase uint32 = 0x8102
	// GrasLrzBufferPitch is the row pitch of the LRZ buffer.
	GrasLrzBufferPitch uint32 = 0x8104
	// GrasLrzFastClearBufferBase is the 64-bit device address of the
	// fast-clear bitmap, or zero when fast-clear is unavailable.
	GrasLrzFastClearBufferBase uint32 = 0x8105
	// GrasLrzDepthView identifies the depth subresource the LRZ buffer
	// currently describes. The device compares it against the value stored
	// alongside the direction byte and disables LRZ on mismatch.
	GrasLrzDepthView uint32 = 0x8107
	// RbLrzCntl enables the per-draw LRZ test in the render backend.
	RbLrzCntl uint32 = 0x8c01
)

// TrackerLRZ is the tracked-register group used when the generation
// requires routing LRZ register writes through the indirect path.
const TrackerLRZ uint32 = 1

// Dir is the depth comparison direction written to the device-side
// direction byte.
type Dir uint32

const (
	// DirUnset leaves the current direction untouched.
	DirUnset Dir = 0
	// DirLE marks the buffer valid for less-than-family comparisons.
	DirLE Dir = 1
	// DirGE marks the buffer valid for greater-than-family comparisons.
	DirGE Dir = 2
	// DirInvalid tells the device the recorded direction is unusable.
	DirInvalid Dir = 3
)

func (d Dir) String() string {
	switch d {
	case DirUnset:
		return "Unset"
	case DirLE:
		return "LE"
	case DirGE:
		return "GE"
	case DirInvalid:
		return "Invalid"
	default:
		return "Dir(?)"
	}
}
