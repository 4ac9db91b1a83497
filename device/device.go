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

// Package device describes the LRZ capabilities of a hardware generation.
package device

import "fmt"

// Generation identifies a hardware generation.
type Generation int

const (
	// GenA630 is the generation without device-side direction tracking.
	// Direction is tracked entirely on the recording processor, so LRZ
	// cannot survive across render passes or into secondary streams.
	GenA630 Generation = iota
	// GenA650 is the first generation with device-side direction tracking.
	// It carries the erratum requiring LRZ register writes to be routed
	// through the tracked-register mechanism.
	GenA650
	// GenA660 has device-side direction tracking without the tracked-write
	// erratum.
	GenA660
)

func (g Generation) String() string {
	switch g {
	case GenA630:
		return "A630"
	case GenA650:
		return "A650"
	case GenA660:
		return "A660"
	default:
		return fmt.Sprintf("Generation(%d)", int(g))
	}
}

// Info is the capability descriptor injected into everything that emits LRZ
// state. Decision logic never looks at Gen directly; it consumes the
// capability bits so new generations only need a new constructor.
type Info struct {
	Gen Generation

	// HasDirTracking is set when the device tracks the depth comparison
	// direction and the last-used depth view itself, enabling LRZ reuse
	// across render passes and inside secondary command streams.
	HasDirTracking bool

	// TrackQuirk is set when LRZ control registers must be written through
	// the tracked-register path instead of a direct register write.
	TrackQuirk bool

	// HasFastClear is set when the generation supports the LRZ fast-clear
	// bitmap.
	HasFastClear bool
}

// A630 returns the capability descriptor for the A630 generation.
func A630() Info {
	return Info{Gen: GenA630, HasFastClear: true}
}

// A650 returns the capability descriptor for the A650 generation.
func A650() Info {
	return Info{Gen: GenA650, HasDirTracking: true, TrackQuirk: true, HasFastClear: true}
}

// A660 returns the capability descriptor for the A660 generation.
func A660() Info {
	return Info{Gen: GenA660, HasDirTracking: true, HasFastClear: true}
}
