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

package lrz

import (
	"github.com/adrenotools/lrz/image"
)

// Direction is the depth comparison sense the recorded LRZ values are
// valid under. It starts Unknown each pass and is locked in by the first
// draw that writes depth with a concrete compare function.
type Direction uint8

const (
	DirUnknown Direction = iota
	DirLess
	DirGreater
)

func (d Direction) String() string {
	switch d {
	case DirUnknown:
		return "Unknown"
	case DirLess:
		return "Less"
	case DirGreater:
		return "Greater"
	default:
		return "Direction(?)"
	}
}

// State is the per-render-pass LRZ record. One instance lives in each
// recording context and is reset at every pass or secondary begin.
type State struct {
	// Valid is whether the accumulated LRZ data may be trusted. Once false
	// it stays false for the remainder of the pass.
	Valid bool

	// PrevDirection is the last comparison direction that actually wrote
	// depth. Kept across temporarily disabled draws so a later compatible
	// draw can resume testing.
	PrevDirection Direction

	// GPUDirTracking is whether the device additionally tracks direction
	// and depth view identity itself.
	GPUDirTracking bool

	// FastClear is whether the fast-clear bitmap may be used this pass.
	FastClear bool

	// ReusePreviousState skips re-initializing the LRZ buffer because a
	// previous pass already primed it. Only meaningful with GPUDirTracking:
	// processor-side tracking cannot survive across passes.
	ReusePreviousState bool

	// View is the depth attachment this state applies to. Nil means no LRZ
	// buffer is available or known (always nil in secondary streams).
	View *image.View

	// DepthClearValue is the recorded clear value; HasClearValue is set
	// only when the attachment was cleared this pass.
	DepthClearValue float32
	HasClearValue   bool

	// Enabled is the per-draw enable computed by the last decision, read
	// by dependent downstream state.
	Enabled bool
}
