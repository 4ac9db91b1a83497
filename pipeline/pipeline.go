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

// Package pipeline carries the per-draw pipeline configuration consumed by
// the LRZ decision engine. The values are the resolved, post-dynamic-state
// configuration in effect for the draw.
package pipeline

import "github.com/gogpu/gputypes"

// ForceDisable is the set of LRZ restrictions imposed by the bound shader
// pipeline, derived from the fragment shader at pipeline creation.
type ForceDisable uint8

const (
	// ForceDisableWrite prevents LRZ writes: the fragment shader's output
	// (discard, alpha-to-coverage) can suppress fragments the LRZ buffer
	// would otherwise record.
	ForceDisableWrite ForceDisable = 1 << iota
	// ForceDisableTest prevents LRZ testing and writing: the fragment
	// shader has side effects that must not be pre-culled, such as
	// gl_FragDepth writes or forced early fragment tests.
	ForceDisableTest
)

// StencilFace is the LRZ-relevant state of one stencil face.
type StencilFace struct {
	// CompareOp is the face's stencil compare function.
	CompareOp gputypes.CompareFunction
	// WriteEnabled is set when the face's effective write mask is non-zero.
	WriteEnabled bool
}

// DrawState is the pipeline configuration in effect for one draw.
type DrawState struct {
	DepthTestEnable   bool
	DepthWriteEnable  bool
	DepthBoundsEnable bool
	DepthCompareOp    gputypes.CompareFunction

	StencilTestEnable bool
	StencilFront      StencilFace
	StencilBack       StencilFace

	// LogicOpEnabled and LogicOpReadsDst describe the bound logic op.
	LogicOpEnabled  bool
	LogicOpReadsDst bool
	// BlendEnabled is set when any color target blends.
	BlendEnabled bool

	// ColorWriteMasks is the per-color-target component write mask,
	// indexed like the subpass color attachment list.
	ColorWriteMasks []gputypes.ColorWriteMask
	// ColorWriteEnable is a bitmask of per-target write enables.
	ColorWriteEnable uint32
	// NumRenderTargets is the number of render targets the bound pipeline
	// was built with.
	NumRenderTargets int

	// ForceDisable carries the restrictions from the bound pipeline's
	// fragment shader.
	ForceDisable ForceDisable
}
