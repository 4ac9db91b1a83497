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
	"context"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/adrenotools/lrz/cs"
	"github.com/adrenotools/lrz/debug"
	"github.com/adrenotools/lrz/pipeline"
	"github.com/adrenotools/lrz/regs"
	"github.com/adrenotools/lrz/renderpass"
)

// stencilOpAllowed applies the stencil sub-rule for one face and reports
// whether LRZ testing remains allowed. It may clear cntl.LrzWrite as a
// side effect.
//
// Conceptually the order of the pipeline is:
//
//	FS -> Alpha-Test -> Stencil-Test -> Depth-Test
//	                         |               |
//	                  if wrmask != 0   if wrmask != 0
//	                         |               |
//	                         v               v
//	                   Stencil-Write    Depth-Write
//
// Stencil write is a side effect that happens logically before the depth
// test, so whenever it can occur, culling fragments early via LRZ would
// skip it.
func stencilOpAllowed(cntl *regs.LrzCntl, op gputypes.CompareFunction, stencilWrite bool) bool {
	switch op {
	case gputypes.CompareFunctionAlways:
		// Nothing to do for LRZ itself, but with stencil write enabled the
		// write must not be pre-culled.
		if stencilWrite {
			return false
		}
	case gputypes.CompareFunctionNever:
		// The fragment never reaches the depth stage, so recording its
		// depth would be wrong. Testing can proceed: nothing ever passes.
		cntl.LrzWrite = false
	default:
		// Whether the fragment passes depends on a per-fragment stencil
		// result unknowable at binning time.
		cntl.LrzWrite = false
		if stencilWrite {
			return false
		}
	}
	return true
}

// calculate computes the control word for one draw and advances the
// tracker. The zero return value is the "no LRZ this draw" directive.
func (r *Recorder) calculate(ctx context.Context, draw *pipeline.DrawState) regs.LrzCntl {
	var cntl regs.LrzCntl

	if !r.State.Valid {
		return cntl
	}

	// Depth test off means this draw cannot touch LRZ. Same when there is
	// no depth attachment, or LRZ is globally overridden off.
	if r.depthAttachment() == renderpass.AttachmentUnused ||
		!draw.DepthTestEnable || r.flags.Has(debug.NoLRZ) {
		return cntl
	}

	if !r.State.GPUDirTracking && r.attachments == nil {
		// Without device-side direction tracking there is nothing that can
		// enable LRZ inside a secondary command stream.
		return cntl
	}

	cntl.Enable = true
	cntl.LrzWrite = draw.DepthWriteEnable &&
		draw.ForceDisable&pipeline.ForceDisableWrite == 0
	cntl.ZTestEnable = draw.DepthWriteEnable
	cntl.ZBoundsEnable = draw.DepthBoundsEnable
	cntl.FCEnable = r.State.FastClear
	cntl.DirWrite = r.State.GPUDirTracking
	cntl.DisableOnWrongDir = r.State.GPUDirTracking

	// An LRZ write records depth for fragments whose visible color the
	// blend stage may still discard or must read back, so anything that
	// reads the destination forces the write off.
	if draw.LogicOpEnabled && draw.LogicOpReadsDst {
		if cntl.LrzWrite {
			r.perf(ctx, "disabling lrz write due to logic op reading dst")
		}
		cntl.LrzWrite = false
	}
	if draw.BlendEnabled {
		if cntl.LrzWrite {
			r.perf(ctx, "disabling lrz write due to blending")
		}
		cntl.LrzWrite = false
	}
	for i, a := range r.pass.Subpasses[r.subpass].ColorAttachments {
		if a == renderpass.AttachmentUnused || i >= len(draw.ColorWriteMasks) {
			continue
		}
		if draw.ColorWriteMasks[i] != gputypes.ColorWriteMaskAll {
			if cntl.LrzWrite {
				r.perf(ctx, "disabling lrz write due to partial color write mask")
			}
			cntl.LrzWrite = false
			break
		}
	}
	colorCount := len(r.pass.Subpasses[r.subpass].ColorAttachments)
	if draw.ColorWriteEnable&targetMask(colorCount) != targetMask(draw.NumRenderTargets) {
		if cntl.LrzWrite {
			r.perf(ctx, "disabling lrz write due to per-target color write enables (%x/%x)",
				draw.ColorWriteEnable, targetMask(draw.NumRenderTargets))
		}
		cntl.LrzWrite = false
	}

	// LRZ stays disabled until the next clear, so one "wrong" draw can
	// cost early-Z for the rest of the pass.
	disableLrz := false
	temporaryDisableLrz := false

	// Fragment shader side effects must not be pre-culled. Testing and
	// updating are skipped for this draw, but as long as the direction
	// stays the same testing can resume later.
	if draw.ForceDisable&pipeline.ForceDisableTest != 0 {
		if r.State.PrevDirection != DirUnknown || !r.State.GPUDirTracking {
			r.perf(ctx, "skipping lrz due to fragment shader")
			temporaryDisableLrz = true
		} else {
			// TODO: with device tracking and no direction locked yet this
			// could also be a skip, if the device-side direction byte is
			// left unset for the draw.
			r.perf(ctx, "disabling lrz due to fragment shader")
			disableLrz = true
		}
	}

	// If depth is not written the draw cannot corrupt the LRZ buffer:
	// the direction is not locked until a write happens, and a direction
	// change without a write only needs the one draw skipped.
	direction := DirUnknown
	switch draw.DepthCompareOp {
	case gputypes.CompareFunctionAlways, gputypes.CompareFunctionNotEqual:
		// Depth values of any direction may be written.
		if draw.DepthWriteEnable {
			r.perf(ctx, "invalidating lrz due to Always/NotEqual")
			disableLrz = true
			cntl.Dir = regs.DirInvalid
		} else {
			r.perf(ctx, "skipping lrz due to Always/NotEqual")
			temporaryDisableLrz = true
		}
	case gputypes.CompareFunctionEqual, gputypes.CompareFunctionNever:
		// Neither op changes the LRZ buffer, so skipping the draw is
		// enough.
		temporaryDisableLrz = true
	case gputypes.CompareFunctionGreater, gputypes.CompareFunctionGreaterEqual:
		direction = DirGreater
		cntl.Greater = true
		cntl.Dir = regs.DirGE
	case gputypes.CompareFunctionLess, gputypes.CompareFunctionLessEqual:
		direction = DirLess
		cntl.Dir = regs.DirLE
	default:
		panic(fmt.Sprintf("lrz: bad compare function %v", draw.DepthCompareOp))
	}

	// The LRZ buffer encodes one depth bound per block; switching between
	// the greater and less families makes those bounds unreadable.
	if r.State.PrevDirection != DirUnknown && direction != DirUnknown &&
		r.State.PrevDirection != direction {
		if draw.DepthWriteEnable {
			r.perf(ctx, "invalidating lrz due to direction change")
			disableLrz = true
		} else {
			r.perf(ctx, "skipping lrz due to direction change")
			temporaryDisableLrz = true
		}
	}

	// Consider Greater -> Equal -> Greater: LRZ is skipped for the Equal
	// draw and can resume on the second Greater. But Greater -> Equal ->
	// Less must invalidate on the Less draw. Hence: keep the last KNOWN
	// direction, advanced only by draws that write depth.
	if draw.DepthWriteEnable && direction != DirUnknown {
		r.State.PrevDirection = direction
	}

	if !disableLrz && draw.StencilTestEnable {
		allowed := true
		allowed = allowed && stencilOpAllowed(&cntl, draw.StencilFront.CompareOp, draw.StencilFront.WriteEnabled)
		allowed = allowed && stencilOpAllowed(&cntl, draw.StencilBack.CompareOp, draw.StencilBack.WriteEnabled)

		// Without a depth write it is enough to order the depth test after
		// the stencil test, so skipping the draw suffices.
		if !allowed {
			if draw.DepthWriteEnable {
				r.perf(ctx, "invalidating lrz due to stencil write")
				disableLrz = true
			} else {
				r.perf(ctx, "skipping lrz due to stencil write")
				temporaryDisableLrz = true
			}
		}
	}

	if disableLrz {
		r.State.Valid = false
	}

	if disableLrz && r.State.GPUDirTracking {
		// The device-side direction byte must learn "disabled" explicitly;
		// an empty control word would leave the stale direction behind for
		// the next consumer.
		cntl.Enable = true
		cntl.Dir = regs.DirInvalid
		return cntl
	}

	if temporaryDisableLrz {
		cntl.Enable = false
	}

	r.State.Enabled = r.State.Valid && cntl.Enable
	if !r.State.Enabled {
		cntl = regs.LrzCntl{}
	}
	return cntl
}

func targetMask(n int) uint32 {
	return uint32(1)<<n - 1
}

// EmitDraw computes the directive for one draw, advances the tracker and
// writes the control registers to s. The computed control word is
// returned for callers that derive dependent state from it.
func (r *Recorder) EmitDraw(ctx context.Context, s *cs.Stream, draw *pipeline.DrawState) regs.LrzCntl {
	cntl := r.calculate(ctx, draw)
	r.writeLrzReg(s, regs.GrasLrzCntl, cntl.Pack())
	s.EmitRegisterWrite(regs.RbLrzCntl, regs.PackRbLrzCntl(cntl.Enable))
	return cntl
}
