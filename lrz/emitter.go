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

	"github.com/chewxy/math32"

	"github.com/adrenotools/lrz/cs"
	"github.com/adrenotools/lrz/image"
	"github.com/adrenotools/lrz/regs"
)

// writeLrzReg writes one of the tracked LRZ registers (control word, depth
// view), routing through the indirect tracked-register path on generations
// with the erratum.
func (r *Recorder) writeLrzReg(s *cs.Stream, reg, value uint32) {
	if r.dev.TrackQuirk {
		s.EmitTrackedRegisterWrite(regs.TrackerLRZ, reg, value)
	} else {
		s.EmitRegisterWrite(reg, value)
	}
}

// emitBuffer points the device at the image's LRZ and fast-clear buffers.
// A nil image writes null bases, detaching the device from any buffer.
func (r *Recorder) emitBuffer(s *cs.Stream, img *image.Image) {
	if img == nil {
		s.EmitRegisterWrite64(regs.GrasLrzBufferBase, 0)
		s.EmitRegisterWrite(regs.GrasLrzBufferPitch, 0)
		s.EmitRegisterWrite64(regs.GrasLrzFastClearBufferBase, 0)
		return
	}
	s.EmitRegisterWrite64(regs.GrasLrzBufferBase, img.LRZBase())
	s.EmitRegisterWrite(regs.GrasLrzBufferPitch, img.LRZPitch)
	s.EmitRegisterWrite64(regs.GrasLrzFastClearBufferBase, img.FastClearBase())
}

// disableViaDepthView makes any later control-word consumption fail the
// device-side depth view comparison: write a view identity no real
// subresource can have, then a control word asking the device to compare,
// then clear and flush so the bogus identity is committed.
func (r *Recorder) disableViaDepthView(s *cs.Stream) {
	r.writeLrzReg(s, regs.GrasLrzDepthView, regs.InvalidDepthView().Pack())
	r.writeLrzReg(s, regs.GrasLrzCntl, regs.LrzCntl{
		Enable:            true,
		DisableOnWrongDir: true,
	}.Pack())
	s.EmitCacheEvent(cs.EventLRZClear)
	s.EmitCacheEvent(cs.EventLRZFlush)
}

// clearValueZ16 converts a depth clear value to the Z16_UNORM value the
// LRZ buffer stores.
func clearValueZ16(depth float32) uint16 {
	d := math32.Max(0, math32.Min(1, depth))
	return uint16(math32.Round(d * 0xffff))
}

// rawClear fills the image's LRZ buffer with the clear value through the
// blit engine.
func (r *Recorder) rawClear(s *cs.Stream, img *image.Image, depth float32) {
	s.EmitRawClear(img.LRZBase(), img.LRZPitch, img.LRZHeight, clearValueZ16(depth))
}

// dirtyFastClear marks every fast-clear bitmap block as modified, so
// consumers that optimistically enable fast-clear (secondary streams,
// following passes) read depth from the LRZ buffer instead of assuming
// the clear value.
func (r *Recorder) dirtyFastClear(s *cs.Stream, img *image.Image) {
	s.EmitRawClear(img.FastClearBase(), img.FastClearSize, 1, 0xffff)
}

// DisableForImage invalidates any LRZ state recorded for img, outside a
// render pass. Called after operations that write the depth image behind
// the render pass machinery (blits, copies), since external writes
// invalidate any cached direction assumption. A no-op without device-side
// tracking: processor-tracked state never outlives a pass to begin with.
func (r *Recorder) DisableForImage(ctx context.Context, s *cs.Stream, img *image.Image) {
	if !r.dev.HasDirTracking {
		return
	}
	if !img.HasLRZ() {
		return
	}
	r.emitBuffer(s, img)
	r.disableViaDepthView(s)
}

// ClearDepthImage re-primes img's LRZ buffer for an out-of-pass depth
// clear. The depth subresource used later is unknowable here, so the
// first range clearing depth elects the view identity.
func (r *Recorder) ClearDepthImage(ctx context.Context, s *cs.Stream, img *image.Image, depth float32, ranges []image.SubresourceRange) {
	if len(ranges) == 0 || !img.HasLRZ() || !r.dev.HasDirTracking {
		return
	}

	var rng *image.SubresourceRange
	for i := range ranges {
		if ranges[i].Aspects&(image.AspectColor|image.AspectDepth) != 0 {
			rng = &ranges[i]
			break
		}
	}
	if rng == nil {
		return
	}

	fastClear := img.SupportsFastClear() && (depth == 0 || depth == 1)

	r.emitBuffer(s, img)
	r.writeLrzReg(s, regs.GrasLrzDepthView, regs.DepthView{
		BaseLayer:    rng.BaseLayer,
		LayerCount:   rng.LayerCount,
		BaseMipLevel: rng.BaseMipLevel,
	}.Pack())
	r.writeLrzReg(s, regs.GrasLrzCntl, regs.LrzCntl{
		Enable:            true,
		FCEnable:          fastClear,
		DisableOnWrongDir: true,
	}.Pack())
	s.EmitCacheEvent(cs.EventLRZClear)
	s.EmitCacheEvent(cs.EventLRZFlush)

	if !fastClear {
		r.rawClear(s, img, depth)
	}
}

// DisableDuringRenderPass invalidates LRZ for the remainder of the current
// pass, for depth writes that bypass the draw path (attachment clears).
// With device-side tracking the direction byte must be told explicitly;
// an empty control word would leave the stale direction in place.
func (r *Recorder) DisableDuringRenderPass(ctx context.Context, s *cs.Stream) {
	if r.pass == nil {
		panic("lrz: DisableDuringRenderPass outside a render pass")
	}

	r.State.Valid = false

	if r.State.GPUDirTracking {
		r.writeLrzReg(s, regs.GrasLrzCntl, regs.LrzCntl{
			Enable:            true,
			Dir:               regs.DirInvalid,
			DisableOnWrongDir: true,
		}.Pack())
	}
}
