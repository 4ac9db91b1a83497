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

	"github.com/adrenotools/lrz/cs"
	"github.com/adrenotools/lrz/regs"
)

// TilingBegin prepares the LRZ buffer at the start of the binned (tiled)
// rendering of the current pass.
func (r *Recorder) TilingBegin(ctx context.Context, s *cs.Stream) {
	// TODO: exit early when LRZ was never valid for the entire pass. The
	// view is sometimes nulled out ahead of time, but with a dont-care
	// load op that only happens when there are no secondaries.
	if r.State.View == nil {
		return
	}

	lrz := &r.State
	r.emitBuffer(s, lrz.View.Image)

	if lrz.ReusePreviousState {
		// The previous pass left the buffer primed and its caches flushed;
		// only the view identity needs re-asserting.
		if !lrz.GPUDirTracking {
			panic("lrz: reuse of previous pass state requires device-side direction tracking")
		}
		r.writeLrzReg(s, regs.GrasLrzDepthView, lrz.View.DepthView().Pack())
		return
	}

	invalidate := !lrz.Valid && lrz.GPUDirTracking
	if invalidate {
		// LRZ is known to be off somewhere in this pass, so disable it for
		// the whole pass: make every later control-word consumption fail
		// the depth view comparison, including in secondary streams that
		// never saw this stream's decisions.
		r.disableViaDepthView(s)
		r.writeLrzReg(s, regs.GrasLrzDepthView, 0)
	} else if lrz.FastClear || lrz.GPUDirTracking {
		if lrz.GPUDirTracking {
			r.writeLrzReg(s, regs.GrasLrzDepthView, lrz.View.DepthView().Pack())
		}

		// With FCEnable the clear event resets the fast-clear bitmap; with
		// DisableOnWrongDir it resets the direction byte to unset.
		r.writeLrzReg(s, regs.GrasLrzCntl, regs.LrzCntl{
			Enable:            true,
			FCEnable:          lrz.FastClear,
			DisableOnWrongDir: lrz.GPUDirTracking,
		}.Pack())
		s.EmitCacheEvent(cs.EventLRZClear)
	}

	if !lrz.FastClear && !invalidate {
		r.rawClear(s, lrz.View.Image, lrz.DepthClearValue)

		// Fast-clear is off for this pass, but secondary streams and
		// following passes cannot know that; dirty the bitmap so their
		// optimistic fast-clear reads real depth.
		//
		// TODO: skippable when the depth attachment is not stored and no
		// secondaries are expected.
		if lrz.View.Image.SupportsFastClear() {
			r.dirtyFastClear(s, lrz.View.Image)
		}
	}
}

// TilingEnd commits the LRZ state at the end of the binned rendering of
// the current pass. Both caches are flushed unconditionally so a
// following pass's reuse, or any post-pass read, sees committed state.
func (r *Recorder) TilingEnd(ctx context.Context, s *cs.Stream) {
	lrz := &r.State

	if lrz.FastClear || lrz.GPUDirTracking {
		r.emitBuffer(s, lrz.View.Image)

		if lrz.GPUDirTracking {
			r.writeLrzReg(s, regs.GrasLrzDepthView, lrz.View.DepthView().Pack())
		}

		// Enable flushing of the fast-clear bitmap and of the direction
		// buffer.
		r.writeLrzReg(s, regs.GrasLrzCntl, regs.LrzCntl{
			Enable:            true,
			FCEnable:          lrz.FastClear,
			DisableOnWrongDir: lrz.GPUDirTracking,
		}.Pack())
	} else {
		r.writeLrzReg(s, regs.GrasLrzCntl, regs.LrzCntl{}.Pack())
	}

	s.EmitCacheEvent(cs.EventLRZFlush)

	// With device tracking and an invalid tracker, an additional clear of
	// the direction buffer could be emitted here (invalid view, zero view,
	// disable-on-wrong-dir control word, clear, flush). No scenario is
	// known to require it since rendering is already done, so it is
	// deliberately not emitted.
}

// SysmemBegin prepares LRZ for non-binned (direct to system memory)
// rendering of the current pass. Sysmem rendering is not ordered by the
// binning pass, so the early-reject guarantees do not hold; LRZ writes
// stay off for the pass.
func (r *Recorder) SysmemBegin(ctx context.Context, s *cs.Stream) {
	if r.State.View == nil {
		return
	}

	// The LRZ buffer could in theory be filled in sysmem for a later
	// pass's benefit, but the benefit is dubious.

	lrz := &r.State
	if r.dev.HasDirTracking {
		r.DisableForImage(ctx, s, lrz.View.Image)
		// Make sure the depth view comparison fails.
		r.writeLrzReg(s, regs.GrasLrzDepthView, 0)
		return
	}

	r.emitBuffer(s, lrz.View.Image)
	// LRZ writes are disabled in sysmem mode, but the LRZ test still runs,
	// so the buffer must hold the clear value.
	if lrz.FastClear {
		r.writeLrzReg(s, regs.GrasLrzCntl, regs.LrzCntl{
			Enable:   true,
			FCEnable: true,
		}.Pack())
		s.EmitCacheEvent(cs.EventLRZClear)
		s.EmitCacheEvent(cs.EventLRZFlush)
	} else {
		r.rawClear(s, lrz.View.Image, lrz.DepthClearValue)
	}
}

// SysmemEnd flushes the LRZ caches after non-binned rendering.
func (r *Recorder) SysmemEnd(ctx context.Context, s *cs.Stream) {
	s.EmitCacheEvent(cs.EventLRZFlush)
}
