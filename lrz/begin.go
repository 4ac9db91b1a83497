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

	"github.com/pkg/errors"

	"github.com/adrenotools/lrz/cs"
	"github.com/adrenotools/lrz/debug"
	"github.com/adrenotools/lrz/image"
	"github.com/adrenotools/lrz/log"
	"github.com/adrenotools/lrz/renderpass"
)

// initState populates the tracker for a primary render pass whose depth
// attachment is att/view.
func (r *Recorder) initState(ctx context.Context, att renderpass.Attachment, view *image.View) {
	if !view.Image.HasLRZ() {
		// A depth-format attachment without an LRZ buffer is a
		// configuration inconsistency unless LRZ was deliberately disabled
		// at image creation. Degrade to no-LRZ either way; only the
		// logging differs.
		if image.HasDepthAspect(att.Format) && !r.flags.Has(debug.NoLRZ) {
			log.E(ctx, "depth attachment image has no LRZ buffer")
		}
		return
	}

	clearsDepth := att.ClearsDepth()
	hasTracking := r.dev.HasDirTracking

	if !hasTracking && !clearsDepth {
		return
	}

	// Always keep the view once LRZ exists here: if the pass contents live
	// in secondary streams with device tracking, a buffer must be bound
	// even when LRZ ends up dynamically disabled, or the secondaries read
	// a null/garbage buffer.
	r.State.View = view

	if !clearsDepth && !att.Load {
		return
	}

	r.State.Valid = true
	r.State.PrevDirection = DirUnknown
	// Optimistic: when reusing a previous pass's state there is no clear
	// to prove fast-clear eligibility, so eligibility is taken from the
	// image alone and the recorded clear (if any) narrows it below.
	r.State.FastClear = view.Image.SupportsFastClear() &&
		r.dev.HasFastClear && !r.flags.Has(debug.NoFastClear)
	r.State.GPUDirTracking = hasTracking
	r.State.ReusePreviousState = !clearsDepth
}

// initSecondary populates the tracker for a secondary command stream whose
// subpass binds att as the depth attachment.
func (r *Recorder) initSecondary(ctx context.Context, att renderpass.Attachment) {
	if !r.dev.HasDirTracking {
		// Without device-side tracking a secondary stream cannot know
		// whether the primary's LRZ is still valid; leave it disabled.
		return
	}
	if r.flags.Has(debug.NoLRZ) {
		return
	}
	if !image.HasDepthAspect(att.Format) {
		return
	}

	r.State.Valid = true
	r.State.PrevDirection = DirUnknown
	r.State.GPUDirTracking = true

	// The depth image is not visible inside a secondary, so be even more
	// optimistic than the primary path and enable fast-clear regardless of
	// image support; the device resolves the truth at execution.
	r.State.FastClear = !r.flags.Has(debug.NoFastClear)

	// Not used inside secondaries.
	r.State.View = nil
	r.State.ReusePreviousState = false
}

// BeginResumedRenderPass resets and repopulates the tracker for a resumed
// render pass. Identical to BeginRenderPass except that nothing is
// emitted: state must be consistent across suspend/resume, but only the
// first pass of the chain emits the disable/init commands.
func (r *Recorder) BeginResumedRenderPass(ctx context.Context, pass *renderpass.Pass, attachments []*image.View, clears []renderpass.ClearValue) error {
	if err := pass.Validate(); err != nil {
		return err
	}
	if len(attachments) != len(pass.Attachments) {
		return errors.Errorf("have %d attachment views for %d attachments",
			len(attachments), len(pass.Attachments))
	}

	r.State = State{}
	r.pass = pass
	r.attachments = attachments
	r.subpass = 0

	a := renderpass.AttachmentUnused
	for _, sp := range pass.Subpasses {
		if sp.DepthStencilAttachment != renderpass.AttachmentUnused {
			a = sp.DepthStencilAttachment
			break
		}
	}
	if a == renderpass.AttachmentUnused || attachments[a] == nil {
		return nil
	}

	att := pass.Attachments[a]
	r.initState(ctx, att, attachments[a])
	if r.State.Valid && att.ClearsDepth() {
		var clear renderpass.ClearValue
		if a < len(clears) {
			clear = clears[a]
		}
		r.State.DepthClearValue = clear.Depth
		r.State.HasClearValue = true
		r.State.FastClear = r.State.FastClear &&
			(clear.Depth == 0 || clear.Depth == 1)
	}
	return nil
}

// BeginRenderPass resets the tracker and prepares LRZ for a primary render
// pass recorded into s.
func (r *Recorder) BeginRenderPass(ctx context.Context, s *cs.Stream, pass *renderpass.Pass, attachments []*image.View, clears []renderpass.ClearValue) error {
	if err := pass.Validate(); err != nil {
		return err
	}
	if len(attachments) != len(pass.Attachments) {
		return errors.Errorf("have %d attachment views for %d attachments",
			len(attachments), len(pass.Attachments))
	}

	lrzImages := 0
	for _, view := range attachments {
		if view != nil && view.Image.HasLRZ() {
			lrzImages++
		}
	}

	if r.dev.HasDirTracking && len(pass.Subpasses) > 1 && lrzImages > 1 {
		// Switching LRZ buffers between subpasses is possible in theory
		// but adds complexity for a presumably vanishingly rare case.
		r.perf(ctx, "invalidating LRZ: several subpasses with different depth attachments in one render pass")

		for _, view := range attachments {
			if view != nil {
				r.DisableForImage(ctx, s, view.Image)
			}
		}

		// A valid fast-clear base must stay bound in case the pass
		// contents are secondaries that enable LRZ, so they can read that
		// it is dynamically disabled. Which image's base is irrelevant;
		// the last one emitted above serves.
		r.State = State{}
		r.pass = pass
		r.attachments = attachments
		r.subpass = 0
		return nil
	}

	if err := r.BeginResumedRenderPass(ctx, pass, attachments, clears); err != nil {
		return err
	}

	if !r.State.Valid {
		r.emitBuffer(s, nil)
	}
	return nil
}

// BeginSecondary resets the tracker for a secondary command stream that
// executes inside subpass of pass.
func (r *Recorder) BeginSecondary(ctx context.Context, pass *renderpass.Pass, subpass int) error {
	if err := pass.Validate(); err != nil {
		return err
	}
	if subpass < 0 || subpass >= len(pass.Subpasses) {
		return errors.Errorf("subpass %d out of range", subpass)
	}

	r.State = State{}
	r.pass = pass
	r.attachments = nil
	r.subpass = subpass

	if a := pass.Subpasses[subpass].DepthStencilAttachment; a != renderpass.AttachmentUnused {
		r.initSecondary(ctx, pass.Attachments[a])
	}
	return nil
}
