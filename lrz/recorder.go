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

// Package lrz decides, per draw and per render pass, whether the
// low-resolution Z buffer may be trusted, and emits the command-stream
// writes that keep it consistent with the depth attachment.
//
// LRZ is close to a depth prepass the hardware maintains for free: during
// binning the depth of each primitive is recorded into a coarse buffer,
// and later draws are tested against it before the fragment shader runs.
// The catch is that the recorded values are only meaningful under a single
// comparison direction and only while every depth write went through the
// same bookkeeping, so a large part of this package is deciding when the
// buffer must no longer be trusted.
//
// Without device-side direction tracking the direction lives purely in the
// recording processor: it starts unknown each render pass, is set by the
// first depth write, and any later direction change invalidates LRZ for
// the rest of the pass. Nothing survives across passes or into secondary
// command streams, because no other stream can see this one's decisions.
//
// With device-side direction tracking the device stores the current
// direction and the identity of the last-used depth view next to the LRZ
// buffer. Every control word it consumes is checked against both, and LRZ
// turns itself off on mismatch. That check is what makes cross-pass reuse
// and secondary command streams safe without any shared processor state.
//
// Cache policy: every state-changing write to the LRZ buffer is followed
// by a flush of both LRZ caches (fast-clear bitmap; direction byte + depth
// view), so downstream consumers never need to flush before reading.
package lrz

import (
	"context"

	"github.com/adrenotools/lrz/debug"
	"github.com/adrenotools/lrz/device"
	"github.com/adrenotools/lrz/image"
	"github.com/adrenotools/lrz/log"
	"github.com/adrenotools/lrz/renderpass"
)

// Recorder tracks LRZ state for one command stream recording context.
// A recorder is not safe for concurrent use; each recording context owns
// exactly one, and cross-stream consistency comes from the device-side
// depth view check, not from locking.
type Recorder struct {
	dev   device.Info
	flags debug.Flags

	// State is the live per-pass record. Exposed for downstream state that
	// depends on the last per-draw decision.
	State State

	pass        *renderpass.Pass
	attachments []*image.View // nil when recording a secondary stream
	subpass     int
}

// NewRecorder returns a recorder for a device generation. Debug overrides
// are taken from the environment; use NewRecorderFlags to inject them.
func NewRecorder(dev device.Info) *Recorder {
	return NewRecorderFlags(dev, debug.FromEnv())
}

// NewRecorderFlags returns a recorder with explicit debug overrides.
func NewRecorderFlags(dev device.Info, flags debug.Flags) *Recorder {
	return &Recorder{dev: dev, flags: flags}
}

// Device returns the capability descriptor the recorder was built with.
func (r *Recorder) Device() device.Info { return r.dev }

// SetSubpass moves the recorder to subpass i of the current pass.
func (r *Recorder) SetSubpass(i int) { r.subpass = i }

// perf logs a performance warning when the perf debug flag is set. Every
// conservative downgrade goes through here so the cost of a disabled LRZ
// is visible, never silent.
func (r *Recorder) perf(ctx context.Context, f string, args ...interface{}) {
	if r.flags.Has(debug.Perf) {
		log.W(ctx, f, args...)
	}
}

// depthAttachment returns the current subpass's depth attachment index, or
// renderpass.AttachmentUnused.
func (r *Recorder) depthAttachment() int {
	if r.pass == nil || r.subpass >= len(r.pass.Subpasses) {
		return renderpass.AttachmentUnused
	}
	return r.pass.Subpasses[r.subpass].DepthStencilAttachment
}
