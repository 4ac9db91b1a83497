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

// Package renderpass holds the render pass descriptors the LRZ controller
// consumes. The real pass machinery lives with the caller; these types
// carry just the attachment and subpass facts the controller reads.
package renderpass

import (
	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"github.com/adrenotools/lrz/image"
)

// AttachmentUnused marks an absent attachment reference.
const AttachmentUnused = -1

// Attachment describes one render pass attachment.
type Attachment struct {
	// Format is the attachment's image format.
	Format gputypes.TextureFormat
	// ClearMask holds the aspects cleared on load.
	ClearMask image.Aspect
	// Load is set when the attachment's previous contents are loaded
	// rather than cleared or discarded.
	Load bool
	// Store is set when the attachment's contents are written back at the
	// end of the pass.
	Store bool
}

// DepthAttachment builds a depth attachment from load/store operations.
// The discard case is a load op that is neither load nor clear.
func DepthAttachment(format gputypes.TextureFormat, load gputypes.LoadOp, store gputypes.StoreOp) Attachment {
	att := Attachment{Format: format, Store: store == gputypes.StoreOpStore}
	switch load {
	case gputypes.LoadOpClear:
		att.ClearMask = image.AspectDepth | image.AspectStencil
	case gputypes.LoadOpLoad:
		att.Load = true
	}
	return att
}

// ClearsDepth reports whether loading the attachment clears depth data.
// A combined clear of any color or depth aspect counts; stencil-only
// clears do not touch the depth plane.
func (a Attachment) ClearsDepth() bool {
	return a.ClearMask&(image.AspectColor|image.AspectDepth) != 0
}

// Subpass references attachments by index into the pass attachment list.
type Subpass struct {
	// DepthStencilAttachment is the depth attachment index, or
	// AttachmentUnused.
	DepthStencilAttachment int
	// ColorAttachments are the color attachment indices; entries may be
	// AttachmentUnused.
	ColorAttachments []int
}

// Pass is a render pass description.
type Pass struct {
	Attachments []Attachment
	Subpasses   []Subpass
}

// ClearValue is the clear value recorded for an attachment.
type ClearValue struct {
	Depth   float32
	Stencil uint32
}

// Validate checks that subpass attachment references are in range.
func (p *Pass) Validate() error {
	if len(p.Subpasses) == 0 {
		return errors.New("render pass has no subpasses")
	}
	for i, sp := range p.Subpasses {
		if a := sp.DepthStencilAttachment; a != AttachmentUnused && (a < 0 || a >= len(p.Attachments)) {
			return errors.Errorf("subpass %d: depth attachment %d out of range", i, a)
		}
		for j, a := range sp.ColorAttachments {
			if a != AttachmentUnused && (a < 0 || a >= len(p.Attachments)) {
				return errors.Errorf("subpass %d: color attachment %d (%d) out of range", i, j, a)
			}
		}
	}
	return nil
}
