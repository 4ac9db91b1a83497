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

// Package image describes depth images as the LRZ controller sees them:
// device addresses and the layout of the auxiliary buffers carved out of
// the image's allocation. Image creation and residency belong to the
// caller; values here are plain metadata.
package image

import (
	"github.com/gogpu/gputypes"

	"github.com/adrenotools/lrz/regs"
)

// Image is the LRZ-relevant metadata of a depth image.
type Image struct {
	// Base is the device address of the image allocation.
	Base uint64
	// Format is the image format.
	Format gputypes.TextureFormat

	// LRZOffset is the offset of the LRZ buffer within the allocation.
	LRZOffset uint64
	// LRZPitch is the row pitch of the LRZ buffer.
	LRZPitch uint32
	// LRZHeight is the height of the LRZ buffer in rows. Zero means no LRZ
	// buffer was allocated for this image.
	LRZHeight uint32

	// FastClearOffset is the offset of the fast-clear bitmap within the
	// allocation, meaningful only when FastClearSize is non-zero.
	FastClearOffset uint64
	// FastClearSize is the size of the fast-clear bitmap in bytes. Zero
	// means fast-clear is unavailable for this image.
	FastClearSize uint32
}

// HasLRZ reports whether the image carries an LRZ buffer.
func (im *Image) HasLRZ() bool {
	return im != nil && im.LRZHeight > 0
}

// SupportsFastClear reports whether the image carries a fast-clear bitmap.
func (im *Image) SupportsFastClear() bool {
	return im != nil && im.FastClearSize > 0
}

// LRZBase returns the device address of the LRZ buffer.
func (im *Image) LRZBase() uint64 {
	return im.Base + im.LRZOffset
}

// FastClearBase returns the device address of the fast-clear bitmap, or
// zero when the image has none.
func (im *Image) FastClearBase() uint64 {
	if im.FastClearSize == 0 {
		return 0
	}
	return im.Base + im.FastClearOffset
}

// View is a single-subresource view of a depth image. The LRZ buffer only
// ever describes one layer and mip level; the view identifies which.
type View struct {
	Image        *Image
	BaseLayer    uint32
	LayerCount   uint32
	BaseMipLevel uint32
}

// DepthView returns the register view identity for the subresource.
func (v *View) DepthView() regs.DepthView {
	return regs.DepthView{
		BaseLayer:    v.BaseLayer,
		LayerCount:   v.LayerCount,
		BaseMipLevel: v.BaseMipLevel,
	}
}

// HasDepthAspect reports whether format carries a depth aspect.
func HasDepthAspect(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatDepth16Unorm,
		gputypes.TextureFormatDepth24Plus,
		gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth32Float,
		gputypes.TextureFormatDepth32FloatStencil8:
		return true
	default:
		return false
	}
}
