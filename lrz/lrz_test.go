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
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"

	"github.com/adrenotools/lrz/cs"
	"github.com/adrenotools/lrz/image"
	"github.com/adrenotools/lrz/log"
	"github.com/adrenotools/lrz/pipeline"
	"github.com/adrenotools/lrz/renderpass"
)

func testCtx(t *testing.T) context.Context { return log.Testing(t) }

// testImage returns a depth image with an LRZ buffer at base+0x1000 and a
// fast-clear bitmap at base+0x2000.
func testImage() *image.Image {
	return &image.Image{
		Base:            0x10000,
		Format:          gputypes.TextureFormatDepth24PlusStencil8,
		LRZOffset:       0x1000,
		LRZPitch:        64,
		LRZHeight:       32,
		FastClearOffset: 0x2000,
		FastClearSize:   512,
	}
}

func testView() *image.View {
	return &image.View{Image: testImage(), LayerCount: 1}
}

func depthAtt(clear bool) renderpass.Attachment {
	att := renderpass.Attachment{
		Format: gputypes.TextureFormatDepth24PlusStencil8,
		Store:  true,
	}
	if clear {
		att.ClearMask = image.AspectDepth | image.AspectStencil
	} else {
		att.Load = true
	}
	return att
}

// clearPass is a depth-only pass whose attachment is cleared on load.
func clearPass() *renderpass.Pass {
	return &renderpass.Pass{
		Attachments: []renderpass.Attachment{depthAtt(true)},
		Subpasses:   []renderpass.Subpass{{DepthStencilAttachment: 0}},
	}
}

// loadPass is a depth-only pass whose attachment loads previous contents.
func loadPass() *renderpass.Pass {
	return &renderpass.Pass{
		Attachments: []renderpass.Attachment{depthAtt(false)},
		Subpasses:   []renderpass.Subpass{{DepthStencilAttachment: 0}},
	}
}

// begin starts pass on r with a single depth attachment view and returns
// the stream the begin commands were recorded into.
func begin(t *testing.T, r *Recorder, pass *renderpass.Pass, view *image.View, clearDepth float32) *cs.Stream {
	s := cs.New()
	err := r.BeginRenderPass(testCtx(t), s, pass,
		[]*image.View{view}, []renderpass.ClearValue{{Depth: clearDepth}})
	require.NoError(t, err)
	return s
}

func draw(op gputypes.CompareFunction, write bool) *pipeline.DrawState {
	return &pipeline.DrawState{
		DepthTestEnable:  true,
		DepthWriteEnable: write,
		DepthCompareOp:   op,
	}
}
