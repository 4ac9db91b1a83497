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

package main

import (
	"encoding/json"
	"os"

	"github.com/gogpu/gputypes"
	"github.com/pkg/errors"

	"github.com/adrenotools/lrz/device"
	"github.com/adrenotools/lrz/image"
	"github.com/adrenotools/lrz/pipeline"
	"github.com/adrenotools/lrz/renderpass"
)

// scenario is the JSON description of one render pass recording.
type scenario struct {
	Device string          `json:"device"`
	Image  scenarioImage   `json:"image"`
	Clear  *scenarioClear  `json:"clear,omitempty"`
	Load   bool            `json:"load,omitempty"`
	Sysmem bool            `json:"sysmem,omitempty"`
	Draws  []scenarioDraw  `json:"draws"`
}

type scenarioImage struct {
	Base          uint64 `json:"base"`
	LRZOffset     uint64 `json:"lrzOffset"`
	LRZPitch      uint32 `json:"lrzPitch"`
	LRZHeight     uint32 `json:"lrzHeight"`
	FastClearOffs uint64 `json:"fcOffset,omitempty"`
	FastClearSize uint32 `json:"fcSize,omitempty"`
}

type scenarioClear struct {
	Depth float32 `json:"depth"`
}

type scenarioDraw struct {
	DepthTest    bool   `json:"depthTest"`
	DepthWrite   bool   `json:"depthWrite"`
	CompareOp    string `json:"compareOp"`
	StencilTest  bool   `json:"stencilTest,omitempty"`
	StencilOp    string `json:"stencilOp,omitempty"`
	StencilWrite bool   `json:"stencilWrite,omitempty"`
	Blend        bool   `json:"blend,omitempty"`
}

var deviceByName = map[string]func() device.Info{
	"a630": device.A630,
	"a650": device.A650,
	"a660": device.A660,
}

var compareOpByName = map[string]gputypes.CompareFunction{
	"never":        gputypes.CompareFunctionNever,
	"less":         gputypes.CompareFunctionLess,
	"equal":        gputypes.CompareFunctionEqual,
	"lessequal":    gputypes.CompareFunctionLessEqual,
	"greater":      gputypes.CompareFunctionGreater,
	"notequal":     gputypes.CompareFunctionNotEqual,
	"greaterequal": gputypes.CompareFunctionGreaterEqual,
	"always":       gputypes.CompareFunctionAlways,
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if _, ok := deviceByName[s.Device]; !ok {
		return nil, errors.Errorf("unknown device %q", s.Device)
	}
	for i, d := range s.Draws {
		if _, ok := compareOpByName[d.CompareOp]; !ok {
			return nil, errors.Errorf("draw %d: unknown compare op %q", i, d.CompareOp)
		}
		if d.StencilTest {
			if _, ok := compareOpByName[d.StencilOp]; !ok {
				return nil, errors.Errorf("draw %d: unknown stencil op %q", i, d.StencilOp)
			}
		}
	}
	return &s, nil
}

func (s *scenario) deviceInfo() device.Info {
	return deviceByName[s.Device]()
}

func (s *scenario) view() *image.View {
	img := &image.Image{
		Base:            s.Image.Base,
		Format:          gputypes.TextureFormatDepth24PlusStencil8,
		LRZOffset:       s.Image.LRZOffset,
		LRZPitch:        s.Image.LRZPitch,
		LRZHeight:       s.Image.LRZHeight,
		FastClearOffset: s.Image.FastClearOffs,
		FastClearSize:   s.Image.FastClearSize,
	}
	return &image.View{Image: img, LayerCount: 1}
}

func (s *scenario) pass() *renderpass.Pass {
	att := renderpass.Attachment{
		Format: gputypes.TextureFormatDepth24PlusStencil8,
		Store:  true,
	}
	switch {
	case s.Clear != nil:
		att.ClearMask = image.AspectDepth | image.AspectStencil
	case s.Load:
		att.Load = true
	}
	return &renderpass.Pass{
		Attachments: []renderpass.Attachment{att},
		Subpasses: []renderpass.Subpass{{DepthStencilAttachment: 0}},
	}
}

func (s *scenario) clearValues() []renderpass.ClearValue {
	if s.Clear == nil {
		return []renderpass.ClearValue{{}}
	}
	return []renderpass.ClearValue{{Depth: s.Clear.Depth}}
}

func (d scenarioDraw) state() *pipeline.DrawState {
	st := &pipeline.DrawState{
		DepthTestEnable:  d.DepthTest,
		DepthWriteEnable: d.DepthWrite,
		DepthCompareOp:   compareOpByName[d.CompareOp],
		BlendEnabled:     d.Blend,
	}
	if d.StencilTest {
		st.StencilTestEnable = true
		face := pipeline.StencilFace{
			CompareOp:    compareOpByName[d.StencilOp],
			WriteEnabled: d.StencilWrite,
		}
		st.StencilFront, st.StencilBack = face, face
	}
	return st
}
