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

package regs

import "fmt"

// LrzCntl is the unpacked GRAS_LRZ_CNTL word. The decision engine fills it
// field by field; the zero value is the "LRZ off for this draw" directive.
//
// ┌──────┬────────────────────┐
// │ bits │ field              │
// ├──────┼────────────────────┤
// │    0 │ Enable             │
// │    1 │ LrzWrite           │
// │    2 │ Greater            │
// │    3 │ FCEnable           │
// │    4 │ ZTestEnable        │
// │    5 │ ZBoundsEnable      │
// │    6 │ DirWrite           │
// │    7 │ DisableOnWrongDir  │
// │  9:8 │ Dir                │
// └──────┴────────────────────┘
type LrzCntl struct {
	Enable            bool
	LrzWrite          bool
	Greater           bool
	FCEnable          bool
	ZTestEnable       bool
	ZBoundsEnable     bool
	DirWrite          bool
	DisableOnWrongDir bool
	Dir               Dir
}

// Empty reports whether c is the all-off directive.
func (c LrzCntl) Empty() bool { return c == LrzCntl{} }

// Pack encodes c into the register word.
func (c LrzCntl) Pack() uint32 {
	v := setBit(0, 0, c.Enable)
	v = setBit(v, 1, c.LrzWrite)
	v = setBit(v, 2, c.Greater)
	v = setBit(v, 3, c.FCEnable)
	v = setBit(v, 4, c.ZTestEnable)
	v = setBit(v, 5, c.ZBoundsEnable)
	v = setBit(v, 6, c.DirWrite)
	v = setBit(v, 7, c.DisableOnWrongDir)
	return v | uint32(c.Dir)<<8
}

// UnpackLrzCntl decodes a GRAS_LRZ_CNTL register word.
func UnpackLrzCntl(v uint32) LrzCntl {
	return LrzCntl{
		Enable:            bit(v, 0),
		LrzWrite:          bit(v, 1),
		Greater:           bit(v, 2),
		FCEnable:          bit(v, 3),
		ZTestEnable:       bit(v, 4),
		ZBoundsEnable:     bit(v, 5),
		DirWrite:          bit(v, 6),
		DisableOnWrongDir: bit(v, 7),
		Dir:               Dir(v >> 8 & 0x3),
	}
}

// DepthView is the unpacked GRAS_LRZ_DEPTH_VIEW word identifying the depth
// subresource the LRZ buffer describes.
//
// ┌───────┬───────────────┐
// │  bits │ field         │
// ├───────┼───────────────┤
// │  10:0 │ BaseLayer     │
// │ 21:11 │ LayerCount    │
// │ 25:22 │ BaseMipLevel  │
// └───────┴───────────────┘
type DepthView struct {
	BaseLayer    uint32
	LayerCount   uint32
	BaseMipLevel uint32
}

// InvalidDepthView returns the all-ones view that can never match a real
// subresource, used to force the device-side comparison to fail.
func InvalidDepthView() DepthView {
	return DepthView{BaseLayer: 0x7ff, LayerCount: 0x7ff, BaseMipLevel: 0xf}
}

// Pack encodes v into the register word.
func (v DepthView) Pack() uint32 {
	if v.BaseLayer > 0x7ff {
		panic(fmt.Errorf("BaseLayer exceeds 11 bits (0x%x)", v.BaseLayer))
	}
	if v.LayerCount > 0x7ff {
		panic(fmt.Errorf("LayerCount exceeds 11 bits (0x%x)", v.LayerCount))
	}
	if v.BaseMipLevel > 0xf {
		panic(fmt.Errorf("BaseMipLevel exceeds 4 bits (0x%x)", v.BaseMipLevel))
	}
	return v.BaseLayer | v.LayerCount<<11 | v.BaseMipLevel<<22
}

// UnpackDepthView decodes a GRAS_LRZ_DEPTH_VIEW register word.
func UnpackDepthView(w uint32) DepthView {
	return DepthView{
		BaseLayer:    w & 0x7ff,
		LayerCount:   w >> 11 & 0x7ff,
		BaseMipLevel: w >> 22 & 0xf,
	}
}

// PackRbLrzCntl encodes the render-backend LRZ enable word.
func PackRbLrzCntl(enable bool) uint32 {
	return setBit(0, 0, enable)
}

func bit(bits, idx uint32) bool {
	return bits&(1<<idx) != 0
}

func setBit(bits, idx uint32, v bool) uint32 {
	if v {
		return bits | (1 << idx)
	}
	return bits &^ (1 << idx)
}
