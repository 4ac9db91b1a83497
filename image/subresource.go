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

package image

// Aspect is a bitmask of image aspects.
type Aspect uint8

const (
	AspectColor Aspect = 1 << iota
	AspectDepth
	AspectStencil
)

// SubresourceRange selects layers and mip levels of an image, with the
// aspects an operation touches.
type SubresourceRange struct {
	Aspects      Aspect
	BaseLayer    uint32
	LayerCount   uint32
	BaseMipLevel uint32
	MipCount     uint32
}
