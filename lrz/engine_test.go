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
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrenotools/lrz/cs"
	"github.com/adrenotools/lrz/debug"
	"github.com/adrenotools/lrz/device"
	"github.com/adrenotools/lrz/image"
	"github.com/adrenotools/lrz/pipeline"
	"github.com/adrenotools/lrz/regs"
	"github.com/adrenotools/lrz/renderpass"
)

// lessWrite is the expected control word for a plain Less draw that writes
// depth, in a cleared fast-clear-eligible pass.
func lessWrite(tracking bool) regs.LrzCntl {
	return regs.LrzCntl{
		Enable:            true,
		LrzWrite:          true,
		ZTestEnable:       true,
		FCEnable:          true,
		DirWrite:          tracking,
		DisableOnWrongDir: tracking,
		Dir:               regs.DirLE,
	}
}

func TestFirstWriteLocksDirection(t *testing.T) {
	for _, dev := range []device.Info{device.A630(), device.A660()} {
		t.Run(dev.Gen.String(), func(t *testing.T) {
			r := NewRecorderFlags(dev, 0)
			begin(t, r, clearPass(), testView(), 1)

			cntl := r.calculate(testCtx(t), draw(gputypes.CompareFunctionLess, true))
			assert.Equal(t, lessWrite(dev.HasDirTracking), cntl)
			assert.Equal(t, DirLess, r.State.PrevDirection)
			assert.True(t, r.State.Valid)
			assert.True(t, r.State.Enabled)
		})
	}
}

func TestGreaterFamily(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	begin(t, r, clearPass(), testView(), 1)

	cntl := r.calculate(testCtx(t), draw(gputypes.CompareFunctionGreaterEqual, true))
	want := lessWrite(true)
	want.Greater = true
	want.Dir = regs.DirGE
	assert.Equal(t, want, cntl)
	assert.Equal(t, DirGreater, r.State.PrevDirection)
}

func TestReadOnlyDrawNeverAdvancesDirection(t *testing.T) {
	r := NewRecorderFlags(device.A630(), 0)
	begin(t, r, clearPass(), testView(), 1)
	ctx := testCtx(t)

	r.calculate(ctx, draw(gputypes.CompareFunctionLess, true))
	require.Equal(t, DirLess, r.State.PrevDirection)

	for _, op := range []gputypes.CompareFunction{
		gputypes.CompareFunctionGreater,
		gputypes.CompareFunctionEqual,
		gputypes.CompareFunctionAlways,
		gputypes.CompareFunctionNever,
	} {
		r.calculate(ctx, draw(op, false))
		assert.Equal(t, DirLess, r.State.PrevDirection, op)
		assert.True(t, r.State.Valid, op)
	}
}

func TestDirectionFlipReadOnlySuspends(t *testing.T) {
	r := NewRecorderFlags(device.A630(), 0)
	begin(t, r, clearPass(), testView(), 1)
	ctx := testCtx(t)

	r.calculate(ctx, draw(gputypes.CompareFunctionLess, true))

	// Opposite direction without a depth write only skips this one draw.
	cntl := r.calculate(ctx, draw(gputypes.CompareFunctionGreater, false))
	assert.True(t, cntl.Empty())
	assert.False(t, r.State.Enabled)
	assert.True(t, r.State.Valid)

	// A compatible draw resumes testing.
	cntl = r.calculate(ctx, draw(gputypes.CompareFunctionLessEqual, true))
	assert.True(t, cntl.Enable)
	assert.True(t, r.State.Enabled)
}

func TestDirectionFlipWithWriteInvalidates(t *testing.T) {
	r := NewRecorderFlags(device.A630(), 0)
	begin(t, r, clearPass(), testView(), 1)
	ctx := testCtx(t)

	r.calculate(ctx, draw(gputypes.CompareFunctionLess, true))
	cntl := r.calculate(ctx, draw(gputypes.CompareFunctionGreater, true))
	assert.True(t, cntl.Empty())
	assert.False(t, r.State.Valid)

	// Invalidation is monotonic for the rest of the pass.
	for _, op := range []gputypes.CompareFunction{
		gputypes.CompareFunctionGreater,
		gputypes.CompareFunctionLess,
	} {
		cntl = r.calculate(ctx, draw(op, true))
		assert.True(t, cntl.Empty(), op)
		assert.False(t, r.State.Valid, op)
	}
}

func TestDirectionFlipWithTrackingEmitsInvalid(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	begin(t, r, clearPass(), testView(), 1)
	ctx := testCtx(t)

	r.calculate(ctx, draw(gputypes.CompareFunctionLess, true))
	cntl := r.calculate(ctx, draw(gputypes.CompareFunctionGreater, true))

	// The device-side direction byte must learn the invalidation; the
	// control word stays enabled with an explicit Invalid direction.
	assert.True(t, cntl.Enable)
	assert.Equal(t, regs.DirInvalid, cntl.Dir)
	assert.True(t, cntl.DisableOnWrongDir)
	assert.False(t, r.State.Valid)

	// Later draws see the invalid tracker and emit nothing.
	cntl = r.calculate(ctx, draw(gputypes.CompareFunctionLess, true))
	assert.True(t, cntl.Empty())
}

func TestAlwaysAndNotEqual(t *testing.T) {
	for _, op := range []gputypes.CompareFunction{
		gputypes.CompareFunctionAlways,
		gputypes.CompareFunctionNotEqual,
	} {
		t.Run("write", func(t *testing.T) {
			r := NewRecorderFlags(device.A630(), 0)
			begin(t, r, clearPass(), testView(), 1)
			cntl := r.calculate(testCtx(t), draw(op, true))
			assert.True(t, cntl.Empty())
			assert.False(t, r.State.Valid)
		})
		t.Run("read only", func(t *testing.T) {
			r := NewRecorderFlags(device.A630(), 0)
			begin(t, r, clearPass(), testView(), 1)
			cntl := r.calculate(testCtx(t), draw(op, false))
			assert.True(t, cntl.Empty())
			assert.True(t, r.State.Valid)
		})
	}
}

func TestEqualAndNeverSuspend(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	begin(t, r, clearPass(), testView(), 1)
	ctx := testCtx(t)

	for _, op := range []gputypes.CompareFunction{
		gputypes.CompareFunctionEqual,
		gputypes.CompareFunctionNever,
	} {
		cntl := r.calculate(ctx, draw(op, true))
		assert.True(t, cntl.Empty(), op)
		assert.True(t, r.State.Valid, op)
		assert.Equal(t, DirUnknown, r.State.PrevDirection, op)
	}
}

func TestDepthTestOffIgnoresDraw(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	begin(t, r, clearPass(), testView(), 1)

	d := draw(gputypes.CompareFunctionLess, true)
	d.DepthTestEnable = false
	cntl := r.calculate(testCtx(t), d)
	assert.True(t, cntl.Empty())
	assert.True(t, r.State.Valid)
	assert.Equal(t, DirUnknown, r.State.PrevDirection)
}

func TestStencilWrite(t *testing.T) {
	stencil := func(op gputypes.CompareFunction, write bool) pipeline.StencilFace {
		return pipeline.StencilFace{CompareOp: op, WriteEnabled: write}
	}

	t.Run("always with write invalidates on depth write", func(t *testing.T) {
		r := NewRecorderFlags(device.A630(), 0)
		begin(t, r, clearPass(), testView(), 1)

		d := draw(gputypes.CompareFunctionLess, true)
		d.StencilTestEnable = true
		d.StencilFront = stencil(gputypes.CompareFunctionAlways, true)
		d.StencilBack = stencil(gputypes.CompareFunctionAlways, false)

		cntl := r.calculate(testCtx(t), d)
		assert.True(t, cntl.Empty())
		assert.False(t, r.State.Valid)
	})

	t.Run("always with write suspends without depth write", func(t *testing.T) {
		r := NewRecorderFlags(device.A630(), 0)
		begin(t, r, clearPass(), testView(), 1)

		d := draw(gputypes.CompareFunctionLess, false)
		d.StencilTestEnable = true
		d.StencilFront = stencil(gputypes.CompareFunctionAlways, true)
		d.StencilBack = stencil(gputypes.CompareFunctionAlways, false)

		cntl := r.calculate(testCtx(t), d)
		assert.True(t, cntl.Empty())
		assert.True(t, r.State.Valid)
	})

	t.Run("never keeps testing without writes", func(t *testing.T) {
		r := NewRecorderFlags(device.A630(), 0)
		begin(t, r, clearPass(), testView(), 1)

		d := draw(gputypes.CompareFunctionLess, true)
		d.StencilTestEnable = true
		d.StencilFront = stencil(gputypes.CompareFunctionNever, true)
		d.StencilBack = stencil(gputypes.CompareFunctionNever, true)

		cntl := r.calculate(testCtx(t), d)
		want := lessWrite(false)
		want.LrzWrite = false
		assert.Equal(t, want, cntl)
		assert.True(t, r.State.Valid)
	})

	t.Run("data dependent compare disables write", func(t *testing.T) {
		r := NewRecorderFlags(device.A630(), 0)
		begin(t, r, clearPass(), testView(), 1)

		d := draw(gputypes.CompareFunctionLess, true)
		d.StencilTestEnable = true
		d.StencilFront = stencil(gputypes.CompareFunctionEqual, false)
		d.StencilBack = stencil(gputypes.CompareFunctionEqual, false)

		cntl := r.calculate(testCtx(t), d)
		want := lessWrite(false)
		want.LrzWrite = false
		assert.Equal(t, want, cntl)
		assert.True(t, r.State.Valid)
	})
}

func TestBlendDisablesWriteOnly(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	begin(t, r, clearPass(), testView(), 1)

	d := draw(gputypes.CompareFunctionLess, true)
	d.BlendEnabled = true
	cntl := r.calculate(testCtx(t), d)

	want := lessWrite(true)
	want.LrzWrite = false
	assert.Equal(t, want, cntl)
	// A depth write still advances the direction even when the LRZ write
	// had to be turned off.
	assert.Equal(t, DirLess, r.State.PrevDirection)
}

func TestLogicOpReadsDstDisablesWrite(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	begin(t, r, clearPass(), testView(), 1)

	d := draw(gputypes.CompareFunctionLess, true)
	d.LogicOpEnabled = true
	d.LogicOpReadsDst = true
	cntl := r.calculate(testCtx(t), d)

	want := lessWrite(true)
	want.LrzWrite = false
	assert.Equal(t, want, cntl)
}

func colorPass() *renderpass.Pass {
	return &renderpass.Pass{
		Attachments: []renderpass.Attachment{
			depthAtt(true),
			{Format: gputypes.TextureFormatRGBA8Unorm},
		},
		Subpasses: []renderpass.Subpass{{
			DepthStencilAttachment: 0,
			ColorAttachments:       []int{1},
		}},
	}
}

func beginColor(t *testing.T, r *Recorder) {
	s := cs.New()
	err := r.BeginRenderPass(testCtx(t), s, colorPass(),
		[]*image.View{testView(), nil}, []renderpass.ClearValue{{Depth: 1}})
	require.NoError(t, err)
}

func TestPartialColorWriteMaskDisablesWrite(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	beginColor(t, r)

	d := draw(gputypes.CompareFunctionLess, true)
	d.ColorWriteMasks = []gputypes.ColorWriteMask{gputypes.ColorWriteMaskNone}
	d.ColorWriteEnable = 1
	d.NumRenderTargets = 1
	cntl := r.calculate(testCtx(t), d)

	want := lessWrite(true)
	want.LrzWrite = false
	assert.Equal(t, want, cntl)
}

func TestFullColorWriteMaskKeepsWrite(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	beginColor(t, r)

	d := draw(gputypes.CompareFunctionLess, true)
	d.ColorWriteMasks = []gputypes.ColorWriteMask{gputypes.ColorWriteMaskAll}
	d.ColorWriteEnable = 1
	d.NumRenderTargets = 1
	cntl := r.calculate(testCtx(t), d)
	assert.Equal(t, lessWrite(true), cntl)
}

func TestPerTargetWriteEnableMismatchDisablesWrite(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	beginColor(t, r)

	d := draw(gputypes.CompareFunctionLess, true)
	d.ColorWriteMasks = []gputypes.ColorWriteMask{gputypes.ColorWriteMaskAll}
	d.ColorWriteEnable = 0 // target 0 dynamically switched off
	d.NumRenderTargets = 1
	cntl := r.calculate(testCtx(t), d)

	want := lessWrite(true)
	want.LrzWrite = false
	assert.Equal(t, want, cntl)
}

func TestForceDisableWrite(t *testing.T) {
	r := NewRecorderFlags(device.A660(), 0)
	begin(t, r, clearPass(), testView(), 1)

	d := draw(gputypes.CompareFunctionLess, true)
	d.ForceDisable = pipeline.ForceDisableWrite
	cntl := r.calculate(testCtx(t), d)

	want := lessWrite(true)
	want.LrzWrite = false
	assert.Equal(t, want, cntl)
	assert.True(t, r.State.Valid)
}

func TestForceDisableTest(t *testing.T) {
	shaderDraw := func(write bool) *pipeline.DrawState {
		d := draw(gputypes.CompareFunctionLess, write)
		d.ForceDisable = pipeline.ForceDisableTest | pipeline.ForceDisableWrite
		return d
	}

	t.Run("no tracking suspends", func(t *testing.T) {
		r := NewRecorderFlags(device.A630(), 0)
		begin(t, r, clearPass(), testView(), 1)
		cntl := r.calculate(testCtx(t), shaderDraw(true))
		assert.True(t, cntl.Empty())
		assert.True(t, r.State.Valid)
	})

	t.Run("tracking with unknown direction invalidates", func(t *testing.T) {
		r := NewRecorderFlags(device.A660(), 0)
		begin(t, r, clearPass(), testView(), 1)
		cntl := r.calculate(testCtx(t), shaderDraw(true))
		assert.True(t, cntl.Enable)
		assert.Equal(t, regs.DirInvalid, cntl.Dir)
		assert.False(t, r.State.Valid)
	})

	t.Run("tracking with known direction suspends", func(t *testing.T) {
		r := NewRecorderFlags(device.A660(), 0)
		begin(t, r, clearPass(), testView(), 1)
		ctx := testCtx(t)
		r.calculate(ctx, draw(gputypes.CompareFunctionLess, true))

		cntl := r.calculate(ctx, shaderDraw(true))
		assert.True(t, cntl.Empty())
		assert.True(t, r.State.Valid)

		cntl = r.calculate(ctx, draw(gputypes.CompareFunctionLess, true))
		assert.True(t, cntl.Enable)
	})
}

func TestDebugNoLRZ(t *testing.T) {
	r := NewRecorderFlags(device.A660(), debug.NoLRZ)
	begin(t, r, clearPass(), testView(), 1)

	s := cs.New()
	cntl := r.EmitDraw(testCtx(t), s, draw(gputypes.CompareFunctionLess, true))
	assert.True(t, cntl.Empty())
	assert.Equal(t, []cs.Command{
		cs.RegWrite{Reg: regs.GrasLrzCntl, Value: 0},
		cs.RegWrite{Reg: regs.RbLrzCntl, Value: 0},
	}, s.Commands())
}

func TestEmitDrawQuirkRouting(t *testing.T) {
	packed := lessWrite(true).Pack()

	t.Run("tracked write on quirk generations", func(t *testing.T) {
		r := NewRecorderFlags(device.A650(), 0)
		begin(t, r, clearPass(), testView(), 1)
		s := cs.New()
		r.EmitDraw(testCtx(t), s, draw(gputypes.CompareFunctionLess, true))
		assert.Equal(t, []cs.Command{
			cs.TrackedRegWrite{Tracker: regs.TrackerLRZ, Reg: regs.GrasLrzCntl, Value: packed},
			cs.RegWrite{Reg: regs.RbLrzCntl, Value: 1},
		}, s.Commands())
	})

	t.Run("direct write elsewhere", func(t *testing.T) {
		r := NewRecorderFlags(device.A660(), 0)
		begin(t, r, clearPass(), testView(), 1)
		s := cs.New()
		r.EmitDraw(testCtx(t), s, draw(gputypes.CompareFunctionLess, true))
		assert.Equal(t, []cs.Command{
			cs.RegWrite{Reg: regs.GrasLrzCntl, Value: packed},
			cs.RegWrite{Reg: regs.RbLrzCntl, Value: 1},
		}, s.Commands())
	})
}

func TestSecondaryWithoutTrackingStaysOff(t *testing.T) {
	r := NewRecorderFlags(device.A630(), 0)
	require.NoError(t, r.BeginSecondary(testCtx(t), clearPass(), 0))
	assert.False(t, r.State.Valid)

	cntl := r.calculate(testCtx(t), draw(gputypes.CompareFunctionLess, true))
	assert.True(t, cntl.Empty())
}

func TestSecondaryWithTracking(t *testing.T) {
	r := NewRecorderFlags(device.A650(), 0)
	require.NoError(t, r.BeginSecondary(testCtx(t), clearPass(), 0))

	require.True(t, r.State.Valid)
	assert.True(t, r.State.GPUDirTracking)
	assert.True(t, r.State.FastClear) // optimistic, resolved by the device
	assert.Nil(t, r.State.View)

	cntl := r.calculate(testCtx(t), draw(gputypes.CompareFunctionLess, true))
	assert.Equal(t, lessWrite(true), cntl)
}

func TestSecondaryWithoutDepthAttachment(t *testing.T) {
	pass := &renderpass.Pass{
		Attachments: []renderpass.Attachment{depthAtt(true)},
		Subpasses: []renderpass.Subpass{
			{DepthStencilAttachment: renderpass.AttachmentUnused},
		},
	}
	r := NewRecorderFlags(device.A650(), 0)
	require.NoError(t, r.BeginSecondary(testCtx(t), pass, 0))
	assert.False(t, r.State.Valid)
}
