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
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/adrenotools/lrz/cs"
	"github.com/adrenotools/lrz/debug"
	"github.com/adrenotools/lrz/image"
	"github.com/adrenotools/lrz/lrz"
)

func run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one scenario file")
	}
	sc, err := loadScenario(args[0])
	if err != nil {
		return err
	}

	flags := debug.FromEnv()
	if *debugOpt != "" {
		if flags, err = debug.Parse(*debugOpt); err != nil {
			return err
		}
	}
	if *verbose {
		flags |= debug.Perf
	}

	rec := lrz.NewRecorderFlags(sc.deviceInfo(), flags)
	view := sc.view()
	pass := sc.pass()

	drawStream := cs.New()
	err = rec.BeginRenderPass(ctx, drawStream, pass,
		[]*image.View{view}, sc.clearValues())
	if err != nil {
		return err
	}

	for i, d := range sc.Draws {
		cntl := rec.EmitDraw(ctx, drawStream, d.state())
		fmt.Printf("draw %d: enable=%v write=%v dir=%v valid=%v direction=%v\n",
			i, cntl.Enable, cntl.LrzWrite, cntl.Dir, rec.State.Valid, rec.State.PrevDirection)
	}

	tileStream := cs.New()
	if sc.Sysmem {
		rec.SysmemBegin(ctx, tileStream)
		rec.SysmemEnd(ctx, tileStream)
	} else {
		rec.TilingBegin(ctx, tileStream)
		rec.TilingEnd(ctx, tileStream)
	}

	fmt.Println()
	if err := dump("draw stream", drawStream); err != nil {
		return err
	}
	fmt.Println()
	return dump(passStreamName(sc), tileStream)
}

func passStreamName(sc *scenario) string {
	if sc.Sysmem {
		return "sysmem stream"
	}
	return "tile stream"
}

func dump(name string, s *cs.Stream) error {
	fmt.Printf("%s (%d commands):\n", name, s.Len())
	if *words {
		for _, w := range s.Words() {
			fmt.Printf("  0x%08x\n", w)
		}
		return nil
	}
	return cs.Disassemble(s.Words(), os.Stdout)
}
