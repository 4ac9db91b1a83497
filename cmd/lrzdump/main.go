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

// The lrzdump command runs a recorded draw scenario through the LRZ
// controller and prints the command stream it would emit, for inspecting
// which draws keep early-Z alive and which ones lose it.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/adrenotools/lrz/debug"
	"github.com/adrenotools/lrz/log"
)

var (
	verbose  = flag.Bool("v", false, "log every decision, not just downgrades")
	words    = flag.Bool("words", false, "print raw command words instead of the disassembly")
	debugOpt = flag.String("debug", "", "debug overrides, same syntax as "+debug.EnvVar)
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: lrzdump [flags] scenario.json\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx := log.PutHandler(context.Background(), log.Writer(os.Stderr))
	if err := run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "lrzdump: %v\n", err)
		os.Exit(1)
	}
}
