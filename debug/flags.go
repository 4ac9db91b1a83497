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

// Package debug parses the process-wide LRZ_DEBUG options.
//
// Options are comma separated flag names, read once from the environment and
// immutable afterwards. Unknown names are reported to stderr and ignored, so
// a typo never changes behavior silently into a crash.
package debug

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// EnvVar is the environment variable holding the option string.
const EnvVar = "LRZ_DEBUG"

// Flags is a set of debug overrides.
type Flags uint32

const (
	// NoLRZ force-disables the whole LRZ subsystem.
	NoLRZ Flags = 1 << iota
	// NoFastClear force-disables use of the LRZ fast-clear bitmap.
	NoFastClear
	// Perf enables logging of every conservative LRZ downgrade.
	Perf
)

var flagNames = []struct {
	name string
	flag Flags
	help string
}{
	{"nolrz", NoLRZ, "disable LRZ entirely"},
	{"nolrzfc", NoFastClear, "disable LRZ fast-clear"},
	{"perf", Perf, "log conservative LRZ downgrades"},
}

// Has reports whether all flags in o are set in f.
func (f Flags) Has(o Flags) bool { return f&o == o }

func (f Flags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, ",")
}

// Parse parses a comma separated option string. All recognized names are
// accumulated; the first unknown name is returned as an error alongside the
// flags parsed so far.
func Parse(s string) (Flags, error) {
	var f Flags
	var err error
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		found := false
		for _, fn := range flagNames {
			if name == fn.name {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found && err == nil {
			err = errors.Errorf("unknown %s option %q", EnvVar, name)
		}
	}
	return f, err
}

var (
	envOnce  sync.Once
	envFlags Flags
)

// FromEnv returns the flags parsed from LRZ_DEBUG. The environment is read
// once; later changes to it are not observed.
func FromEnv() Flags {
	envOnce.Do(func() {
		f, err := Parse(os.Getenv(EnvVar))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		envFlags = f
	})
	return envFlags
}
