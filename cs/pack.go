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

package cs

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Stream processor opcodes used by type-7 packets.
const (
	opEventWrite uint32 = 0x46
	opRegWrite   uint32 = 0x6d
	opRawClear   uint32 = 0x3c
)

func fits[T constraints.Unsigned](v T, bits uint) bool {
	return uint64(v)>>bits == 0
}

// ┏━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
// ┃ 31:28   ┃ 26:20                ┃ 19:0                               ┃
// ┃ 0b0100  ┃ count                ┃ register offset                    ┃
// ┗━━━━━━━━━┻━━━━━━━━━━━━━━━━━━━━━━┻━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
func packType4(reg, count uint32) uint32 {
	if !fits(reg, 20) {
		panic(fmt.Errorf("register offset exceeds 20 bits (0x%x)", reg))
	}
	if !fits(count, 7) {
		panic(fmt.Errorf("count exceeds 7 bits (0x%x)", count))
	}
	return 0x4<<28 | count<<20 | reg
}

// ┏━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━━━┳━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
// ┃ 31:28   ┃ 22:16                ┃ 13:0                               ┃
// ┃ 0b0111  ┃ opcode               ┃ count                              ┃
// ┗━━━━━━━━━┻━━━━━━━━━━━━━━━━━━━━━━┻━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
func packType7(op, count uint32) uint32 {
	if !fits(op, 7) {
		panic(fmt.Errorf("opcode exceeds 7 bits (0x%x)", op))
	}
	if !fits(count, 14) {
		panic(fmt.Errorf("count exceeds 14 bits (0x%x)", count))
	}
	return 0x7<<28 | op<<16 | count
}

func isType4(w uint32) bool { return w>>28 == 0x4 }
func isType7(w uint32) bool { return w>>28 == 0x7 }

func unpackType4(w uint32) (reg, count uint32) { return w & 0xfffff, w >> 20 & 0x7f }
func unpackType7(w uint32) (op, count uint32)  { return w >> 16 & 0x7f, w & 0x3fff }
