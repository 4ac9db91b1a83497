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
	"io"
)

type wordReader struct {
	words []uint32
	pos   int
}

func (r *wordReader) next() (uint32, error) {
	if r.pos >= len(r.words) {
		return 0, io.ErrUnexpectedEOF
	}
	w := r.words[r.pos]
	r.pos++
	return w, nil
}

func (r *wordReader) take(n uint32) ([]uint32, error) {
	if r.pos+int(n) > len(r.words) {
		return nil, io.ErrUnexpectedEOF
	}
	body := r.words[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return body, nil
}

// Decode decodes an encoded command stream back into commands.
func Decode(words []uint32) ([]Command, error) {
	r := &wordReader{words: words}
	var cmds []Command
	for r.pos < len(r.words) {
		hdr, _ := r.next()
		switch {
		case isType4(hdr):
			reg, count := unpackType4(hdr)
			body, err := r.take(count)
			if err != nil {
				return nil, err
			}
			switch count {
			case 1:
				cmds = append(cmds, RegWrite{Reg: reg, Value: body[0]})
			case 2:
				cmds = append(cmds, RegWrite64{Reg: reg, Value: uint64(body[0]) | uint64(body[1])<<32})
			default:
				return nil, fmt.Errorf("unsupported type-4 packet length %d at word %d", count, r.pos-1)
			}
		case isType7(hdr):
			op, count := unpackType7(hdr)
			body, err := r.take(count)
			if err != nil {
				return nil, err
			}
			switch {
			case op == opEventWrite && count == 1:
				cmds = append(cmds, Event{Kind: EventKind(body[0])})
			case op == opRegWrite && count == 3:
				cmds = append(cmds, TrackedRegWrite{Tracker: body[0], Reg: body[1], Value: body[2]})
			case op == opRawClear && count == 5:
				cmds = append(cmds, RawClear{
					Base:   uint64(body[0]) | uint64(body[1])<<32,
					Pitch:  body[2],
					Height: body[3],
					Value:  uint16(body[4]),
				})
			default:
				return nil, fmt.Errorf("unknown type-7 packet op 0x%x count %d at word %d", op, count, r.pos-1)
			}
		default:
			return nil, fmt.Errorf("unknown packet header 0x%08x at word %d", hdr, r.pos-1)
		}
	}
	return cmds, nil
}

// Disassemble decodes words and writes one command per line to w.
func Disassemble(words []uint32, w io.Writer) error {
	cmds, err := Decode(words)
	if err != nil {
		return err
	}
	for _, c := range cmds {
		if _, err := fmt.Fprintln(w, c.String()); err != nil {
			return err
		}
	}
	return nil
}
