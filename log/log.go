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

// Package log provides a context-carried logger.
//
// The handler is stored in the context.Context that flows through every
// recording call, so libraries log without holding a logger of their own:
//
//	log.W(ctx, "disabling lrz write due to blending")
package log

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Severity defines the importance of a log message.
type Severity int

const (
	// Debug is the severity for verbose diagnostic messages.
	Debug Severity = iota
	// Info is the severity for informational messages.
	Info
	// Warning is the severity for messages about unexpected but recoverable
	// conditions, including performance degradations.
	Warning
	// Error is the severity for messages about failures.
	Error
	// Fatal is the severity for messages about unrecoverable contract
	// violations. Logging at Fatal panics after the message is handled.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Message is a single log record handed to a Handler.
type Message struct {
	Severity Severity
	Tag      string
	Text     string
}

// Handler consumes log messages.
type Handler func(m Message)

type handlerKeyTy struct{}
type tagKeyTy struct{}

var (
	handlerKey handlerKeyTy
	tagKey     tagKeyTy
)

// PutHandler returns a context with h installed as the log handler.
func PutHandler(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey, h)
}

// GetHandler returns the handler installed on ctx, or the default
// stderr-writing handler if none was installed.
func GetHandler(ctx context.Context) Handler {
	if h, ok := ctx.Value(handlerKey).(Handler); ok {
		return h
	}
	return Writer(os.Stderr)
}

// Enter returns a context whose messages are tagged with tag.
func Enter(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, tagKey, tag)
}

// GetTag returns the tag bound on ctx, if any.
func GetTag(ctx context.Context) string {
	if t, ok := ctx.Value(tagKey).(string); ok {
		return t
	}
	return ""
}

// Writer returns a Handler printing each message as a single line to w.
func Writer(w io.Writer) Handler {
	return func(m Message) {
		if m.Tag != "" {
			fmt.Fprintf(w, "%s: %s: %s\n", m.Severity, m.Tag, m.Text)
		} else {
			fmt.Fprintf(w, "%s: %s\n", m.Severity, m.Text)
		}
	}
}

// Nop returns a Handler that discards all messages.
func Nop() Handler {
	return func(Message) {}
}

func emit(ctx context.Context, s Severity, f string, args ...interface{}) {
	GetHandler(ctx)(Message{
		Severity: s,
		Tag:      GetTag(ctx),
		Text:     fmt.Sprintf(f, args...),
	})
}

// D logs a debug message to the handler bound on ctx.
func D(ctx context.Context, f string, args ...interface{}) { emit(ctx, Debug, f, args...) }

// I logs an info message to the handler bound on ctx.
func I(ctx context.Context, f string, args ...interface{}) { emit(ctx, Info, f, args...) }

// W logs a warning message to the handler bound on ctx.
func W(ctx context.Context, f string, args ...interface{}) { emit(ctx, Warning, f, args...) }

// E logs an error message to the handler bound on ctx.
func E(ctx context.Context, f string, args ...interface{}) { emit(ctx, Error, f, args...) }

// F logs a fatal message to the handler bound on ctx and then panics.
func F(ctx context.Context, f string, args ...interface{}) {
	emit(ctx, Fatal, f, args...)
	panic(fmt.Sprintf(f, args...))
}
