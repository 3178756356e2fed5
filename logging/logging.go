/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package logging builds the diagnostic sink: the slog.Logger the classifier
// reports internal and unrecognized failures to.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Config describes the diagnostic sink.
type Config struct {
	// Level is one of debug, info, warn, error. Default info.
	Level string `yaml:"level"`

	// Format is text, json or tint (colorized text for terminals).
	// Default text.
	Format string `yaml:"format"`

	// Output is stderr, stdout or a file path. Default stderr.
	Output string `yaml:"output"`

	// Buffer, when positive, decouples writers from the output through an
	// AsyncWriter holding up to Buffer pending records.
	Buffer int `yaml:"buffer"`
}

// ErrUnknownFormat is returned for a Format other than text, json or tint.
var ErrUnknownFormat = errors.New("logging: unknown format")

// Sink is a logger plus whatever must be closed when it is no longer used.
type Sink struct {
	*slog.Logger
	closers []io.Closer
}

// Close flushes and releases the sink's outputs.
func (s *Sink) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i].Close())
	}
	return errors.Join(errs...)
}

// New builds a Sink from cfg.
func New(cfg Config) (*Sink, error) {
	s := &Sink{}

	var out io.Writer
	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open %s: %w", cfg.Output, err)
		}
		out = f
		s.closers = append(s.closers, f)
	}
	if cfg.Buffer > 0 {
		aw := NewAsyncWriter(out, cfg.Buffer)
		out = aw
		s.closers = append(s.closers, aw)
	}

	h, err := newHandler(out, cfg)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.Logger = slog.New(h)
	return s, nil
}

func newHandler(w io.Writer, cfg Config) (slog.Handler, error) {
	level := ParseLevel(cfg.Level)
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), nil
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case "tint":
		return tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.RFC3339}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
}

// ParseLevel maps a level name to slog.Level; unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
