// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/jeremyhahn/go-webcrypto/pkg/correlation"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if LevelDebug.String() != "DEBUG" || LevelError.String() != "ERROR" {
		t.Error("unexpected level names")
	}
	if Level(99).String() != "UNKNOWN" {
		t.Error("unknown level should render as UNKNOWN")
	}
}

func TestNewSlogAdapter_NilConfig(t *testing.T) {
	adapter := NewSlogAdapter(nil)
	if adapter == nil || adapter.logger == nil {
		t.Fatal("NewSlogAdapter(nil) returned no logger")
	}
}

func TestNewSlogAdapter_CustomLogger(t *testing.T) {
	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	adapter := NewSlogAdapter(&SlogConfig{Logger: custom, Level: LevelDebug})
	adapter.Info("hidden")
	adapter.Warn("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("custom logger level should apply, got: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("expected warn record, got: %s", output)
	}
	if adapter.Slog() != custom {
		t.Error("Slog() should return the wrapped logger")
	}
}

func TestNewSlogAdapter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(&SlogConfig{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	adapter.Info("request rejected", Algorithm("RSA-PSS"), Operation("sign"), Kind("ParamWrongValue"), Code(4))

	output := buf.String()
	for _, want := range []string{
		`"msg":"request rejected"`,
		`"algorithm":"RSA-PSS"`,
		`"operation":"sign"`,
		`"kind":"ParamWrongValue"`,
		`"code":4`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %s, got: %s", want, output)
		}
	}
}

func TestNewSlogAdapter_TextFormatFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(&SlogConfig{Level: LevelWarn, Output: &buf})

	adapter.Debug("debug message")
	adapter.Info("info message")
	adapter.Error("error message", Err(errors.New("boom")))

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("records below warn should be dropped, got: %s", output)
	}
	if !strings.Contains(output, "error message") || !strings.Contains(output, "error=boom") {
		t.Errorf("expected error record with error field, got: %s", output)
	}
}

func TestSlogAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(&SlogConfig{Level: LevelDebug, Output: &buf})

	child := adapter.With(String("component", "validator"), Bool("dry_run", true))
	child.Debug("checking", Strings("usages", []string{"sign", "verify"}))

	output := buf.String()
	for _, want := range []string{"component=validator", "dry_run=true", "usages="} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q, got: %s", want, output)
		}
	}
}

func TestSlogAdapter_ContextCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(&SlogConfig{Level: LevelDebug, Output: &buf})

	ctx := correlation.WithCorrelationID(context.Background(), "abc-123")
	adapter.DebugContext(ctx, "debug")
	adapter.InfoContext(ctx, "info")
	adapter.WarnContext(ctx, "warn")
	adapter.ErrorContext(ctx, "error")

	if got := strings.Count(buf.String(), "correlation_id=abc-123"); got != 4 {
		t.Errorf("expected 4 records with correlation id, got %d: %s", got, buf.String())
	}
}

func TestSlogAdapter_ContextWithoutCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogAdapter(&SlogConfig{Level: LevelDebug, Output: &buf})

	adapter.InfoContext(context.Background(), "no id", Duration("elapsed", 0.5), Any("n", 3))

	if strings.Contains(buf.String(), "correlation_id") {
		t.Errorf("no correlation id expected, got: %s", buf.String())
	}
}

func TestNewNop(t *testing.T) {
	nop := NewNop()
	// Must not panic and must not log
	nop.Error("discarded")
	nop.With(Int("n", 1)).Warn("discarded")
	if nop.Slog().Enabled(context.Background(), slog.LevelError) {
		t.Error("nop logger should not be enabled at any level")
	}
}
