package cursor

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		opts     LogOptions
		wantInfo bool
		wantSub  string
	}{
		{"text default", LogOptions{}, true, "level=INFO"},
		{"json warn", LogOptions{Format: "json", Level: "warn"}, false, `"level":"WARN"`},
		{"console debug", LogOptions{Format: "console", Level: "DEBUG"}, true, "msg=info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Output = &buf
			l, err := NewLogger(tt.opts)
			if err != nil {
				t.Fatalf("NewLogger: %v", err)
			}
			l.Info("info")
			if got := buf.Len() > 0; got != tt.wantInfo {
				t.Errorf("info written = %v, want %v", got, tt.wantInfo)
			}
			l.Warn("warn")
			if !strings.Contains(buf.String(), tt.wantSub) {
				t.Errorf("output %q missing %q", buf.String(), tt.wantSub)
			}
		})
	}
}

func TestNewLoggerErrors(t *testing.T) {
	for _, opts := range []LogOptions{{Format: "xml"}, {Level: "trace"}} {
		if _, err := NewLogger(opts); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("NewLogger(%+v) = %v, want ErrInvalidConfig", opts, err)
		}
	}
}

func TestConfigLogger(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ResolveLogger() != discardLogger {
		t.Error("non-debug config should discard logs")
	}

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cfg.Logger = custom
	if cfg.ResolveLogger() != custom {
		t.Error("explicit Logger should win")
	}

	var buf bytes.Buffer
	cfg = DefaultConfig()
	cfg.Debug = true
	cfg.Log.Output = &buf
	cfg.ResolveLogger().Debug("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("debug config should log at debug level, got %q", buf.String())
	}
}
