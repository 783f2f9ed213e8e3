package main

import (
	"path/filepath"
	"testing"

	"github.com/atomicstack/tmux-emoji-popup/internal/app"
	"github.com/atomicstack/tmux-emoji-popup/internal/config"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
)

func TestProbeTerminalCoversStandardDescriptors(t *testing.T) {
	report := probeTerminal()
	if len(report.Probes) != 3 {
		t.Fatalf("expected 3 probes, got %d", len(report.Probes))
	}
	for i, name := range []string{"stdin", "stdout", "stderr"} {
		if report.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, report.Probes[i].Name)
		}
	}
	if report.Size != nil && report.Size.Width <= 0 {
		t.Fatalf("expected a positive width when a size is reported, got %d", report.Size.Width)
	}
}

func TestRunMode(t *testing.T) {
	cases := map[string]app.Config{
		"headless":  {Headless: true, NoInsert: true},
		"clipboard": {NoInsert: true},
		"insert":    {},
	}
	for want, cfg := range cases {
		if got := runMode(cfg); got != want {
			t.Fatalf("expected mode %q, got %q", want, got)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "trace.log")
	logging.Configure(logPath)
	t.Cleanup(func() { logging.Configure("") })

	cfg, err := config.LoadArgs([]string{"-socket", "socket-path", "-tab", "kaomoji", "-width", "80", "-trace"}, nil)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	payload := startupTracePayload(cfg)

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flags["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flags["socket"])
	}
	if flags["tab"] != "kaomoji" {
		t.Fatalf("expected tab kaomoji, got %v", flags["tab"])
	}
	if flags["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flags["width"])
	}
	if flags["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flags["trace"])
	}
	if flags["logFile"] != logPath {
		t.Fatalf("expected log file %q, got %v", logPath, flags["logFile"])
	}
	if payload["mode"] != "insert" {
		t.Fatalf("expected insert mode, got %v", payload["mode"])
	}
	if _, ok := payload["terminal"].(terminalReport); !ok {
		t.Fatalf("expected terminal report in payload")
	}
	if got, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if got.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, got.App)
	}
}
