package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/atomicstack/tmux-emoji-popup/internal/app"
	"github.com/atomicstack/tmux-emoji-popup/internal/config"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging"
	"github.com/atomicstack/tmux-emoji-popup/internal/logging/events"
)

func main() {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	if logging.TraceEnabled() {
		events.App.Start(startupTracePayload(cfg))
	}

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// startupTracePayload bundles what a bug report about a popup that failed to
// draw or insert usually needs.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = logging.Path()

	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"mode":     runMode(cfg.App),
		"terminal": probeTerminal(),
		"tmux": map[string]string{
			"TMUX":      os.Getenv("TMUX"),
			"TMUX_PANE": os.Getenv("TMUX_PANE"),
		},
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	return payload
}

func runMode(cfg app.Config) string {
	switch {
	case cfg.Headless:
		return "headless"
	case cfg.NoInsert:
		return "clipboard"
	default:
		return "insert"
	}
}

type terminalReport struct {
	Size   *terminalSize   `json:"size,omitempty"`
	Probes []terminalProbe `json:"probes"`
}

type terminalSize struct {
	From   string `json:"from"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type terminalProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Error    string `json:"error,omitempty"`
}

// probeTerminal checks the standard descriptors and records the first
// terminal size it can read.
func probeTerminal() terminalReport {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	report := terminalReport{Probes: make([]terminalProbe, 0, len(files))}
	for i, f := range files {
		probe := terminalProbe{Name: names[i]}
		fd := int(f.Fd())
		probe.Terminal = term.IsTerminal(fd)
		if probe.Terminal && report.Size == nil {
			if width, height, err := term.GetSize(fd); err == nil {
				report.Size = &terminalSize{From: names[i], Width: width, Height: height}
			} else {
				probe.Error = err.Error()
			}
		}
		report.Probes = append(report.Probes, probe)
	}
	return report
}
