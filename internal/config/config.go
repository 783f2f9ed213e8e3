package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-emoji-popup/internal/app"
	"github.com/atomicstack/tmux-emoji-popup/internal/i18n"
	"github.com/atomicstack/tmux-emoji-popup/internal/render"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose  bool
	KeepOpen bool
	Insert   bool
}

const (
	envSocketPath   = "EMOJI_POPUP_SOCKET"
	envTargetPane   = "EMOJI_POPUP_TARGET_PANE"
	envWidth        = "EMOJI_POPUP_WIDTH"
	envHeight       = "EMOJI_POPUP_HEIGHT"
	envShowFooter   = "EMOJI_POPUP_FOOTER"
	envVerbose      = "EMOJI_POPUP_VERBOSE"
	envTrace        = "EMOJI_POPUP_TRACE"
	envLogFile      = "EMOJI_POPUP_LOG_FILE"
	envStorePath    = "EMOJI_POPUP_STORE"
	envLegacyPath   = "EMOJI_POPUP_LEGACY_STORE"
	envEphemeral    = "EMOJI_POPUP_EPHEMERAL"
	envDataURL      = "EMOJI_POPUP_DATA_URL"
	envKeepOpen     = "EMOJI_POPUP_KEEP_OPEN"
	envNoInsert     = "EMOJI_POPUP_NO_INSERT"
	envTab          = "EMOJI_POPUP_TAB"
	envLanguage     = "EMOJI_POPUP_LANG"
	envPollInterval = "EMOJI_POPUP_POLL"
)

const defaultPoll = 1500 * time.Millisecond

// UsageError is returned for arguments the flag set rejects, including -h.
// Usage holds the text the flag package produced.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	var usage strings.Builder
	fs := flag.NewFlagSet("emoji-popup", flag.ContinueOnError)
	fs.SetOutput(&usage)

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	target := fs.String("target-pane", envOrDefault(env, envTargetPane, ""), "pane id that receives the chosen glyph (empty resolves the current pane)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	store := fs.String("store", envOrDefault(env, envStorePath, ""), "path to the shared preference file")
	legacy := fs.String("legacy-store", envOrDefault(env, envLegacyPath, ""), "path to the legacy preference file migrated on first start")
	ephemeral := fs.Bool("ephemeral", envOrBool(env, envEphemeral, false), "keep preferences in memory only")
	dataURL := fs.String("data-url", envOrDefault(env, envDataURL, ""), "base URL serving category JSON (empty uses bundled data)")
	keepOpen := fs.Bool("keep-open", envOrBool(env, envKeepOpen, false), "stay open after copying")
	noInsert := fs.Bool("no-insert", envOrBool(env, envNoInsert, false), "copy to the clipboard only, never type into the pane")
	tab := fs.String("tab", envOrDefault(env, envTab, string(render.TabEmoji)), "initial tab: emoji, kaomoji, favorites or recent")
	lang := fs.String("lang", envOrDefault(env, envLanguage, ""), "interface language override: ko or en")
	query := fs.String("query", "", "print matches for the query and exit")
	poll := fs.Duration("poll", envOrDuration(env, envPollInterval, defaultPoll), "interval between preference and pane checks")

	if err := fs.Parse(args); err != nil {
		return Config{}, &UsageError{Err: err, Usage: usage.String()}
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	headless := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "query" {
			headless = true
		}
	})

	cfg := Config{
		App: app.Config{
			SocketPath:   *socket,
			TargetPane:   strings.TrimSpace(*target),
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			StorePath:    *store,
			LegacyPath:   *legacy,
			Ephemeral:    *ephemeral,
			DataURL:      strings.TrimSpace(*dataURL),
			KeepOpen:     *keepOpen,
			NoInsert:     *noInsert,
			Tab:          strings.ToLower(strings.TrimSpace(*tab)),
			Language:     strings.ToLower(strings.TrimSpace(*lang)),
			Query:        *query,
			Headless:     headless,
			PollInterval: *poll,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose:  *verbose,
			KeepOpen: *keepOpen,
			Insert:   !*noInsert,
		},
		Flags: map[string]string{
			"socket":      *socket,
			"targetPane":  *target,
			"width":       strconv.Itoa(*width),
			"height":      strconv.Itoa(*height),
			"footer":      strconv.FormatBool(*footer),
			"trace":       strconv.FormatBool(*trace),
			"verbose":     strconv.FormatBool(*verbose),
			"logFile":     *logFile,
			"store":       *store,
			"legacyStore": *legacy,
			"ephemeral":   strconv.FormatBool(*ephemeral),
			"dataURL":     *dataURL,
			"keepOpen":    strconv.FormatBool(*keepOpen),
			"noInsert":    strconv.FormatBool(*noInsert),
			"tab":         *tab,
			"lang":        *lang,
			"query":       *query,
			"poll":        poll.String(),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		var usageErr *UsageError
		if errors.As(err, &usageErr) && errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(os.Stdout, usageErr.Usage)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the flag parser accepts but the picker cannot use.
func Validate(cfg Config) error {
	if tab := cfg.App.Tab; tab != "" && string(render.ParseTab(tab)) != tab {
		return fmt.Errorf("unknown tab %q", tab)
	}
	switch cfg.App.Language {
	case "", i18n.Korean, i18n.English:
	default:
		return fmt.Errorf("unsupported language %q (want %s or %s)", cfg.App.Language, i18n.Korean, i18n.English)
	}
	if cfg.App.PollInterval < 0 {
		return fmt.Errorf("poll must be >= 0 (got %s)", cfg.App.PollInterval)
	}
	if cfg.App.Ephemeral && cfg.App.LegacyPath != "" {
		return fmt.Errorf("legacy-store has no effect with ephemeral")
	}
	return nil
}
