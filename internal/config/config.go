// Package config loads inkwell settings from a YAML or TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks every validation problem.
var ErrInvalid = errors.New("invalid config")

// Format is a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Key binding actions that may be overridden under `keys`.
const (
	ActionEnter     = "enter"
	ActionNewline   = "newline"
	ActionBackspace = "backspace"
	ActionDelete    = "delete"
	ActionUndo      = "undo"
	ActionRedo      = "redo"
	ActionBold      = "bold"
	ActionItalic    = "italic"
	ActionUnderline = "underline"
	ActionStrike    = "strike"
	ActionCode      = "code"
	ActionSave      = "save"
	ActionQuit      = "quit"
)

var knownActions = map[string]bool{
	ActionEnter: true, ActionNewline: true, ActionBackspace: true,
	ActionDelete: true, ActionUndo: true, ActionRedo: true,
	ActionBold: true, ActionItalic: true, ActionUnderline: true,
	ActionStrike: true, ActionCode: true, ActionSave: true, ActionQuit: true,
}

// Style holds lipgloss colors: a hex value such as "#ff8800" or an ANSI
// color number. Empty fields keep the editor default.
type Style struct {
	Cursor    string `yaml:"cursor" toml:"cursor"`
	Selection string `yaml:"selection" toml:"selection"`
	Code      string `yaml:"code" toml:"code"`
	Image     string `yaml:"image" toml:"image"`
	Gutter    string `yaml:"gutter" toml:"gutter"`
}

// Config is the parsed settings file.
type Config struct {
	// Zero keeps the session default; -1 disables undo.
	HistoryLimit int    `yaml:"history_limit" toml:"history_limit"`
	LogLevel     string `yaml:"log_level" toml:"log_level"`
	// Log destination. Empty discards logs.
	LogFile string `yaml:"log_file" toml:"log_file"`

	// Keys maps an action name to the keys bound to it, replacing the
	// default keys for that action.
	Keys  map[string][]string `yaml:"keys" toml:"keys"`
	Style Style               `yaml:"style" toml:"style"`
}

func Default() Config {
	return Config{LogLevel: "info"}
}

// FormatFor selects a format by file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}
}

// Load reads and validates the file at path. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg, err := Parse(format, data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over the defaults and validates the result. Unknown
// fields are rejected.
func Parse(format Format, data []byte) (Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parsing yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parsing toml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func validColor(s string) bool {
	if s == "" || hexColor.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}

// Validate reports every problem in c. Each problem matches ErrInvalid.
func (c Config) Validate() error {
	var err error
	if c.HistoryLimit < -1 {
		err = multierr.Append(err, fmt.Errorf("%w: history_limit %d: must be -1 or greater", ErrInvalid, c.HistoryLimit))
	}
	if _, lerr := zapcore.ParseLevel(c.LogLevel); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: log_level: %v", ErrInvalid, lerr))
	}

	actions := make([]string, 0, len(c.Keys))
	for a := range c.Keys {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	for _, a := range actions {
		if !knownActions[a] {
			err = multierr.Append(err, fmt.Errorf("%w: keys: unknown action %q", ErrInvalid, a))
			continue
		}
		if len(c.Keys[a]) == 0 {
			err = multierr.Append(err, fmt.Errorf("%w: keys.%s: no keys", ErrInvalid, a))
		}
		for _, k := range c.Keys[a] {
			if strings.TrimSpace(k) == "" {
				err = multierr.Append(err, fmt.Errorf("%w: keys.%s: blank key", ErrInvalid, a))
			}
		}
	}

	for _, f := range []struct{ name, value string }{
		{"cursor", c.Style.Cursor},
		{"selection", c.Style.Selection},
		{"code", c.Style.Code},
		{"image", c.Style.Image},
		{"gutter", c.Style.Gutter},
	} {
		if !validColor(f.value) {
			err = multierr.Append(err, fmt.Errorf("%w: style.%s: %q is not a hex or ANSI color", ErrInvalid, f.name, f.value))
		}
	}
	return err
}

// Level returns the parsed log level, defaulting to info.
func (c Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Bind returns b with its keys replaced when action is overridden. Help
// text keeps its description and shows the first configured key.
func (c Config) Bind(action string, b key.Binding) key.Binding {
	keys, ok := c.Keys[action]
	if !ok || len(keys) == 0 {
		return b
	}
	b.SetKeys(keys...)
	b.SetHelp(keys[0], b.Help().Desc)
	return b
}
