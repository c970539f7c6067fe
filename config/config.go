// Package config loads lcalc settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Line editors supported by the repl.
const (
	EditorReadline = "readline"
	EditorLiner    = "liner"
)

// Readers supported for source files.  These match the names accepted by
// parser.NewReader.
const (
	ReaderRD     = "rd"
	ReaderParsec = "parsec"
)

// DefaultFile is the name of the config file looked up in the user's home
// directory.
const DefaultFile = ".lcalc.yaml"

// Config holds settings for the command line tools and the repl.
type Config struct {
	Prompt      string `yaml:"prompt"`
	Editor      string `yaml:"editor"`
	HistoryFile string `yaml:"history_file"`
	Timing      bool   `yaml:"timing"`
	Trace       bool   `yaml:"trace"`
	Reader      string `yaml:"reader"`
	Strict      bool   `yaml:"strict"`

	// MaxStackHeight limits nested closure applications when positive.
	MaxStackHeight int `yaml:"max_stack_height"`

	// Path is the file the config was loaded from, if any.
	Path string `yaml:"-"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Prompt: "> ",
		Editor: EditorReadline,
		Reader: ReaderRD,
	}
}

// DefaultPath returns the location of DefaultFile in the user's home
// directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home directory: %w", err)
	}
	return filepath.Join(home, DefaultFile), nil
}

// Load reads the config file at path.  Keys missing from the file keep
// their default values.  When optional is true a missing file is not an
// error and Load returns the defaults.
func Load(path string, optional bool) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if errors.Is(err, fs.ErrNotExist) && optional {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	c.Path = abs
	return c, nil
}

// Decode reads a config document from r.  Unknown keys are rejected.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	err := decoder.Decode(c)
	if err != nil && err != io.EOF {
		return nil, err
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Encode writes c to w as YAML.
func (c *Config) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encoder close: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate returns an error if c names an unknown editor or reader or has a
// negative stack limit.
func (c *Config) Validate() error {
	switch c.Editor {
	case EditorReadline, EditorLiner:
	default:
		return fmt.Errorf("unknown editor: %q", c.Editor)
	}
	switch c.Reader {
	case ReaderRD, ReaderParsec:
	default:
		return fmt.Errorf("unknown reader: %q", c.Reader)
	}
	if c.MaxStackHeight < 0 {
		return fmt.Errorf("negative max_stack_height: %d", c.MaxStackHeight)
	}
	return nil
}

// HistoryPath returns HistoryFile with a leading ~ expanded to the user's
// home directory.
func (c *Config) HistoryPath() string {
	path := c.HistoryFile
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func (c *Config) normalize() {
	c.Editor = strings.ToLower(strings.TrimSpace(c.Editor))
	c.Reader = strings.ToLower(strings.TrimSpace(c.Reader))
	c.HistoryFile = strings.TrimSpace(c.HistoryFile)
	if c.Editor == "" {
		c.Editor = EditorReadline
	}
	if c.Reader == "" {
		c.Reader = ReaderRD
	}
}
