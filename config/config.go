package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/jclass/classfile"
	"github.com/wippyai/jclass/dump"
	"github.com/wippyai/jclass/errors"
)

// FileName is the configuration file searched for by Find.
const FileName = "classdump.toml"

// MaxIndent bounds the per-level indent width.
const MaxIndent = 16

// ColorMode selects when the dump is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config is the decoded configuration file.
type Config struct {
	Dump   Dump   `toml:"dump"`
	Decode Decode `toml:"decode"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `toml:"-"`
}

// Dump holds the [dump] table.
type Dump struct {
	Indent int       `toml:"indent"`
	Color  ColorMode `toml:"color"`
	Code   bool      `toml:"code"`
	Pool   bool      `toml:"pool"`
}

// Decode holds the [decode] table.
type Decode struct {
	Lenient bool `toml:"lenient"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	d := dump.DefaultOptions()
	return &Config{
		Dump: Dump{
			Indent: d.Indent,
			Color:  ColorAuto,
			Code:   d.Code,
			Pool:   d.Pool,
		},
	}
}

// Parse decodes TOML text on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Config("parse "+FileName, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return nil, errors.Config("unknown keys: "+strings.Join(names, ", "), nil)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("read "+path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Find walks up from startDir looking for FileName and loads the first one
// found. It returns Default when no file exists up to the filesystem root.
func Find(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, errors.Config("resolve "+startDir, err)
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Dump.Indent < 0 || c.Dump.Indent > MaxIndent {
		return errors.Config(fmt.Sprintf("dump.indent %d out of range 0..%d", c.Dump.Indent, MaxIndent), nil)
	}
	switch c.Dump.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Config(fmt.Sprintf("dump.color %q: want auto, always or never", c.Dump.Color), nil)
	}
	return nil
}

// DumpOptions converts the [dump] table. terminal reports whether output
// goes to a terminal and decides the auto color mode.
func (c *Config) DumpOptions(terminal bool) dump.Options {
	color := c.Dump.Color == ColorAlways || (c.Dump.Color == ColorAuto && terminal)
	return dump.Options{
		Indent: c.Dump.Indent,
		Color:  color,
		Code:   c.Dump.Code,
		Pool:   c.Dump.Pool,
	}
}

// DecodeOptions converts the [decode] table.
func (c *Config) DecodeOptions() []classfile.Option {
	return []classfile.Option{classfile.WithLenient(c.Decode.Lenient)}
}
