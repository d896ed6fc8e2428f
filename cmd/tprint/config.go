package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"pkt.systems/tprint"
	"pkt.systems/tprint/internal/logging"
)

// fileConfig holds defaults loaded with --config. Flags given on the command
// line always win.
type fileConfig struct {
	Width           *int     `yaml:"width,omitempty"`
	Indent          *int     `yaml:"indent,omitempty"`
	FollowingIndent *int     `yaml:"following_indent,omitempty"`
	Border          string   `yaml:"border,omitempty"`
	Plain           *bool    `yaml:"plain,omitempty"`
	LogLevel        string   `yaml:"log_level,omitempty"`
	Loading         *loading `yaml:"loading,omitempty"`
}

type loading struct {
	Text     string `yaml:"text,omitempty"`
	Duration string `yaml:"duration,omitempty"`
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		return cfg, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Loading != nil && cfg.Loading.Duration != "" {
		if _, err := time.ParseDuration(cfg.Loading.Duration); err != nil {
			return cfg, fmt.Errorf("parse %s: loading.duration: %w", path, err)
		}
	}
	return cfg, nil
}

// apply copies configured values into o for every flag not set explicitly.
func (c fileConfig) apply(flags *pflag.FlagSet, o *options) {
	unset := func(name string) bool { return !flags.Changed(name) }
	if c.Width != nil && unset("width") {
		o.width = *c.Width
	}
	if c.Indent != nil && unset("indent") {
		o.indent = *c.Indent
	}
	if c.FollowingIndent != nil && unset("following-indent") {
		o.followingIndent = *c.FollowingIndent
	}
	if c.Border != "" && unset("border") {
		o.border = c.Border
	}
	if c.Plain != nil && unset("plain") {
		o.plain = *c.Plain
	}
	if c.LogLevel != "" && unset("log-level") {
		o.logLevel = c.LogLevel
	}
	if c.Loading != nil {
		if c.Loading.Text != "" && unset("loading-text") {
			o.loadingText = c.Loading.Text
		}
		if c.Loading.Duration != "" && unset("loading") {
			// Validated by loadConfig.
			o.loading, _ = time.ParseDuration(c.Loading.Duration)
		}
	}
}

// documentConfig is the front matter of a markup file. Unknown keys are
// ignored so documents can carry their own metadata.
type documentConfig struct {
	Width           *int   `yaml:"width"`
	Indent          *int   `yaml:"indent"`
	FollowingIndent *int   `yaml:"following_indent"`
	Heading         string `yaml:"heading"`
}

func parseDocumentConfig(meta []byte) (documentConfig, error) {
	var doc documentConfig
	if err := yaml.Unmarshal(meta, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// format overrides f with document settings for flags not given explicitly.
func (d documentConfig) format(f tprint.Format, explicit map[string]bool) tprint.Format {
	if d.Width != nil && !explicit["width"] {
		if *d.Width > 0 {
			f.Width = *d.Width
		} else {
			logging.Warn("ignoring non-positive front matter width", zap.Int("width", *d.Width))
		}
	}
	if d.Indent != nil && !explicit["indent"] {
		f.TextIndent = *d.Indent
	}
	if d.FollowingIndent != nil && !explicit["following-indent"] {
		f.FollowingIndent = *d.FollowingIndent
	}
	return f
}
