// Package config holds the run configuration: marker strings, the
// signature rewrite tables and output formatting knobs. Everything has a
// default matching the simuPOP documentation conventions, so running
// without a config file needs no setup.
package config

import (
	"bytes"
	"errors"
	"os"
	"strconv"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml/v2"

	"github.com/sudorook/doxy2swig/signature"
)

type Config struct {
	// Imports are further config files merged into this one.
	Imports []string `toml:"imports"`

	// StripPrefix is the namespace prefix removed from symbol names when
	// deriving LaTeX macro names.
	StripPrefix string `toml:"strip-prefix"`
	// IgnoreMarker marks an entry as excluded from the generated
	// bindings when it appears in its Description or Details.
	IgnoreMarker string `toml:"ignore-marker"`
	// WrapColumn is the output wrap width.
	WrapColumn int `toml:"wrap-column"`
	// ExampleDirs are searched, in order, for example files referenced
	// by Test cross-reference sections. The bare filename is always
	// tried last.
	ExampleDirs []string `toml:"example-dirs"`

	// Signature rewrite tables, applied in declaration order.
	Idioms     []signature.Rule `toml:"idiom"`
	Qualifiers []string         `toml:"qualifiers"`
	Cleanups   []signature.Rule `toml:"cleanup"`
	Defaults   []signature.Rule `toml:"default-value"`
}

// Default returns the built-in configuration.
func Default() *Config {
	sig := signature.Default()
	return &Config{
		StripPrefix:  "simuPOP::",
		IgnoreMarker: "CPPONLY",
		WrapColumn:   70,
		ExampleDirs:  []string{"../doc/log"},
		Idioms:       sig.Idioms,
		Qualifiers:   sig.Qualifiers,
		Cleanups:     sig.Cleanups,
		Defaults:     sig.Defaults,
	}
}

// SignatureTable assembles the signature rewrite table from the config.
func (c *Config) SignatureTable() *signature.Table {
	return &signature.Table{
		Idioms:     c.Idioms,
		Qualifiers: c.Qualifiers,
		Cleanups:   c.Cleanups,
		Defaults:   c.Defaults,
	}
}

type Error struct {
	filePath string
	err      error  // short, single-line error
	str      string // full, multi-line error string, or err string, if none
}

// Error returns a short error message.
func (e *Error) Error() string {
	return e.filePath + ": " + e.err.Error()
}

// String returns the full multi-line error string.
func (e *Error) String() string {
	if e.str != "" {
		return "Error in file " + strconv.Quote(e.filePath) + ":\n" + e.str
	}
	return e.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Load reads the TOML file at path, resolves its import chain and fills
// unset fields from Default.
func Load(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(c, Default()); err != nil {
		return nil, err
	}
	return c, nil
}

func load(path string) (_ *Config, err error) {
	defer func() {
		if err != nil {
			if tErr := (&toml.DecodeError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else if tErr := (&toml.StrictMissingError{}); errors.As(err, &tErr) {
				err = &Error{filePath: path, err: err, str: tErr.String()}
			} else {
				err = &Error{filePath: path, err: err}
			}
		}
	}()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := &Config{}
	err = toml.NewDecoder(bytes.NewReader(file)).
		DisallowUnknownFields().
		Decode(&c)
	if err != nil {
		return nil, err
	}

	var importedCs []*Config // collect imported files first so their imports don't leak into our file's imports
	for _, imp := range c.Imports {
		newC, err := load(imp)
		if err != nil {
			return nil, err
		}
		importedCs = append(importedCs, newC)
	}
	for _, newC := range importedCs {
		if err := mergo.Merge(c, newC, mergo.WithAppendSlice); err != nil {
			return nil, err
		}
	}

	return c, nil
}
