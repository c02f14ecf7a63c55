// Package yay parses YAY, an indentation-sensitive, human-editable
// data serialization format. Given a UTF-8 document it produces either
// a typed value tree or a diagnostic identifying the line, column and
// cause of the first rejection.
//
// Parsing runs as a three-phase pipeline: character validation
// (runtime/scanner), indent-based outline tokenization
// (runtime/outline), and value tree construction (runtime/parser).
// A parse is a pure function of its input; independent documents may
// be parsed concurrently.
package yay

import (
	"log/slog"

	"github.com/yay-lang/yay/core/diag"
	"github.com/yay-lang/yay/core/value"
	"github.com/yay-lang/yay/runtime/outline"
	"github.com/yay-lang/yay/runtime/parser"
	"github.com/yay-lang/yay/runtime/scanner"
)

// Option configures a parse.
type Option func(*config)

type config struct {
	filename string
	logger   *slog.Logger
}

// WithFilename decorates diagnostics with a filename.
func WithFilename(name string) Option {
	return func(c *config) {
		c.filename = name
	}
}

// WithLogger enables debug tracing of parser dispatch decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Parse parses one document. On failure the returned error is a
// *diag.Error carrying the message and the 1-based source position of
// the first rejection.
func Parse(source []byte, opts ...Option) (*value.Value, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	lines, err := scanner.Scan(source)
	if err != nil {
		return nil, decorate(err, cfg.filename)
	}

	toks := outline.Lex(lines)

	popts := []parser.Option{parser.WithFilename(cfg.filename)}
	if cfg.logger != nil {
		popts = append(popts, parser.WithLogger(cfg.logger))
	}
	v, err := parser.Parse(toks, popts...)
	if err != nil {
		return nil, decorate(err, cfg.filename)
	}
	return v, nil
}

// ParseString parses one document held in a string.
func ParseString(source string, opts ...Option) (*value.Value, error) {
	return Parse([]byte(source), opts...)
}

func decorate(err *diag.Error, filename string) error {
	if filename != "" {
		err.Filename = filename
	}
	return err
}
