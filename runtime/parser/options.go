package parser

import "log/slog"

// Option configures a parse.
type Option func(*Parser)

// WithFilename attaches a filename to diagnostics.
func WithFilename(name string) Option {
	return func(p *Parser) {
		p.filename = name
	}
}

// WithLogger enables debug tracing of dispatch decisions. No logging
// happens without it.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}
