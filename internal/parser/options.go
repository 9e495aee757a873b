package parser

import "github.com/scigolib/fbxcel/internal/lowlevel"

// ParserOption configures a Parser at construction time.
type ParserOption func(*Parser)

// WithWarningHandler installs the handler invoked for every recoverable
// warning. Returning a non-nil error from the handler converts that
// warning into a fatal error and aborts the parser. The default handler
// ignores every warning.
func WithWarningHandler(h lowlevel.WarningHandler) ParserOption {
	return func(p *Parser) {
		p.warnHandler = h
	}
}

func ignoreWarnings(*lowlevel.Warning) error { return nil }
