/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package models

import (
	"errors"
	"fmt"
)

// Closed set of parse failure kinds. Callers match with errors.Is so bulk
// loaders can downgrade individual bad lines to warnings.
var (
	ErrEmptyLine         = errors.New("empty or comment line")
	ErrUnterminatedQuote = errors.New("missing or unterminated title quote")
	ErrUnknownSymbol     = errors.New("unknown symbol")
	ErrInvalidDuration   = errors.New("invalid duration")
	ErrInvalidCharts     = errors.New("invalid charts block")
)

// ParseError reports a failure to parse one line of the item format. Kind is
// always one of the sentinel errors above.
type ParseError struct {
	Kind   error
	Input  string
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("parse %q: %v: %s", truncate(e.Input, 40), e.Kind, e.Detail)
	}
	return fmt.Sprintf("parse %q: %v", truncate(e.Input, 40), e.Kind)
}

func (e *ParseError) Unwrap() error { return e.Kind }

func parseErr(kind error, input, detail string) *ParseError {
	return &ParseError{Kind: kind, Input: input, Detail: detail}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
