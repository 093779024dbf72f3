// Package format renders point values for display.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter groups integer digits according to a locale.
type Formatter struct {
	p *message.Printer
}

// New returns a Formatter for tag.
func New(tag language.Tag) *Formatter {
	return &Formatter{p: message.NewPrinter(tag)}
}

// Parse returns a Formatter for a BCP 47 locale string such as "ja-JP".
// An empty string selects Japanese.
func Parse(locale string) (*Formatter, error) {
	if locale == "" {
		return Default(), nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	return New(tag), nil
}

var japanese = New(language.Japanese)

// Default returns the Japanese formatter: comma every three digits.
func Default() *Formatter {
	return japanese
}

// Int renders n with digit grouping and no decimal places.
func (f *Formatter) Int(n int) string {
	return f.p.Sprintf("%d", n)
}

// Score renders n with the default formatter, e.g. 12000 -> "12,000".
func Score(n int) string {
	return japanese.Int(n)
}
