// Package telnet is the line-oriented telnet transport: the acceptor, the
// per-player connection, and ANSI styling for game output.
package telnet

import (
	"fmt"
	"strings"
)

// Style is an ANSI SGR escape sequence.
type Style string

const (
	Reset Style = "\033[0m"
	Bold  Style = "\033[1m"
	Dim   Style = "\033[2m"

	Red     Style = "\033[31m"
	Green   Style = "\033[32m"
	Yellow  Style = "\033[33m"
	Blue    Style = "\033[34m"
	Magenta Style = "\033[35m"
	Cyan    Style = "\033[36m"

	BrightRed    Style = "\033[91m"
	BrightGreen  Style = "\033[92m"
	BrightYellow Style = "\033[93m"
)

// Colorize wraps text in s and a trailing Reset.
func Colorize(s Style, text string) string {
	return string(s) + text + string(Reset)
}

// Palette applies styles, or leaves text untouched when Plain is set
// (redirected console output, clients without ANSI support).
type Palette struct {
	Plain bool
}

// Paint styles text. Several styles combine in order.
func (p Palette) Paint(text string, styles ...Style) string {
	if p.Plain || len(styles) == 0 {
		return text
	}
	var b strings.Builder
	for _, s := range styles {
		b.WriteString(string(s))
	}
	b.WriteString(text)
	b.WriteString(string(Reset))
	return b.String()
}

// Paintf formats and styles in one step.
func (p Palette) Paintf(s Style, format string, args ...any) string {
	return p.Paint(fmt.Sprintf(format, args...), s)
}

// StripANSI removes every \033[...m sequence from s.
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			if end := strings.IndexByte(s[i+2:], 'm'); end >= 0 {
				i += end + 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
