package tex

import (
	"regexp"
	"strings"
)

// Pattern names, in evaluation order.
const (
	PatternInlineParenthesis    = "inline-parenthesis"
	PatternDisplaySquareBracket = "display-square-bracket"
	PatternEquation             = "equation-env"
	PatternEquationStar         = "equation-star-env"
	PatternAlign                = "align-env"
	PatternAlignStar            = "align-star-env"
)

// MathPattern is one whitelisted math shape.
type MathPattern struct {
	// Name identifies the pattern in logs and diagnostics.
	Name string

	// Delimiters is a human readable form of the wrapping, e.g. `\( … \)`.
	Delimiters string

	// Display reports whether content matching this pattern is rendered in
	// display mode rather than inline.
	Display bool

	expr        *regexp.Regexp
	open, close string
	wrap        bool // payload keeps its \begin/\end wrapper
}

// match returns the captured payload of text, or false.
//
// A payload that itself contains the pattern's opening or closing delimiter
// is rejected: the greedy capture would otherwise glue several top-level
// expressions, or a nested environment, into one.
func (p MathPattern) match(text string) (string, bool) {
	m := p.expr.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	inner := m[1]
	if p.wrap {
		inner = strings.TrimSuffix(strings.TrimPrefix(inner, p.open), p.close)
	}
	if containsDelimiter(inner, p.open) || containsDelimiter(inner, p.close) {
		return "", false
	}
	return m[1], true
}

// containsDelimiter reports whether delim occurs in s as a control sequence
// of its own. An occurrence preceded by an odd run of backslashes belongs to
// a \\ line break (as in \\[2pt]) and does not count; after an even run
// (as in \\\[) the line break is complete and the delimiter is real.
func containsDelimiter(s, delim string) bool {
	for off := 0; ; {
		i := strings.Index(s[off:], delim)
		if i < 0 {
			return false
		}
		at := off + i
		run := 0
		for j := at - 1; j >= 0 && s[j] == '\\'; j-- {
			run++
		}
		if run%2 == 0 {
			return true
		}
		off = at + 1
	}
}

// space is the blank class around the delimiters. Besides ASCII white space
// it admits vertical tab, Unicode space separators, line/paragraph
// separators and the byte-order mark that editors prepend to saved files.
const space = `\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}`

// anchored compiles a pattern that must span the whole input: leading blanks,
// then body, then blanks or comment characters.
func anchored(body string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)^[` + space + `]*` + body + `[` + space + `%]*$`)
}

// All expressions are anchored at both ends and compiled with (?s) so that
// multi-line content is captured in one piece.
var patterns = []MathPattern{
	{
		Name:       PatternInlineParenthesis,
		Delimiters: `\( … \)`,
		Display:    false,
		expr:       anchored(`\\\((.*)\\\)`),
		open:       `\(`,
		close:      `\)`,
	},
	{
		Name:       PatternDisplaySquareBracket,
		Delimiters: `\[ … \]`,
		Display:    true,
		expr:       anchored(`\\\[(.*)\\\]`),
		open:       `\[`,
		close:      `\]`,
	},
	{
		Name:       PatternEquation,
		Delimiters: `\begin{equation} … \end{equation}`,
		Display:    true,
		expr:       anchored(`\\begin\{equation\}(.*)\\end\{equation\}`),
		open:       `\begin{equation}`,
		close:      `\end{equation}`,
	},
	{
		Name:       PatternEquationStar,
		Delimiters: `\begin{equation*} … \end{equation*}`,
		Display:    true,
		expr:       anchored(`\\begin\{equation\*\}(.*)\\end\{equation\*\}`),
		open:       `\begin{equation*}`,
		close:      `\end{equation*}`,
	},
	{
		Name:       PatternAlign,
		Delimiters: `\begin{align} … \end{align}`,
		Display:    true,
		expr:       anchored(`(\\begin\{align\}.*\\end\{align\})`),
		open:       `\begin{align}`,
		close:      `\end{align}`,
		wrap:       true,
	},
	{
		Name:       PatternAlignStar,
		Delimiters: `\begin{align*} … \end{align*}`,
		Display:    true,
		expr:       anchored(`(\\begin\{align\*\}.*\\end\{align\*\})`),
		open:       `\begin{align*}`,
		close:      `\end{align*}`,
		wrap:       true,
	},
}

// Patterns returns a copy of the whitelisted patterns in evaluation order.
func Patterns() []MathPattern {
	out := make([]MathPattern, len(patterns))
	copy(out, patterns)
	return out
}
