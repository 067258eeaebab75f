package tex

import (
	"strings"

	"github.com/matzehuels/texsvg/pkg/errors"
)

// Match is the result of classifying a TeX fragment.
type Match struct {
	Pattern string // name of the matching MathPattern
	Content string // trimmed math payload handed to the renderer
	Display bool   // render in display mode
}

// Classify finds the first whitelisted pattern wrapping the whole of text.
//
// On success the captured payload is trimmed of surrounding whitespace. When
// no pattern matches, Classify returns an ErrCodeNoPatternMatched error whose
// message quotes the original, untrimmed input.
func Classify(text string) (Match, error) {
	for _, p := range patterns {
		content, ok := p.match(text)
		if !ok {
			continue
		}
		return Match{
			Pattern: p.Name,
			Content: strings.TrimSpace(content),
			Display: p.Display,
		}, nil
	}
	return Match{}, NoPatternMatched(text)
}

// NoPatternMatched builds the error reported for input outside the whitelist.
func NoPatternMatched(text string) error {
	return errors.New(errors.ErrCodeNoPatternMatched, "No math pattern found in %s.", quote(text))
}

// quote wraps s in double quotes without escaping its contents, so the
// message names the input exactly as it was received.
func quote(s string) string {
	return `"` + s + `"`
}
