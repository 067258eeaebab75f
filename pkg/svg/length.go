package svg

import (
	"regexp"
	"strconv"

	"github.com/matzehuels/texsvg/pkg/errors"
)

// UnitEx is the only unit the converter reports measurements in.
const UnitEx = "ex"

var (
	unsignedEx = regexp.MustCompile(`([\d.]+)ex`)
	signedEx   = regexp.MustCompile(`(-?[\d.]+)ex`)
)

// Length is a measurement embedded in an attribute or property value.
// Text around the first "<number>ex" occurrence is kept so that String
// reproduces the original value apart from the magnitude.
type Length struct {
	Value  float64
	prefix string
	suffix string
}

// ParseLength extracts the first ex measurement from s. Negative magnitudes
// are recognized only when signed is set; otherwise a leading minus sign
// stays in the surrounding text.
func ParseLength(s string, signed bool) (Length, error) {
	expr := unsignedEx
	if signed {
		expr = signedEx
	}
	loc := expr.FindStringSubmatchIndex(s)
	if loc == nil {
		return Length{}, errors.New(errors.ErrCodeMalformedRenderOutput, "no %s measurement in %q", UnitEx, s)
	}
	v, err := strconv.ParseFloat(s[loc[2]:loc[3]], 64)
	if err != nil {
		return Length{}, errors.Wrap(errors.ErrCodeMalformedRenderOutput, err, "invalid %s measurement in %q", UnitEx, s)
	}
	return Length{
		Value:  v,
		prefix: s[:loc[0]],
		suffix: s[loc[1]:],
	}, nil
}

// Scale returns l with its magnitude multiplied by k.
func (l Length) Scale(k float64) Length {
	l.Value *= k
	return l
}

// String formats the length using the shortest decimal representation of
// its magnitude. Magnitudes are never rounded or truncated.
func (l Length) String() string {
	return l.prefix + strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitEx + l.suffix
}
