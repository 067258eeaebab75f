package cache

import (
	"strconv"
)

// ConversionKeyOpts are the inputs that determine a conversion's output.
type ConversionKeyOpts struct {
	Content   string  // math payload after classification
	Display   bool    // display-mode flag
	Scale     float64 // scale factor
	Converter string  // renderer configuration fingerprint
}

// Keyer generates cache keys.
type Keyer interface {
	ConversionKey(opts ConversionKeyOpts) string
}

// DefaultKeyer produces keys of the form "svg:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ConversionKey hashes all conversion inputs into one key.
func (DefaultKeyer) ConversionKey(opts ConversionKeyOpts) string {
	return hashKey("svg",
		opts.Content,
		opts.Display,
		strconv.FormatFloat(opts.Scale, 'g', -1, 64),
		opts.Converter,
	)
}
