package pipeline

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/texsvg/pkg/cache"
	"github.com/matzehuels/texsvg/pkg/converter"
	"github.com/matzehuels/texsvg/pkg/errors"
	"github.com/matzehuels/texsvg/pkg/observability"
	"github.com/matzehuels/texsvg/pkg/protocol"
	"github.com/matzehuels/texsvg/pkg/svg"
	"github.com/matzehuels/texsvg/pkg/tex"
)

// Runner executes conversions against one converter.
//
// The Runner holds no per-request state. Multiple goroutines can safely use
// the same Runner as long as its Converter and Cache are safe for concurrent
// use.
type Runner struct {
	Converter converter.Converter
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger

	fingerprint string
}

// NewRunner creates a runner for conv.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(conv converter.Converter, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		Converter: conv,
		Cache:     c,
		Keyer:     keyer,
		Logger:    logger,
	}
	if fp, ok := conv.(converter.Fingerprinter); ok {
		r.fingerprint = fp.Fingerprint()
	}
	return r
}

// Convert classifies src, renders it and returns the image scaled by scale.
func (r *Runner) Convert(ctx context.Context, src string, scale float64) (string, error) {
	res, err := r.Execute(ctx, protocol.NewRequest(src, scale))
	if err != nil {
		return "", err
	}
	return res.SVG, nil
}

// Execute runs a conversion request. An omitted scale means 1.0.
//
// Errors keep their category: NO_PATTERN_MATCHED for input outside the
// whitelist, CONVERTER_FAILURE with the renderer's own message, and
// MALFORMED_RENDER_OUTPUT when the renderer broke its output contract.
func (r *Runner) Execute(ctx context.Context, req protocol.Request) (*Result, error) {
	start := time.Now()
	hooks := observability.Conversion()

	m, err := tex.Classify(req.Tex)
	if err != nil {
		hooks.OnConvertComplete(ctx, "", time.Since(start), err)
		return nil, err
	}

	scale := req.ScaleOrDefault()
	result := &Result{Match: m, Scale: scale}

	hooks.OnConvertStart(ctx, m.Pattern, scale)
	r.Logger.Debug("classified input", "pattern", m.Pattern, "display", m.Display, "scale", scale)

	err = r.run(ctx, result)
	result.Stats.Total = time.Since(start)
	hooks.OnConvertComplete(ctx, m.Pattern, result.Stats.Total, err)
	if err != nil {
		if errors.IsCollaboratorBug(err) {
			r.Logger.Error("converter broke its output contract", "pattern", m.Pattern, "err", err)
		}
		return nil, err
	}

	r.Logger.Debug("converted",
		"pattern", m.Pattern,
		"cached", result.CacheHit,
		"duration", result.Stats.Total)

	return result, nil
}

func (r *Runner) run(ctx context.Context, result *Result) error {
	if err := errors.ValidateScale(result.Scale); err != nil {
		return err
	}

	key := r.Keyer.ConversionKey(cache.ConversionKeyOpts{
		Content:   result.Match.Content,
		Display:   result.Match.Display,
		Scale:     result.Scale,
		Converter: r.fingerprint,
	})
	if r.lookup(ctx, key, result) {
		return nil
	}

	renderStart := time.Now()
	node, err := r.Converter.Convert(ctx, result.Match.Content, result.Match.Display)
	result.Stats.RenderTime = time.Since(renderStart)
	if err != nil {
		return converterError(err)
	}
	if node == nil {
		return errors.New(errors.ErrCodeMalformedRenderOutput, "converter returned no output")
	}

	rescaleStart := time.Now()
	out, err := svg.Rescale(svg.FirstElement(node), result.Scale)
	result.Stats.RescaleTime = time.Since(rescaleStart)
	if err != nil {
		return err
	}
	result.SVG = out

	r.store(ctx, key, out)
	return nil
}

// lookup fills result from the cache. Cache failures count as misses.
func (r *Runner) lookup(ctx context.Context, key string, result *Result) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, KeyTypeSVG)
		return false
	}
	observability.Cache().OnCacheHit(ctx, KeyTypeSVG)
	result.SVG = string(data)
	result.CacheHit = true
	return true
}

func (r *Runner) store(ctx context.Context, key, out string) {
	if err := r.Cache.Set(ctx, key, []byte(out), cache.TTLConversion); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, KeyTypeSVG, len(out))
}

// converterError classifies a converter failure without changing its message.
func converterError(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.Wrap(errors.ErrCodeConverterFailure, err, "%s", err.Error())
}
