// Package measure orchestrates the colocalization metrics for pairs
// of images and assembles the measurement stream. Each pair-and-mode
// unit reads only immutable snapshots, so callers may shard units
// across goroutines freely.
package measure

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"coloc-meter/internal/colocal"
	"coloc-meter/internal/image"
	"coloc-meter/internal/sample"
	"coloc-meter/pkg/grouped"
)

// Metric names used in the measurement stream.
const (
	MetricCorrelation = "Correlation"
	MetricSlope       = "Slope"
	MetricOverlap     = "Overlap"
	MetricK           = "K"
	MetricManders     = "Manders"
	MetricRWC         = "RWC"
	MetricCostes      = "Costes"
)

// Mode selects where metrics are measured.
type Mode int

const (
	// ModeImages measures across entire images.
	ModeImages Mode = iota
	// ModeObjects measures within labeled objects.
	ModeObjects
	// ModeBoth measures both ways.
	ModeBoth
)

// Config selects which metric families run and carries the shared
// threshold percentage. The zero Logger is safe; DefaultConfig
// installs a no-op logger explicitly.
type Config struct {
	Correlation bool
	Manders     bool
	Overlap     bool
	RWC         bool
	Costes      bool

	// ThresholdPercent is the Manders/Overlap/RWC cutoff as a
	// percentage of each channel's maximum intensity, in [0, 99].
	ThresholdPercent float64

	Logger zerolog.Logger
}

// DefaultConfig enables every metric family at a 15% threshold.
func DefaultConfig() Config {
	return Config{
		Correlation:      true,
		Manders:          true,
		Overlap:          true,
		RWC:              true,
		Costes:           true,
		ThresholdPercent: 15,
		Logger:           zerolog.Nop(),
	}
}

// Validate checks the threshold percentage range.
func (c Config) Validate() error {
	if c.ThresholdPercent < 0 || c.ThresholdPercent > 99 {
		return fmt.Errorf("threshold percentage %v outside [0, 99]", c.ThresholdPercent)
	}
	return nil
}

func (c Config) wantsThreshold() bool {
	return c.Manders || c.Overlap || c.RWC
}

// NamedImage pairs an image with its measurement id.
type NamedImage struct {
	Name  string
	Image *image.Image
}

// NamedLabelMap pairs a label map with its object-set id.
type NamedLabelMap struct {
	Name   string
	Labels *image.LabelMap
}

// Result is one measurement record. Whole-image records carry a
// scalar Value; object records carry the per-object vector in Values
// together with its Summary. Summary is nil when the object set is
// empty ("no data"), never a NaN stand-in.
type Result struct {
	FirstImage  string
	SecondImage string
	Objects     string
	Metric      string
	Value       float64
	Values      []float64
	Summary     *grouped.Summary
}

// String renders a display row in the order first image, second
// image, objects, metric, value.
func (r Result) String() string {
	objects := r.Objects
	if objects == "" {
		objects = "-"
	}
	if r.Objects != "" || r.Values != nil {
		if r.Summary == nil {
			return fmt.Sprintf("%s  %s  %s  %s  no data", r.FirstImage, r.SecondImage, objects, r.Metric)
		}
		return fmt.Sprintf("%s  %s  %s  %s  mean=%.3f median=%.3f min=%.3f max=%.3f",
			r.FirstImage, r.SecondImage, objects, r.Metric,
			r.Summary.Mean, r.Summary.Median, r.Summary.Min, r.Summary.Max)
	}
	return fmt.Sprintf("%s  %s  %s  %s  %.3f", r.FirstImage, r.SecondImage, objects, r.Metric, r.Value)
}

// MeasurePair computes the configured whole-image metrics for one
// image pair. Symmetric metrics (Manders, RWC, K, Costes) are
// reported in both orderings; Correlation, Slope and Overlap once.
func MeasurePair(first, second NamedImage, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := sample.FromImages(first.Image, second.Image)
	if err != nil {
		return nil, fmt.Errorf("measure %s vs %s: %w", first.Name, second.Name, err)
	}
	cfg.Logger.Debug().
		Str("first", first.Name).
		Str("second", second.Name).
		Int("samples", len(p.FI)).
		Msg("extracted whole-image samples")

	scalar := func(a, b, metric string, v float64) Result {
		return Result{FirstImage: a, SecondImage: b, Metric: metric, Value: v}
	}

	var results []Result
	if p.Empty() {
		// Hard short-circuit: no valid pixels, every metric resolves
		// to its family sentinel without touching the kernels.
		if cfg.Correlation {
			results = append(results,
				scalar(first.Name, second.Name, MetricCorrelation, math.NaN()),
				scalar(first.Name, second.Name, MetricSlope, math.NaN()))
		}
		if cfg.Manders {
			results = append(results,
				scalar(first.Name, second.Name, MetricManders, 0),
				scalar(second.Name, first.Name, MetricManders, 0))
		}
		if cfg.RWC {
			results = append(results,
				scalar(first.Name, second.Name, MetricRWC, 0),
				scalar(second.Name, first.Name, MetricRWC, 0))
		}
		if cfg.Overlap {
			results = append(results,
				scalar(first.Name, second.Name, MetricOverlap, 0),
				scalar(first.Name, second.Name, MetricK, 0),
				scalar(second.Name, first.Name, MetricK, 0))
		}
		if cfg.Costes {
			results = append(results,
				scalar(first.Name, second.Name, MetricCostes, 0),
				scalar(second.Name, first.Name, MetricCostes, 0))
		}
		return results, nil
	}

	if cfg.Correlation {
		results = append(results,
			scalar(first.Name, second.Name, MetricCorrelation, colocal.Correlation(p.FI, p.SI)),
			scalar(first.Name, second.Name, MetricSlope, colocal.Slope(p.FI, p.SI)))
	}
	if cfg.wantsThreshold() {
		th := colocal.NewThreshold(p.FI, p.SI, cfg.ThresholdPercent)
		if cfg.Manders {
			m1, m2 := th.Manders()
			results = append(results,
				scalar(first.Name, second.Name, MetricManders, m1),
				scalar(second.Name, first.Name, MetricManders, m2))
		}
		if cfg.RWC {
			r1, r2 := th.RWC()
			results = append(results,
				scalar(first.Name, second.Name, MetricRWC, r1),
				scalar(second.Name, first.Name, MetricRWC, r2))
		}
		if cfg.Overlap {
			overlap, k1, k2 := th.Overlap()
			results = append(results,
				scalar(first.Name, second.Name, MetricOverlap, overlap),
				scalar(first.Name, second.Name, MetricK, k1),
				scalar(second.Name, first.Name, MetricK, k2))
		}
	}
	if cfg.Costes {
		tfi, tsi := colocal.CostesThresholds(p.FI, p.SI)
		c1, c2 := colocal.CostesManders(p.FI, p.SI, tfi, tsi)
		cfg.Logger.Debug().
			Float64("tfi", tfi).
			Float64("tsi", tsi).
			Msg("costes thresholds")
		results = append(results,
			scalar(first.Name, second.Name, MetricCostes, c1),
			scalar(second.Name, first.Name, MetricCostes, c2))
	}
	return results, nil
}

// MeasureObjects computes the configured per-object metrics for one
// image pair within one object set. The Costes threshold pair is
// derived from the whole-image sample and shared by every object.
func MeasureObjects(first, second NamedImage, objects NamedLabelMap, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := sample.FromObjects(first.Image, second.Image, objects.Labels)
	if err != nil {
		return nil, fmt.Errorf("measure %s vs %s in %s: %w", first.Name, second.Name, objects.Name, err)
	}
	n := p.Objects
	cfg.Logger.Debug().
		Str("first", first.Name).
		Str("second", second.Name).
		Str("objects", objects.Name).
		Int("count", n).
		Int("samples", len(p.FI)).
		Msg("extracted object samples")

	vector := func(a, b, metric string, v []float64) Result {
		r := Result{FirstImage: a, SecondImage: b, Objects: objects.Name, Metric: metric, Values: v}
		if s, err := grouped.Summarize(v); err == nil {
			r.Summary = &s
		}
		return r
	}
	nans := func() []float64 {
		v := make([]float64, n)
		for i := range v {
			v[i] = math.NaN()
		}
		return v
	}

	var results []Result
	switch {
	case n == 0:
		// No objects: zero-length vectors, "no data" summaries.
		empty := []float64{}
		if cfg.Correlation {
			results = append(results, vector(first.Name, second.Name, MetricCorrelation, empty))
		}
		if cfg.Manders {
			results = append(results,
				vector(first.Name, second.Name, MetricManders, empty),
				vector(second.Name, first.Name, MetricManders, empty))
		}
		if cfg.RWC {
			results = append(results,
				vector(first.Name, second.Name, MetricRWC, empty),
				vector(second.Name, first.Name, MetricRWC, empty))
		}
		if cfg.Overlap {
			results = append(results,
				vector(first.Name, second.Name, MetricOverlap, empty),
				vector(first.Name, second.Name, MetricK, empty),
				vector(second.Name, first.Name, MetricK, empty))
		}
		if cfg.Costes {
			results = append(results,
				vector(first.Name, second.Name, MetricCostes, empty),
				vector(second.Name, first.Name, MetricCostes, empty))
		}

	case p.Empty():
		// Objects exist but no pixel survives masking: every
		// per-object metric is an n-length NaN vector.
		if cfg.Correlation {
			results = append(results, vector(first.Name, second.Name, MetricCorrelation, nans()))
		}
		if cfg.Manders {
			results = append(results,
				vector(first.Name, second.Name, MetricManders, nans()),
				vector(second.Name, first.Name, MetricManders, nans()))
		}
		if cfg.RWC {
			results = append(results,
				vector(first.Name, second.Name, MetricRWC, nans()),
				vector(second.Name, first.Name, MetricRWC, nans()))
		}
		if cfg.Overlap {
			results = append(results,
				vector(first.Name, second.Name, MetricOverlap, nans()),
				vector(first.Name, second.Name, MetricK, nans()),
				vector(second.Name, first.Name, MetricK, nans()))
		}
		if cfg.Costes {
			results = append(results,
				vector(first.Name, second.Name, MetricCostes, nans()),
				vector(second.Name, first.Name, MetricCostes, nans()))
		}

	default:
		if cfg.Correlation {
			corr := colocal.ObjectCorrelation(p.FI, p.SI, p.Labels, n)
			results = append(results, vector(first.Name, second.Name, MetricCorrelation, corr))
		}
		if cfg.wantsThreshold() {
			th := colocal.NewObjectThreshold(p.FI, p.SI, p.Labels, n, cfg.ThresholdPercent)
			if cfg.Manders {
				m1, m2 := th.Manders()
				results = append(results,
					vector(first.Name, second.Name, MetricManders, m1),
					vector(second.Name, first.Name, MetricManders, m2))
			}
			if cfg.RWC {
				r1, r2 := th.RWC()
				results = append(results,
					vector(first.Name, second.Name, MetricRWC, r1),
					vector(second.Name, first.Name, MetricRWC, r2))
			}
			if cfg.Overlap {
				overlap, k1, k2 := th.Overlap()
				results = append(results,
					vector(first.Name, second.Name, MetricOverlap, overlap),
					vector(first.Name, second.Name, MetricK, k1),
					vector(second.Name, first.Name, MetricK, k2))
			}
		}
		if cfg.Costes {
			// Threshold at image granularity, applied to all objects.
			wp, err := sample.FromImages(first.Image, second.Image)
			if err != nil {
				return nil, fmt.Errorf("measure %s vs %s in %s: %w", first.Name, second.Name, objects.Name, err)
			}
			tfi, tsi := colocal.CostesThresholds(wp.FI, wp.SI)
			c1, c2 := colocal.ObjectCostesManders(p.FI, p.SI, p.Labels, n, tfi, tsi)
			results = append(results,
				vector(first.Name, second.Name, MetricCostes, c1),
				vector(second.Name, first.Name, MetricCostes, c2))
		}
	}
	return results, nil
}

// Pairs measures every unordered pair of the given images in
// canonical order, in whole-image mode, object mode (once per object
// set), or both. At least two images are required.
func Pairs(images []NamedImage, objects []NamedLabelMap, mode Mode, cfg Config) ([]Result, error) {
	if len(images) < 2 {
		return nil, fmt.Errorf("need at least two images, got %d", len(images))
	}
	var results []Result
	for i := 0; i < len(images)-1; i++ {
		for j := i + 1; j < len(images); j++ {
			if mode == ModeImages || mode == ModeBoth {
				r, err := MeasurePair(images[i], images[j], cfg)
				if err != nil {
					return nil, err
				}
				results = append(results, r...)
			}
			if mode == ModeObjects || mode == ModeBoth {
				for _, obj := range objects {
					r, err := MeasureObjects(images[i], images[j], obj, cfg)
					if err != nil {
						return nil, err
					}
					results = append(results, r...)
				}
			}
		}
	}
	return results, nil
}
