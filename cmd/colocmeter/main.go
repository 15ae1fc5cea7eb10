// Command colocmeter measures colocalization metrics between channel
// images and prints one row per measurement.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	cimg "coloc-meter/internal/image"
	"coloc-meter/internal/measure"
	"coloc-meter/internal/version"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var inputs stringList
	flag.Var(&inputs, "i", "Path to a channel image (repeat per channel, at least two)")
	objectsPath := flag.String("objects", "", "Path to a label image defining objects")
	thr := flag.Float64("thr", 15, "Manders/Overlap/RWC cutoff, percent of each channel's maximum")
	modeName := flag.String("mode", "images", "Measurement granularity: images, objects or both")
	noCorrelation := flag.Bool("no-correlation", false, "Skip Correlation and Slope")
	noManders := flag.Bool("no-manders", false, "Skip Manders coefficients")
	noOverlap := flag.Bool("no-overlap", false, "Skip Overlap and K coefficients")
	noRWC := flag.Bool("no-rwc", false, "Skip rank-weighted coefficients")
	noCostes := flag.Bool("no-costes", false, "Skip Costes automated thresholding")
	verbose := flag.Bool("v", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("colocmeter %s (%s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if len(inputs) < 2 {
		fmt.Println("Usage: colocmeter -i <image> -i <image> [-i ...] [-objects <labels>] [-thr <pct>] [-mode images|objects|both]")
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	var mode measure.Mode
	switch *modeName {
	case "images":
		mode = measure.ModeImages
	case "objects":
		mode = measure.ModeObjects
	case "both":
		mode = measure.ModeBoth
	default:
		fmt.Fprintf(os.Stderr, "Unknown mode %q (want images, objects or both)\n", *modeName)
		os.Exit(1)
	}

	var images []measure.NamedImage
	for _, path := range inputs {
		img, err := cimg.LoadGrayscale(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", path, err)
			os.Exit(1)
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		log.Debug().Str("image", name).Ints("shape", img.Shape).Msg("loaded channel")
		images = append(images, measure.NamedImage{Name: name, Image: img})
	}

	var objects []measure.NamedLabelMap
	if *objectsPath != "" {
		lm, err := cimg.LoadLabelMap(*objectsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load objects %s: %v\n", *objectsPath, err)
			os.Exit(1)
		}
		name := strings.TrimSuffix(filepath.Base(*objectsPath), filepath.Ext(*objectsPath))
		log.Debug().Str("objects", name).Int("count", lm.Count).Msg("loaded label map")
		objects = append(objects, measure.NamedLabelMap{Name: name, Labels: lm})
	}
	if mode != measure.ModeImages && len(objects) == 0 {
		fmt.Fprintln(os.Stderr, "Object mode requires -objects")
		os.Exit(1)
	}

	cfg := measure.DefaultConfig()
	cfg.Correlation = !*noCorrelation
	cfg.Manders = !*noManders
	cfg.Overlap = !*noOverlap
	cfg.RWC = !*noRWC
	cfg.Costes = !*noCostes
	cfg.ThresholdPercent = *thr
	cfg.Logger = log
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	results, err := measure.Pairs(images, objects, mode, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Measurement failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("First image  Second image  Objects  Measurement  Value")
	for _, r := range results {
		fmt.Println(r.String())
	}
}
