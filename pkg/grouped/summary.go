package grouped

import "github.com/montanaflynn/stats"

// Summary holds the reported aggregate of a per-object vector.
type Summary struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

// Summarize computes the four summary statistics of v. An empty
// vector yields an error ("no data"), never a NaN-filled Summary.
func Summarize(v []float64) (Summary, error) {
	mean, err := stats.Mean(v)
	if err != nil {
		return Summary{}, err
	}
	median, err := stats.Median(v)
	if err != nil {
		return Summary{}, err
	}
	min, err := stats.Min(v)
	if err != nil {
		return Summary{}, err
	}
	max, err := stats.Max(v)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Mean: mean, Median: median, Min: min, Max: max}, nil
}
