package derivers

import (
	"math"
	"sort"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

// metric builds a numeric metric, degrading to an insufficient marker when
// the value is NaN. Values are rounded to one decimal.
func metric(key, label string, value float64, unit string) domain.Metric {
	if math.IsNaN(value) {
		return insufficient(key, label, "")
	}
	return domain.Metric{Key: key, Label: label, Value: round1(value), Unit: unit}
}

// finding builds a textual metric.
func finding(key, label, text string) domain.Metric {
	return domain.Metric{Key: key, Label: label, Text: text}
}

// insufficient marks a metric the datasets could not support.
func insufficient(key, label, note string) domain.Metric {
	if note == "" {
		note = "데이터 부족"
	}
	return domain.Metric{Key: key, Label: label, Insufficient: true, Note: note}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// nanMean averages the values, skipping NaN. It returns NaN when nothing is
// left to average.
func nanMean(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// pluck collects one field from every merchant.
func pluck(merchants []domain.Merchant, pick func(domain.Merchant) float64) []float64 {
	out := make([]float64, 0, len(merchants))
	for _, m := range merchants {
		out = append(out, pick(m))
	}
	return out
}

// known filters out NaN values.
func known(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// median interpolates the 0.5 quantile of the values. NaN when empty.
func median(values []float64) float64 {
	vs := known(values)
	if len(vs) == 0 {
		return math.NaN()
	}
	sort.Float64s(vs)

	h := float64(len(vs)-1) / 2
	lo := int(math.Floor(h))
	if lo == len(vs)-1 {
		return vs[lo]
	}
	return vs[lo] + (h-float64(lo))*(vs[lo+1]-vs[lo])
}

// rankedShares returns the merchant's known persona shares ordered by share
// descending. Equal shares keep the canonical band order.
func rankedShares(shares []domain.SegmentShare) []domain.SegmentShare {
	ranked := make([]domain.SegmentShare, 0, len(shares))
	for _, s := range shares {
		if s.Known {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Share > ranked[j].Share
	})
	return ranked
}

// topBands returns the labels of the n largest entries of a gender and age
// distribution, as segment bands.
func topBands(entries []domain.FlowEntry, n int) []domain.SegmentBand {
	ranked := make([]domain.FlowEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	bands := make([]domain.SegmentBand, 0, n)
	for _, e := range ranked[:n] {
		bands = append(bands, domain.SegmentBand(e.Label))
	}
	return bands
}
