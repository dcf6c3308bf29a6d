// Package volcano classifies differential expression results by significance
// and renders the classic volcano scatter: effect size on x, statistical
// significance on y.
package volcano

import (
	"bytes"
	"math"
	"os"

	"github.com/carbocation/diffexpr"
	"github.com/carbocation/diffexpr/exprtable"
	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Options controls classification thresholds and presentation.
type Options struct {
	// A gene is significant iff AdjPValue < PValueThreshold and
	// |Log2FC| > Log2FCThreshold.
	Log2FCThreshold float64
	PValueThreshold float64

	SignificantColor    string
	NonsignificantColor string

	Width  int
	Height int
}

// DefaultOptions mirror the conventional volcano cutoffs: two-fold change
// and FDR 5%.
func DefaultOptions() Options {
	return Options{
		Log2FCThreshold:     1.0,
		PValueThreshold:     0.05,
		SignificantColor:    "red",
		NonsignificantColor: "gray",
		Width:               800,
		Height:              600,
	}
}

// Significant reports whether a single result clears both thresholds.
func Significant(r exprtable.Result, log2fcThresh, pThresh float64) bool {
	return r.AdjPValue < pThresh && math.Abs(r.Log2FC) > log2fcThresh
}

// Plot renders the volcano scatter for the full result table to a PNG file
// at filename. X is log2 fold-change, Y is -log10 of the raw p-value;
// points are colored by classification, with reference lines at the two
// thresholds.
func Plot(filename string, results []exprtable.Result, opt Options) error {
	sigColor, err := parseColor(opt.SignificantColor)
	if err != nil {
		return pfx.Err(err)
	}
	nonsigColor, err := parseColor(opt.NonsignificantColor)
	if err != nil {
		return pfx.Err(err)
	}

	var sigX, sigY, nonsigX, nonsigY []float64
	xMin, xMax := -opt.Log2FCThreshold, opt.Log2FCThreshold
	yMax := negLog10(opt.PValueThreshold)

	for _, r := range results {
		y := negLog10(r.PValue)

		if Significant(r, opt.Log2FCThreshold, opt.PValueThreshold) {
			sigX = append(sigX, r.Log2FC)
			sigY = append(sigY, y)
		} else {
			nonsigX = append(nonsigX, r.Log2FC)
			nonsigY = append(nonsigY, y)
		}

		xMin = math.Min(xMin, r.Log2FC)
		xMax = math.Max(xMax, r.Log2FC)
		yMax = math.Max(yMax, y)
	}

	// Margin so that threshold lines never sit on the plot border
	xMin, xMax = xMin-0.5, xMax+0.5
	yMax = yMax * 1.05

	refStyle := chart.Style{
		StrokeColor:     drawing.ColorFromHex("999999"),
		StrokeWidth:     1.0,
		StrokeDashArray: []float64{5.0, 5.0},
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Style:   refStyle,
			XValues: []float64{-opt.Log2FCThreshold, -opt.Log2FCThreshold},
			YValues: []float64{0, yMax},
		},
		chart.ContinuousSeries{
			Style:   refStyle,
			XValues: []float64{opt.Log2FCThreshold, opt.Log2FCThreshold},
			YValues: []float64{0, yMax},
		},
		chart.ContinuousSeries{
			Style:   refStyle,
			XValues: []float64{xMin, xMax},
			YValues: []float64{negLog10(opt.PValueThreshold), negLog10(opt.PValueThreshold)},
		},
	}

	if len(nonsigX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Not significant",
			Style:   scatterStyle(nonsigColor),
			XValues: nonsigX,
			YValues: nonsigY,
		})
	}
	if len(sigX) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "Significant",
			Style:   scatterStyle(sigColor),
			XValues: sigX,
			YValues: sigY,
		})
	}

	graph := chart.Chart{
		Width:  opt.Width,
		Height: opt.Height,
		XAxis: chart.XAxis{
			Name:  "log2 fold-change",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  "-log10 p-value",
			Range: &chart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: series,
	}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return pfx.Err(err)
	}

	outFile, err := os.Create(diffexpr.ExpandHome(filename))
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func scatterStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

// negLog10 floors its input so that an exact zero p-value still lands on the
// chart instead of at +Inf.
func negLog10(p float64) float64 {
	if p < 1e-300 {
		p = 1e-300
	}
	return -math.Log10(p)
}
