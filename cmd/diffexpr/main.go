// diffexpr runs a one-shot differential gene expression analysis: it loads a
// delimited genes-by-samples expression matrix, compares two replicate
// groups per gene (Welch's t-test with Benjamini-Hochberg correction),
// writes the result table, and renders a volcano plot.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/carbocation/diffexpr/deg"
	"github.com/carbocation/diffexpr/exprtable"
	"github.com/carbocation/diffexpr/volcano"
	"github.com/montanaflynn/stats"
)

func main() {
	var (
		configPath            string
		input, output         string
		group1Arg, group2Arg  string
		plotPath              string
		fcThresh, pThresh     float64
		sigColor, nonsigColor string
		outDelim              string
	)

	flag.StringVar(&configPath, "config", "", "Optional path to a JSON config mirroring the other flags. Explicit flags win.")
	flag.StringVar(&input, "input", "", "Path to the delimited expression matrix (header row holds sample IDs, first column holds unique gene IDs).")
	flag.StringVar(&output, "output", "", "Path for the delimited result table. Overwritten if it already exists.")
	flag.StringVar(&group1Arg, "group1", "", "Comma-separated sample IDs belonging to condition 1.")
	flag.StringVar(&group2Arg, "group2", "", "Comma-separated sample IDs belonging to condition 2.")
	flag.StringVar(&plotPath, "plot", "volcano.png", "Path for the volcano plot PNG. Empty disables plotting.")
	flag.Float64Var(&fcThresh, "log2fc-threshold", 1.0, "Absolute log2 fold-change a significant gene must exceed.")
	flag.Float64Var(&pThresh, "p-threshold", 0.05, "Adjusted p-value a significant gene must fall below.")
	flag.StringVar(&sigColor, "significant-color", "red", "Plot color for significant genes (named color or RGB hex).")
	flag.StringVar(&nonsigColor, "nonsignificant-color", "gray", "Plot color for non-significant genes (named color or RGB hex).")
	flag.StringVar(&outDelim, "out-delimiter", ",", "Single-character delimiter for the result table.")
	flag.Parse()

	group1 := splitSamples(group1Arg)
	group2 := splitSamples(group2Arg)

	if configPath != "" {
		cfg, err := ParseJSONConfigFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}

		setFlags := make(map[string]struct{})
		flag.Visit(func(f *flag.Flag) {
			setFlags[f.Name] = struct{}{}
		})
		unset := func(name string) bool {
			_, explicit := setFlags[name]
			return !explicit
		}

		if unset("input") && cfg.Input != "" {
			input = cfg.Input
		}
		if unset("output") && cfg.Output != "" {
			output = cfg.Output
		}
		if unset("group1") && len(cfg.Group1) > 0 {
			group1 = cfg.Group1
		}
		if unset("group2") && len(cfg.Group2) > 0 {
			group2 = cfg.Group2
		}
		if unset("plot") && cfg.Plot != "" {
			plotPath = cfg.Plot
		}
		if unset("log2fc-threshold") && cfg.Log2FCThreshold != 0 {
			fcThresh = cfg.Log2FCThreshold
		}
		if unset("p-threshold") && cfg.PValueThreshold != 0 {
			pThresh = cfg.PValueThreshold
		}
		if unset("significant-color") && cfg.SignificantColor != "" {
			sigColor = cfg.SignificantColor
		}
		if unset("nonsignificant-color") && cfg.NonsignificantColor != "" {
			nonsigColor = cfg.NonsignificantColor
		}
		if unset("out-delimiter") && cfg.OutDelimiter != "" {
			outDelim = cfg.OutDelimiter
		}
	}

	if input == "" || output == "" || len(group1) == 0 || len(group2) == 0 {
		fmt.Fprintln(os.Stderr, "Please provide -input, -output, -group1, and -group2")
		flag.PrintDefaults()
		os.Exit(1)
	}

	delim, size := utf8.DecodeRuneInString(outDelim)
	if size != len(outDelim) || delim == utf8.RuneError {
		log.Fatalf("-out-delimiter must be a single character, got %q\n", outDelim)
	}

	opt := volcano.DefaultOptions()
	opt.Log2FCThreshold = fcThresh
	opt.PValueThreshold = pThresh
	opt.SignificantColor = sigColor
	opt.NonsignificantColor = nonsigColor

	if err := run(input, output, plotPath, group1, group2, delim, opt); err != nil {
		log.Fatalln(err)
	}
}

func run(input, output, plotPath string, group1, group2 []string, outDelim rune, opt volcano.Options) error {
	log.Printf("Loading expression matrix from %s\n", input)
	table, err := exprtable.Load(input)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d genes x %d samples\n", len(table.Genes()), len(table.Samples()))

	summarizeGroup(table, "group1", group1)
	summarizeGroup(table, "group2", group2)

	results, err := deg.Compute(table, group1, group2)
	if err != nil {
		return err
	}

	// Write before plot, so a plotting failure never costs the result table
	log.Printf("Writing %d results to %s\n", len(results), output)
	if err := exprtable.WriteResults(output, outDelim, results); err != nil {
		return err
	}

	nSig := 0
	for _, r := range results {
		if volcano.Significant(r, opt.Log2FCThreshold, opt.PValueThreshold) {
			nSig++
		}
	}
	log.Printf("%d of %d genes significant at |log2FC| > %g and adjusted p < %g\n",
		nSig, len(results), opt.Log2FCThreshold, opt.PValueThreshold)

	if plotPath == "" {
		return nil
	}

	log.Printf("Rendering volcano plot to %s\n", plotPath)
	return volcano.Plot(plotPath, results, opt)
}

// summarizeGroup logs replicate count and grand mean expression for one
// group. Purely informational: membership errors are left for the compute
// stage to surface.
func summarizeGroup(table *exprtable.Table, label string, samples []string) {
	var all []float64
	for _, gene := range table.Genes() {
		vals, err := table.Values(gene, samples)
		if err != nil {
			return
		}
		all = append(all, vals...)
	}

	mean, err := stats.Mean(all)
	if err != nil {
		return
	}

	log.Printf("%s: %d replicates (%s), grand mean expression %.4g\n",
		label, len(samples), strings.Join(samples, ","), mean)
}

func splitSamples(arg string) []string {
	var out []string
	for _, s := range strings.Split(arg, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}
