package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/carbocation/diffexpr"
	"github.com/carbocation/pfx"
)

// JSONConfig mirrors the command-line flags so a run can be captured as a
// reviewable artifact. Explicit flags win over config values.
type JSONConfig struct {
	ConfigPath string `json:"-"`

	Input  string   `json:"input"`
	Output string   `json:"output"`
	Group1 []string `json:"group1"`
	Group2 []string `json:"group2"`

	Plot                string  `json:"plot"`
	Log2FCThreshold     float64 `json:"log2fc_threshold"`
	PValueThreshold     float64 `json:"pvalue_threshold"`
	SignificantColor    string  `json:"significant_color"`
	NonsignificantColor string  `json:"nonsignificant_color"`
	OutDelimiter        string  `json:"out_delimiter"`
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := JSONConfig{ConfigPath: path}

	f, err := os.Open(diffexpr.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&out)
	if err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
			return out, pfx.Err(err)
		}

		return out, pfx.Err(err)
	}

	out.Input = diffexpr.ExpandHome(out.Input)
	out.Output = diffexpr.ExpandHome(out.Output)
	out.Plot = diffexpr.ExpandHome(out.Plot)

	return out, nil
}
