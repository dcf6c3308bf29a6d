package exprtable

import (
	"bufio"
	"encoding/csv"
	"os"

	"github.com/carbocation/diffexpr"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// Result is one gene's differential expression record. The field order here
// is the column order of the output table.
type Result struct {
	Gene      string  `csv:"Gene"`
	Log2FC    float64 `csv:"Log2FC"`
	PValue    float64 `csv:"PValue"`
	AdjPValue float64 `csv:"AdjPValue"`
}

// WriteResults serializes the result table to a delimited file, one row per
// gene in the order given. An existing file at path is truncated, not
// appended to.
func WriteResults(path string, delim rune, results []Result) error {
	f, err := os.Create(diffexpr.ExpandHome(path))
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	cw.Comma = delim

	if err := gocsv.MarshalCSV(&results, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadResults loads a previously written result table. Mostly useful for
// downstream tools and round-trip checks.
func ReadResults(path string) ([]Result, error) {
	f, err := os.Open(diffexpr.ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	delim := diffexpr.DetermineDelimiter(f)
	f.Seek(0, 0)

	cr := csv.NewReader(bufio.NewReaderSize(f, BufferSize))
	cr.Comma = delim

	var results []Result
	if err := gocsv.UnmarshalCSV(cr, &results); err != nil {
		return nil, pfx.Err(err)
	}

	return results, nil
}
