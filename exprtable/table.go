// Package exprtable reads and writes the delimited tables used by the
// differential expression tools: a genes-by-samples expression matrix on the
// way in, and a per-gene result table on the way out.
package exprtable

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/diffexpr"
	"github.com/carbocation/pfx"
)

const BufferSize = 4096 * 8

var (
	// ErrDuplicateGene indicates a row-identifier collision in the input.
	ErrDuplicateGene = errors.New("duplicate gene identifier")

	// ErrMissingSample indicates a requested sample column that does not
	// exist in the table header.
	ErrMissingSample = errors.New("sample not present in table")
)

// Table is an in-memory expression matrix. Rows are keyed by gene
// identifier, columns by sample identifier. Tables are loaded once and
// read-only thereafter.
type Table struct {
	genes   []string
	samples []string
	values  map[string][]float64 // gene -> one value per sample, in header order
	cols    map[string]int       // sample -> column index into values
}

// Load opens a delimited expression matrix, sniffs its delimiter, and reads
// it fully into memory.
func Load(path string) (*Table, error) {
	f, err := os.Open(diffexpr.ExpandHome(path))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	delim := diffexpr.DetermineDelimiter(f)
	f.Seek(0, 0)

	return Read(bufio.NewReaderSize(f, BufferSize), delim)
}

// Read parses a delimited matrix whose header row holds sample identifiers
// and whose first column holds unique gene identifiers.
func Read(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("header parsing error: %v", err))
	}
	if len(header) < 2 {
		return nil, pfx.Err(fmt.Errorf("header has %d columns; need a gene column plus at least one sample", len(header)))
	}

	t := &Table{
		samples: header[1:],
		values:  make(map[string][]float64),
		cols:    make(map[string]int, len(header)-1),
	}
	for i, sample := range t.samples {
		t.cols[sample] = i
	}

	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(fmt.Errorf("row %d: %v", line, err))
		}

		gene := row[0]
		if _, exists := t.values[gene]; exists {
			return nil, fmt.Errorf("row %d: gene %q: %w", line, gene, ErrDuplicateGene)
		}

		vals := make([]float64, len(row)-1)
		for i, field := range row[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("row %d (gene %q), column %q: %v", line, gene, t.samples[i], err))
			}
			if v < 0 {
				return nil, pfx.Err(fmt.Errorf("row %d (gene %q), column %q: negative expression value %v", line, gene, t.samples[i], v))
			}
			vals[i] = v
		}

		t.genes = append(t.genes, gene)
		t.values[gene] = vals
	}

	return t, nil
}

// Genes returns the gene identifiers in input order.
func (t *Table) Genes() []string {
	return t.genes
}

// Samples returns the sample identifiers in header order.
func (t *Table) Samples() []string {
	return t.samples
}

// Values extracts one gene's expression values for the named samples, in the
// order given. Looking up a sample that is not in the table is an
// ErrMissingSample.
func (t *Table) Values(gene string, samples []string) ([]float64, error) {
	row, exists := t.values[gene]
	if !exists {
		return nil, pfx.Err(fmt.Errorf("gene %q not present in table", gene))
	}

	out := make([]float64, len(samples))
	for i, sample := range samples {
		col, exists := t.cols[sample]
		if !exists {
			return nil, fmt.Errorf("sample %q: %w", sample, ErrMissingSample)
		}
		out[i] = row[col]
	}

	return out, nil
}
