package exprtable

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const commaMatrix = `Gene,s1,s2,s3,s4
A,10,10,10,10
B,2,2,8,8
C,0,0,5,5
`

func TestReadPreservesOrderAndValues(t *testing.T) {
	table, err := Read(strings.NewReader(commaMatrix), ',')
	if err != nil {
		t.Fatal(err)
	}

	wantGenes := []string{"A", "B", "C"}
	if got := table.Genes(); len(got) != len(wantGenes) {
		t.Fatalf("got %d genes, want %d", len(got), len(wantGenes))
	}
	for i, gene := range wantGenes {
		if table.Genes()[i] != gene {
			t.Errorf("gene %d: got %q, want %q", i, table.Genes()[i], gene)
		}
	}

	wantSamples := []string{"s1", "s2", "s3", "s4"}
	for i, sample := range wantSamples {
		if table.Samples()[i] != sample {
			t.Errorf("sample %d: got %q, want %q", i, table.Samples()[i], sample)
		}
	}

	vals, err := table.Values("B", []string{"s3", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != 8 || vals[1] != 2 {
		t.Errorf("got B[s3,s1] = %v, want [8 2]", vals)
	}
}

func TestReadTabDelimited(t *testing.T) {
	tsv := strings.ReplaceAll(commaMatrix, ",", "\t")

	table, err := Read(strings.NewReader(tsv), '\t')
	if err != nil {
		t.Fatal(err)
	}

	vals, err := table.Values("C", []string{"s1", "s4"})
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != 0 || math.Abs(vals[1]-5) > 0 {
		t.Errorf("got C[s1,s4] = %v, want [0 5]", vals)
	}
}

func TestLoadSniffsDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.tsv")
	tsv := strings.ReplaceAll(commaMatrix, ",", "\t")
	if err := os.WriteFile(path, []byte(tsv), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(table.Genes()); got != 3 {
		t.Errorf("got %d genes, want 3", got)
	}
	if got := len(table.Samples()); got != 4 {
		t.Errorf("got %d samples, want 4", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.csv")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestReadRejectsBadInput(t *testing.T) {
	for _, tc := range []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "duplicate gene",
			input:   "Gene,s1,s2\nA,1,2\nA,3,4\n",
			wantErr: ErrDuplicateGene,
		},
		{
			name:  "non-numeric cell",
			input: "Gene,s1,s2\nA,1,oops\n",
		},
		{
			name:  "negative expression",
			input: "Gene,s1,s2\nA,1,-2\n",
		},
		{
			name:  "ragged row",
			input: "Gene,s1,s2\nA,1\n",
		},
		{
			name:  "header only gene column",
			input: "Gene\nA\n",
		},
	} {
		_, err := Read(strings.NewReader(tc.input), ',')
		if err == nil {
			t.Errorf("%s: expected an error", tc.name)
			continue
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: got %v, want %v in chain", tc.name, err, tc.wantErr)
		}
	}
}

func TestValuesMissingSample(t *testing.T) {
	table, err := Read(strings.NewReader(commaMatrix), ',')
	if err != nil {
		t.Fatal(err)
	}

	if _, err := table.Values("A", []string{"s1", "s99"}); !errors.Is(err, ErrMissingSample) {
		t.Fatalf("got %v, want ErrMissingSample in chain", err)
	}

	if _, err := table.Values("nope", []string{"s1"}); err == nil {
		t.Fatal("expected an error for an unknown gene")
	}
}
