package exprtable

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var testResults = []Result{
	{Gene: "A", Log2FC: 0.0000000144, PValue: 1, AdjPValue: 1},
	{Gene: "B", Log2FC: 2, PValue: 0.0003, AdjPValue: 0.0006},
	{Gene: "C", Log2FC: -1.7, PValue: 0.02, AdjPValue: 0.03},
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	if err := WriteResults(path, ',', testResults); err != nil {
		t.Fatal(err)
	}

	got, err := ReadResults(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != len(testResults) {
		t.Fatalf("got %d rows, want %d", len(got), len(testResults))
	}
	for i, want := range testResults {
		if got[i].Gene != want.Gene {
			t.Errorf("row %d: got gene %q, want %q", i, got[i].Gene, want.Gene)
		}
		for _, v := range []struct {
			name      string
			got, want float64
		}{
			{"Log2FC", got[i].Log2FC, want.Log2FC},
			{"PValue", got[i].PValue, want.PValue},
			{"AdjPValue", got[i].AdjPValue, want.AdjPValue},
		} {
			if math.Abs(v.got-v.want) > 1e-12 {
				t.Errorf("row %d %s: got %v, want %v", i, v.name, v.got, v.want)
			}
		}
	}
}

func TestWriteResultsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	if err := WriteResults(path, ',', testResults); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		t.Fatal("empty output file")
	}
	if got, want := scanner.Text(), "Gene,Log2FC,PValue,AdjPValue"; got != want {
		t.Errorf("header: got %q, want %q", got, want)
	}
}

func TestWriteResultsTabDelimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.tsv")

	if err := WriteResults(path, '\t', testResults); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "Gene\tLog2FC") {
		t.Errorf("expected tab-delimited output, got:\n%s", b)
	}
}

func TestWriteResultsOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	if err := WriteResults(path, ',', testResults); err != nil {
		t.Fatal(err)
	}
	if err := WriteResults(path, ',', testResults[:1]); err != nil {
		t.Fatal(err)
	}

	got, err := ReadResults(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("second write should truncate: got %d rows, want 1", len(got))
	}
}
