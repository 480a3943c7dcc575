package pipeline

import (
	"bytes"
	"compress/gzip"
	"strings"
	"testing"

	"github.com/openshelf/colophon/internal/rule"
	"github.com/openshelf/colophon/internal/snapshot"
	"github.com/openshelf/colophon/internal/storage"
)

var testLines = []string{
	`{"title": "Jordan River hydrology: a review", "year": 2019, "journal_name": "Water", "publisher": "MDPI", "doi_url": "https://doi.org/10.1/x", "z_authors": [{"given": "Jane", "family": "Smith"}], "best_oa_location": {"url": "https://example.org/a.pdf"}}`,
	`{"title": "Unrelated work", "year": 2018, "journal_name": "Misc", "publisher": "P", "doi_url": "https://doi.org/10.2/y", "z_authors": [], "best_oa_location": {"url": "https://example.org/b.pdf"}}`,
	`{"title": null, "best_oa_location": {"url": "https://example.org/c.pdf"}}`,
	`{"title": "Lower Jordan valley irrigation", "year": 2021, "journal_name": "Agro", "publisher": "Elsevier", "doi_url": "https://doi.org/10.3/z", "z_authors": [{"given": "John", "family": "Doe"}, {"given": "Carol", "family": "Lee"}], "best_oa_location": {"url": "https://example.org/d.pdf"}}`,
}

func gzipStream(t *testing.T, lines []string) *snapshot.Stream {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	for _, line := range lines {
		if _, err := gz.Write([]byte(line + "\n")); err != nil {
			t.Fatal(err)
		}
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}

	gr, err := gzip.NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	return snapshot.New(gr)
}

func jordanFilter(t *testing.T) *snapshot.Filter {
	t.Helper()
	set, err := rule.Compile([]string{"jordan"})
	if err != nil {
		t.Fatal(err)
	}
	return snapshot.NewFilter(set)
}

func TestRunCSV(t *testing.T) {
	var out bytes.Buffer
	var seen int64
	progress := func(lines int64) { seen = lines }

	err := Run(gzipStream(t, testLines), jordanFilter(t), NewCSVSink(&out), progress)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if seen != int64(len(testLines)) {
		t.Errorf("progress saw %d lines, want %d", seen, len(testLines))
	}

	reader := storage.NewRowReader(&out)
	var rows []snapshot.Row
	for {
		row, err := reader.Read()
		if err != nil {
			break
		}
		rows = append(rows, row)
	}
	if len(rows) != 2 {
		t.Fatalf("Run() produced %d rows, want 2", len(rows))
	}
	if rows[0].FullJSON != testLines[0] {
		t.Errorf("row 0 FullJSON differs from input line")
	}
	if rows[1].FullJSON != testLines[3] {
		t.Errorf("row 1 FullJSON differs from input line")
	}
}

func TestRunMalformedLineFatal(t *testing.T) {
	lines := []string{testLines[0], `{"broken`}
	var out bytes.Buffer
	err := Run(gzipStream(t, lines), jordanFilter(t), NewCSVSink(&out), nil)
	if err == nil {
		t.Fatal("Run() with malformed line succeeded, want error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Run() error = %v, want line number context", err)
	}
}

// Single-pass MARC output must equal the two-pass CSV-then-MARC output.
func TestSinglePassEqualsTwoPass(t *testing.T) {
	var single bytes.Buffer
	if err := Run(gzipStream(t, testLines), jordanFilter(t), NewMARCSink(&single), nil); err != nil {
		t.Fatalf("single-pass Run() error = %v", err)
	}

	var csvOut bytes.Buffer
	if err := Run(gzipStream(t, testLines), jordanFilter(t), NewCSVSink(&csvOut), nil); err != nil {
		t.Fatalf("two-pass filter Run() error = %v", err)
	}
	var double bytes.Buffer
	if err := RunRows(storage.NewRowReader(&csvOut), NewMARCSink(&double), nil); err != nil {
		t.Fatalf("two-pass RunRows() error = %v", err)
	}

	if single.Len() == 0 {
		t.Fatal("single-pass produced no MARC output")
	}
	if !bytes.Equal(single.Bytes(), double.Bytes()) {
		t.Error("single-pass and two-pass MARC output differ")
	}
}

func TestRunMARCMissingKeyAbortsRun(t *testing.T) {
	// Passes the filter but lacks publisher: fatal for the build stage.
	lines := []string{`{"title": "Jordan", "year": 2020, "journal_name": "J", "doi_url": "d", "z_authors": [], "best_oa_location": {"url": "u"}}`}
	var out bytes.Buffer
	if err := Run(gzipStream(t, lines), jordanFilter(t), NewMARCSink(&out), nil); err == nil {
		t.Error("Run() with missing publisher succeeded, want error")
	}
}
