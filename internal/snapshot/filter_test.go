package snapshot

import (
	"testing"

	"github.com/openshelf/colophon/internal/rule"
)

func mustRules(t *testing.T, patterns ...string) rule.Set {
	t.Helper()
	set, err := rule.Compile(patterns)
	if err != nil {
		t.Fatalf("rule.Compile() error = %v", err)
	}
	return set
}

func TestFilterApply(t *testing.T) {
	f := NewFilter(mustRules(t, "jordan"))

	tests := []struct {
		name   string
		line   string
		wantOK bool
	}{
		{
			name:   "matching record",
			line:   `{"title": "Jordan River hydrology", "year": 2019, "journal_name": "Water", "publisher": "MDPI", "doi_url": "https://doi.org/10.1/x", "z_authors": [{"given": "Jane", "family": "Smith"}], "best_oa_location": {"url": "https://example.org/a.pdf"}}`,
			wantOK: true,
		},
		{
			name:   "null title dropped",
			line:   `{"title": null, "best_oa_location": {"url": "https://example.org/a.pdf"}}`,
			wantOK: false,
		},
		{
			name:   "absent title dropped",
			line:   `{"best_oa_location": {"url": "https://example.org/a.pdf"}}`,
			wantOK: false,
		},
		{
			name:   "null open access location dropped",
			line:   `{"title": "Jordan River hydrology", "best_oa_location": null}`,
			wantOK: false,
		},
		{
			name:   "non-matching title dropped",
			line:   `{"title": "Unrelated subject", "best_oa_location": {"url": "https://example.org/a.pdf"}}`,
			wantOK: false,
		},
		{
			name:   "diacritic title matches after normalization",
			line:   `{"title": "Études du Jördan", "best_oa_location": {"url": "https://example.org/a.pdf"}}`,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, ok, err := f.Apply([]byte(tt.line))
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("Apply() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && row.FullJSON != tt.line {
				t.Errorf("Apply() FullJSON = %q, want input line verbatim", row.FullJSON)
			}
		})
	}
}

func TestFilterApplyRowProjection(t *testing.T) {
	f := NewFilter(mustRules(t, "jordan"))
	line := `{"title": "Jordan River hydrology", "year": 2019, "journal_name": "Water", "publisher": "MDPI", "doi_url": "https://doi.org/10.1/x", "z_authors": [{"given": "Jane", "family": "Smith"}, {"given": "John", "family": "Doe"}], "best_oa_location": {"url": "https://example.org/a.pdf"}}`

	row, ok, err := f.Apply([]byte(line))
	if err != nil || !ok {
		t.Fatalf("Apply() = (%v, %v), want match", ok, err)
	}

	want := Row{
		PrimaryAuthor: "Smith, Jane",
		Title:         "Jordan River hydrology",
		Year:          "2019",
		Journal:       "Water",
		PDF:           "https://example.org/a.pdf",
		DOI:           "https://doi.org/10.1/x",
		FullJSON:      line,
	}
	if row != want {
		t.Errorf("Apply() row = %+v, want %+v", row, want)
	}
}

func TestFilterApplyMissingOptionalColumns(t *testing.T) {
	f := NewFilter(mustRules(t, "jordan"))
	line := `{"title": "Jordan", "year": null, "journal_name": null, "doi_url": null, "z_authors": null, "best_oa_location": {"url": "https://example.org/a.pdf"}}`

	row, ok, err := f.Apply([]byte(line))
	if err != nil || !ok {
		t.Fatalf("Apply() = (%v, %v), want match", ok, err)
	}
	if row.PrimaryAuthor != "Unknown" {
		t.Errorf("PrimaryAuthor = %q, want Unknown", row.PrimaryAuthor)
	}
	if row.Year != "" || row.Journal != "" || row.DOI != "" {
		t.Errorf("null columns = (%q, %q, %q), want empty", row.Year, row.Journal, row.DOI)
	}
}

func TestFilterApplyMalformedLine(t *testing.T) {
	f := NewFilter(mustRules(t, "jordan"))
	if _, _, err := f.Apply([]byte(`{"title": `)); err == nil {
		t.Error("Apply() with malformed JSON succeeded, want error")
	}
}
