package domain

import "testing"

func TestSearchParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  SearchParams
		wantErr error
	}{
		{
			name:    "valid",
			params:  SearchParams{Query: "healthcare", From: "2024-01-01", To: "2024-01-07"},
			wantErr: nil,
		},
		{
			name:    "same day",
			params:  SearchParams{Query: "healthcare", From: "2024-01-07", To: "2024-01-07"},
			wantErr: nil,
		},
		{
			name:    "empty query",
			params:  SearchParams{Query: "   ", From: "2024-01-01", To: "2024-01-07"},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "missing from",
			params:  SearchParams{Query: "healthcare", To: "2024-01-07"},
			wantErr: ErrMissingDates,
		},
		{
			name:    "missing to",
			params:  SearchParams{Query: "healthcare", From: "2024-01-01"},
			wantErr: ErrMissingDates,
		},
		{
			name:    "slash separated from",
			params:  SearchParams{Query: "healthcare", From: "2024/01/01", To: "2024-01-07"},
			wantErr: ErrBadFromDate,
		},
		{
			name:    "textual to",
			params:  SearchParams{Query: "healthcare", From: "2024-01-01", To: "Jan 7"},
			wantErr: ErrBadToDate,
		},
		{
			name:    "from after to",
			params:  SearchParams{Query: "healthcare", From: "2024-01-08", To: "2024-01-07"},
			wantErr: ErrDateOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"2024-01-01", true},
		{"2024-12-31", true},
		{"2024-02-30", false},
		{"2024/01/01", false},
		{"Jan 1", false},
		{"", false},
		{"2024-1-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := ValidDate(tt.value); got != tt.want {
				t.Errorf("ValidDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below minimum", 0, 1},
		{"negative", -5, 1},
		{"lower bound", 1, 1},
		{"in range", 20, 20},
		{"upper bound", 100, 100},
		{"above maximum", 250, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampLimit(tt.in); got != tt.want {
				t.Errorf("ClampLimit(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestSearchParams_Sanitize(t *testing.T) {
	p := SearchParams{Query: "  healthcare OR clinic  ", Domains: " reuters.com "}
	p.Sanitize()

	if p.Query != "healthcare OR clinic" {
		t.Errorf("Query = %q after Sanitize()", p.Query)
	}
	if p.Domains != "reuters.com" {
		t.Errorf("Domains = %q after Sanitize()", p.Domains)
	}
}
