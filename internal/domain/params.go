package domain

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

const (
	DefaultLanguage = "en"
	DefaultLimit    = 20
	MinLimit        = 1
	MaxLimit        = 100
)

type SearchParams struct {
	Query    string
	From     string // YYYY-MM-DD
	To       string // YYYY-MM-DD
	Language string
	Domains  string // comma-separated, empty means no filter
	Limit    int
}

func (p *SearchParams) Validate() error {
	if strings.TrimSpace(p.Query) == "" {
		return ErrEmptyQuery
	}
	if p.From == "" || p.To == "" {
		return ErrMissingDates
	}

	from, err := time.Parse(DateLayout, p.From)
	if err != nil {
		return ErrBadFromDate
	}
	to, err := time.Parse(DateLayout, p.To)
	if err != nil {
		return ErrBadToDate
	}
	if from.After(to) {
		return ErrDateOrder
	}

	return nil
}

func (p *SearchParams) Sanitize() {
	p.Query = strings.TrimSpace(p.Query)
	p.Domains = strings.TrimSpace(p.Domains)
}

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
