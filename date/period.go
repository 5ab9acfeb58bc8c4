package date

import (
	"fmt"
	"slices"
	"strings"
)

// Period is a calendar period used to bucket days.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// periodNames are the adjective and the noun naming each period.
var periodNames = [...][2]string{
	Daily:     {"daily", "day"},
	Weekly:    {"weekly", "week"},
	Monthly:   {"monthly", "month"},
	Quarterly: {"quarterly", "quarter"},
	Yearly:    {"yearly", "year"},
}

// Periods returns every period, shortest first.
func Periods() []Period { return []Period{Daily, Weekly, Monthly, Quarterly, Yearly} }

func (p Period) String() string {
	if p < 0 || int(p) >= len(periodNames) {
		panic(fmt.Sprintf("unknown period %d", p))
	}
	return periodNames[p][0]
}

// Noun returns the period as a noun: day, week, etc.
func (p Period) Noun() string {
	if p < 0 || int(p) >= len(periodNames) {
		panic(fmt.Sprintf("unknown period %d", p))
	}
	return periodNames[p][1]
}

// ParsePeriod parses a period from its adjective (daily) or its noun (day), ignoring case.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Periods() {
		if slices.Contains(periodNames[p][:], s) {
			return p, nil
		}
	}
	return Daily, fmt.Errorf("unknown period %q", s)
}

// MarshalText encodes the period as its noun.
func (p Period) MarshalText() ([]byte, error) { return []byte(p.Noun()), nil }

func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
