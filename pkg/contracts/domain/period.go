package domain

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrInvalidPeriod is returned when a period code is not six digits.
var ErrInvalidPeriod = errors.New("invalid period code")

// Period is a six-digit academic-year code such as "201718" (2017/18).
type Period string

// ParsePeriod validates s as a period code. Only the shape is checked here;
// whether the period exists in a dataset is the caller's concern.
func ParsePeriod(s string) (Period, error) {
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
		}
	}
	return Period(s), nil
}

// StartYear returns the calendar year the academic year starts in.
func (p Period) StartYear() int {
	if len(p) < 4 {
		return 0
	}
	y, err := strconv.Atoi(string(p[:4]))
	if err != nil {
		return 0
	}
	return y
}

// Label renders the period the way the dashboard shows it, e.g. "2017/18".
func (p Period) Label() string {
	if len(p) != 6 {
		return string(p)
	}
	return string(p[:4]) + "/" + string(p[4:])
}

func (p Period) String() string { return string(p) }

// Before reports whether p starts earlier than q. Ties fall back to the code
// so that the ordering is total.
func (p Period) Before(q Period) bool {
	if a, b := p.StartYear(), q.StartYear(); a != b {
		return a < b
	}
	return p < q
}

// SortPeriods sorts ps in place by start year.
func SortPeriods(ps []Period) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Before(ps[j]) })
}
