package market

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/fxsmile/utils"
)

// Tenor is an expiry label ("1W", "3M", "1Y") paired with its year fraction.
// Tenors are ordered by Years.
type Tenor struct {
	Label string
	Years float64
}

// ParseTenor converts tenor strings like "1W", "3M", "10Y" to a Tenor.
// Week and day labels are converted on an ACT/365F basis, month labels as n/12.
func ParseTenor(label string) (Tenor, error) {
	l := strings.TrimSpace(strings.ToUpper(label))
	if len(l) < 2 {
		return Tenor{}, fmt.Errorf("ParseTenor: malformed tenor %q", label)
	}
	n, err := strconv.Atoi(l[:len(l)-1])
	if err != nil || n <= 0 {
		return Tenor{}, fmt.Errorf("ParseTenor: malformed tenor %q", label)
	}
	switch l[len(l)-1] {
	case 'D':
		return Tenor{Label: l, Years: float64(n) / 365.0}, nil
	case 'W':
		return Tenor{Label: l, Years: float64(n) * 7.0 / 365.0}, nil
	case 'M':
		return Tenor{Label: l, Years: float64(n) / 12.0}, nil
	case 'Y':
		return Tenor{Label: l, Years: float64(n)}, nil
	}
	return Tenor{}, fmt.Errorf("ParseTenor: unknown tenor unit in %q", label)
}

// MustTenor is ParseTenor for static labels; it panics on malformed input.
func MustTenor(label string) Tenor {
	t, err := ParseTenor(label)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTenors converts a slice of labels, preserving order.
func ParseTenors(labels []string) ([]Tenor, error) {
	out := make([]Tenor, 0, len(labels))
	for _, l := range labels {
		t, err := ParseTenor(l)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// TenorBetween builds a dated tenor from an as-of date and an expiry date on an
// ACT/365F basis. The label carries the expiry date for diagnostics.
func TenorBetween(asof, expiry time.Time) (Tenor, error) {
	if !expiry.After(asof) {
		return Tenor{}, fmt.Errorf("TenorBetween: expiry %s not after asof %s",
			expiry.Format("2006-01-02"), asof.Format("2006-01-02"))
	}
	return Tenor{
		Label: expiry.Format("2006-01-02"),
		Years: utils.YearFraction(asof, expiry, "ACT/365F"),
	}, nil
}

// SortTenors sorts tenors ascending by time to expiry.
func SortTenors(ts []Tenor) {
	sort.Slice(ts, func(i, j int) bool {
		return ts[i].Years < ts[j].Years
	})
}

func (t Tenor) String() string {
	return t.Label
}
