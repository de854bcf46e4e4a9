/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// unitSeconds maps canonical duration units to their length in seconds.
// Months and years use fixed civil approximations (30 and 365 days).
var unitSeconds = map[string]float64{
	"s":   1,
	"min": 60,
	"h":   3600,
	"d":   86400,
	"w":   604800,
	"mo":  2592000,
	"y":   31536000,
}

// unitsDescending is the canonical unit order, largest first. Used when
// reducing a summed duration back to a single part.
var unitsDescending = []string{"y", "mo", "w", "d", "h", "min", "s"}

// unitAliases maps accepted spellings to canonical units.
var unitAliases = map[string]string{
	"hr":      "h",
	"hour":    "h",
	"hours":   "h",
	"minute":  "min",
	"minutes": "min",
	"day":     "d",
	"days":    "d",
	"week":    "w",
	"weeks":   "w",
	"month":   "mo",
	"months":  "mo",
	"year":    "y",
	"years":   "y",
}

var durationPartPattern = regexp.MustCompile(`(\d+\.?\d*)([a-zA-Z]+)`)

// DurationPart is one amount+unit component of a compound duration.
type DurationPart struct {
	Amount float64
	Unit   string
}

// NewDurationPart normalizes the unit spelling and validates it.
func NewDurationPart(amount float64, unit string) (DurationPart, error) {
	if canonical, ok := unitAliases[unit]; ok {
		unit = canonical
	}
	if _, ok := unitSeconds[unit]; !ok {
		return DurationPart{}, parseErr(ErrInvalidDuration, unit, "invalid duration unit")
	}
	return DurationPart{Amount: amount, Unit: unit}, nil
}

// Seconds returns the part's length in seconds.
func (p DurationPart) Seconds() float64 { return p.Amount * unitSeconds[p.Unit] }

// String renders the part with whole amounts printed as integers.
func (p DurationPart) String() string {
	if p.Amount == math.Trunc(p.Amount) {
		return strconv.FormatInt(int64(p.Amount), 10) + p.Unit
	}
	return strconv.FormatFloat(p.Amount, 'f', -1, 64) + p.Unit
}

// Duration is a compound duration such as "6mo8d3.5s".
type Duration struct {
	Parts []DurationPart
}

// ParseDuration parses a compound duration string such as "3mo", "2w5d" or
// "6mo8d3.5s".
func ParseDuration(s string) (Duration, error) {
	if s == "" {
		return Duration{}, parseErr(ErrInvalidDuration, s, "empty duration string")
	}
	matches := durationPartPattern.FindAllStringSubmatch(s, -1)
	parts := make([]DurationPart, 0, len(matches))
	for _, m := range matches {
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Duration{}, parseErr(ErrInvalidDuration, s, err.Error())
		}
		part, err := NewDurationPart(amount, m[2])
		if err != nil {
			return Duration{}, parseErr(ErrInvalidDuration, s, "invalid duration unit "+strconv.Quote(m[2]))
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return Duration{}, parseErr(ErrInvalidDuration, s, "no duration parts found")
	}
	return Duration{Parts: parts}, nil
}

// MustDuration is a ParseDuration that panics on error, for fixed literals.
func MustDuration(s string) Duration {
	d, err := ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Seconds returns the total duration in seconds.
func (d Duration) Seconds() float64 {
	var total float64
	for _, p := range d.Parts {
		total += p.Seconds()
	}
	return total
}

// IsZero reports whether the duration has no parts.
func (d Duration) IsZero() bool { return len(d.Parts) == 0 }

// String renders the canonical compound form, e.g. "6mo8d3.5s".
func (d Duration) String() string {
	if len(d.Parts) == 0 {
		return "0s"
	}
	var b strings.Builder
	for _, p := range d.Parts {
		b.WriteString(p.String())
	}
	return b.String()
}

// Add sums two durations and reduces the total to the largest unit that
// divides it evenly, falling back to seconds.
func (d Duration) Add(other Duration) Duration {
	total := d.Seconds() + other.Seconds()
	for _, unit := range unitsDescending {
		secs := unitSeconds[unit]
		if total >= secs {
			amount := total / secs
			if amount == math.Trunc(amount) {
				return Duration{Parts: []DurationPart{{Amount: amount, Unit: unit}}}
			}
		}
	}
	return Duration{Parts: []DurationPart{{Amount: total, Unit: "s"}}}
}

// clone returns a deep copy so derived items never share part slices.
func (d Duration) clone() Duration {
	if len(d.Parts) == 0 {
		return Duration{}
	}
	parts := make([]DurationPart, len(d.Parts))
	copy(parts, d.Parts)
	return Duration{Parts: parts}
}
