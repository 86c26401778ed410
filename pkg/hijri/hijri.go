// Package hijri converts tabular Islamic (Hijri) calendar dates to Gregorian
// dates using closed-form arithmetic. The tabular calendar drifts up to one
// day from the observed Umm al-Qura calendar, so converted dates are accurate
// to ±1 day and must not be treated as authoritative for legal deadline
// computation without a tolerance margin.
package hijri

import (
	"regexp"
	"strconv"
	"time"

	"github.com/tanafus/engine/pkg/artext"
)

// Year bounds accepted by ParseDate. Tender documents fall well inside this
// window; anything outside it is treated as a misparse.
const (
	MinYear = 1400
	MaxYear = 1500
)

// ToGregorian converts a tabular Hijri date to a Gregorian date at midnight
// UTC. The conversion runs through a Julian day number intermediate and a
// fixed Gregorian decomposition; no lookup tables, no external state.
func ToGregorian(day, month, year int) time.Time {
	jd := (11*year+3)/30 + 354*year + 30*month - (month-1)/2 + day + 1948440 - 385

	l := jd + 68569
	n := 4 * l / 146097
	l = l - (146097*n+3)/4
	i := 4000 * (l + 1) / 1461001
	l = l - 1461*i/4 + 31
	j := 80 * l / 2447
	d := l - 2447*j/80
	l = j / 11
	m := j + 2 - 12*l
	y := 100*(n-49) + i + l

	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

var (
	// day/month/year, e.g. 15/01/1446 or ١٥-١-١٤٤٦هـ
	dmyPattern = regexp.MustCompile(`(\d{1,2})\s*[/\-]\s*(\d{1,2})\s*[/\-]\s*(1[45]\d{2})`)
	// year/month/day, e.g. 1446/01/15
	ymdPattern = regexp.MustCompile(`(1[45]\d{2})\s*[/\-]\s*(\d{1,2})\s*[/\-]\s*(\d{1,2})`)
)

// ParseDate scans s for a Hijri date in day/month/year or year/month/day
// order, with Arabic-Indic digits accepted. The year must lie in
// [MinYear, MaxYear], the month in [1,12], and the day in [1,30]. Returns
// ok=false for unparseable or out-of-range input; never panics.
func ParseDate(s string) (time.Time, bool) {
	s = artext.FoldDigits(s)

	if m := ymdPattern.FindStringSubmatch(s); m != nil {
		if t, ok := convert(m[3], m[2], m[1]); ok {
			return t, true
		}
	}
	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		if t, ok := convert(m[1], m[2], m[3]); ok {
			return t, true
		}
	}

	return time.Time{}, false
}

func convert(dayStr, monthStr, yearStr string) (time.Time, bool) {
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}

	if year < MinYear || year > MaxYear {
		return time.Time{}, false
	}
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	if day < 1 || day > 30 {
		return time.Time{}, false
	}

	return ToGregorian(day, month, year), true
}
