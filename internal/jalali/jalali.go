// Package jalali implements the Jalali (Solar Hijri) date layer used by the
// whole domain. Every stored and transmitted date is an 8-digit ASCII key
// "YYYYMMDD" in this calendar.
//
// Two deliberate legacy-compatibility quirks live here and must not be
// "fixed" without a data migration:
//
//   - Validate caps month 12 at 29 days with no leap-year exception
//     (months 1–6 → 31, months 7–11 → 30, month 12 → 29).
//   - DayOfWeek and ToUnixSeconds map a key to an approximate Gregorian date
//     (year+621; months 1–9 shift +3 months same year, months 10–12 shift
//     −9 months into the next year) instead of running an exact calendrical
//     transform. Stored timestamps were produced with this mapping.
package jalali

import (
	"fmt"
	"time"
)

// DateKey is an 8-digit Jalali date "YYYYMMDD".
type DateKey string

const (
	// MinYear and MaxYear bound the plausible range of domain dates.
	MinYear = 1300
	MaxYear = 1500
)

// Validate reports whether key is a well-formed 8-digit Jalali date within
// the simplified month-group day bounds.
func Validate(key DateKey) bool {
	y, m, d, err := split(key)
	if err != nil {
		return false
	}
	if y < MinYear || y > MaxYear {
		return false
	}
	if m < 1 || m > 12 {
		return false
	}
	return d >= 1 && d <= DaysInMonth(m)
}

// DaysInMonth returns the day cap for a Jalali month under the simplified
// rule (no leap exception for month 12).
func DaysInMonth(month int) int {
	switch {
	case month >= 1 && month <= 6:
		return 31
	case month >= 7 && month <= 11:
		return 30
	default:
		return 29
	}
}

// ToDisplay renders a key as "YYYY/MM/DD". The input is not validated;
// call Validate first for untrusted keys.
func ToDisplay(key DateKey) string {
	y, m, d, err := split(key)
	if err != nil {
		return string(key)
	}
	return fmt.Sprintf("%04d/%02d/%02d", y, m, d)
}

// ParseDisplay converts "YYYY/MM/DD" back to a DateKey. It tolerates local
// numeral glyphs on input and is the exact inverse of ToDisplay for any key
// that passes Validate.
func ParseDisplay(s string) (DateKey, error) {
	s = ToASCIIDigits(s)
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%d/%d/%d", &y, &m, &d); err != nil {
		return "", fmt.Errorf("jalali: malformed display date %q: %w", s, err)
	}
	key := Key(y, m, d)
	if !Validate(key) {
		return "", fmt.Errorf("jalali: invalid date %q", s)
	}
	return key, nil
}

// Key builds a DateKey from its parts. No validation is performed.
func Key(year, month, day int) DateKey {
	return DateKey(fmt.Sprintf("%04d%02d%02d", year, month, day))
}

// Parts splits a key into year, month, day. Returns an error for keys that
// are not 8 ASCII digits.
func Parts(key DateKey) (year, month, day int, err error) {
	return split(key)
}

// Today returns the current date as a Jalali key. Unlike DayOfWeek, this uses
// an exact Gregorian→Jalali conversion: "now" has no stored legacy value to
// stay compatible with.
func Today() DateKey {
	return FromTime(time.Now())
}

// FromTime converts a wall-clock time to a Jalali key.
func FromTime(t time.Time) DateKey {
	gy, gm, gd := t.Date()
	jy, jm, jd := gregorianToJalali(gy, int(gm), gd)
	return Key(jy, jm, jd)
}

// DayOfWeek returns 0..6 with 0 = Saturday, using the approximate Gregorian
// mapping described in the package comment. Pure: the same key always yields
// the same result.
func DayOfWeek(key DateKey) (int, error) {
	t, err := approxGregorian(key)
	if err != nil {
		return 0, err
	}
	// time.Weekday: Sunday=0 … Saturday=6. Shift so Saturday=0.
	return (int(t.Weekday()) + 1) % 7, nil
}

// ToUnixSeconds returns a coarse day-granularity timestamp for the key via
// the approximate mapping. Only suitable for chronological ordering.
func ToUnixSeconds(key DateKey) (int64, error) {
	t, err := approxGregorian(key)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}

// approxGregorian applies the legacy shift: gy = y+621, months 1–9 keep the
// year and add 3 months, months 10–12 borrow from the next year. Out-of-range
// days (e.g. day 31 in a 30-day Gregorian month) normalize forward, matching
// the behavior of the Date constructor the stored values came from.
func approxGregorian(key DateKey) (time.Time, error) {
	y, m, d, err := split(key)
	if err != nil {
		return time.Time{}, err
	}
	gy := y + 621
	var gm int
	if m <= 9 {
		gm = m + 3
	} else {
		gm = m - 9
		gy++
	}
	return time.Date(gy, time.Month(gm), d, 0, 0, 0, 0, time.UTC), nil
}

func split(key DateKey) (int, int, int, error) {
	if len(key) != 8 {
		return 0, 0, 0, fmt.Errorf("jalali: key %q is not 8 digits", key)
	}
	n := 0
	for _, c := range []byte(key) {
		if c < '0' || c > '9' {
			return 0, 0, 0, fmt.Errorf("jalali: key %q contains non-digit", key)
		}
		n = n*10 + int(c-'0')
	}
	return n / 10000, (n / 100) % 100, n % 100, nil
}

// gregorianToJalali is the standard civil conversion (used only by Today /
// FromTime, where exactness is wanted).
func gregorianToJalali(gy, gm, gd int) (int, int, int) {
	gdm := []int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}
	gy2 := gy - 1600
	days := 365*gy2 + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 + gd - 1 + gdm[gm-1]
	if gm > 2 && isGregorianLeap(gy) {
		days++
	}
	days -= 79

	jnp := days / 12053 // 33-year cycles have 12053 days
	days %= 12053
	jy := 979 + 33*jnp + 4*(days/1461)
	days %= 1461
	if days >= 366 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}

	var jm, jd int
	if days < 186 {
		jm = 1 + days/31
		jd = 1 + days%31
	} else {
		jm = 7 + (days-186)/30
		jd = 1 + (days-186)%30
	}
	return jy, jm, jd
}

func isGregorianLeap(y int) bool {
	return (y%4 == 0 && y%100 != 0) || y%400 == 0
}
