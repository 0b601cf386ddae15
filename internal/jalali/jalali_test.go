package jalali

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	// Month-group day caps: 1–6 → 31, 7–11 → 30, 12 → 29 (no leap exception).
	assert.True(t, Validate("14030631"))
	assert.True(t, Validate("14030730"))
	assert.True(t, Validate("14031229"))

	assert.False(t, Validate("14031301")) // month 13
	assert.False(t, Validate("14031230")) // month 12 capped at 29
	assert.False(t, Validate("14030731")) // month 7 capped at 30
	assert.False(t, Validate("14030600")) // day 0
	assert.False(t, Validate("12991201")) // below year floor
	assert.False(t, Validate("15010101")) // above year ceiling
	assert.False(t, Validate("1403061"))  // 7 chars
	assert.False(t, Validate("140306x1")) // non-digit
}

func TestDisplayRoundTrip(t *testing.T) {
	keys := []DateKey{"14030101", "14030631", "14031229", "13000715", "15001101"}
	for _, key := range keys {
		disp := ToDisplay(key)
		back, err := ParseDisplay(disp)
		require.NoError(t, err, "key %s", key)
		assert.Equal(t, key, back)
	}
	assert.Equal(t, "1403/06/31", ToDisplay("14030631"))
}

func TestParseDisplayLocalDigits(t *testing.T) {
	key, err := ParseDisplay("۱۴۰۳/۰۶/۳۱")
	require.NoError(t, err)
	assert.Equal(t, DateKey("14030631"), key)
}

func TestParseDisplayRejectsInvalid(t *testing.T) {
	_, err := ParseDisplay("1403/13/01")
	assert.Error(t, err)
	_, err = ParseDisplay("not a date")
	assert.Error(t, err)
}

func TestDayOfWeekIsPure(t *testing.T) {
	first, err := DayOfWeek("14030615")
	require.NoError(t, err)
	second, err := DayOfWeek("14030615")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0)
	assert.Less(t, first, 7)
}

func TestDayOfWeekSaturdayOrigin(t *testing.T) {
	// 1403/06/15 maps approximately to Gregorian 2024-09-15, a Sunday,
	// so the Saturday-origin index is 1.
	dow, err := DayOfWeek("14030615")
	require.NoError(t, err)
	assert.Equal(t, 1, dow)

	// Consecutive keys advance the weekday by one modulo 7.
	next, err := DayOfWeek("14030616")
	require.NoError(t, err)
	assert.Equal(t, (dow+1)%7, next)
}

func TestToUnixSecondsOrdering(t *testing.T) {
	// The approximate mapping must stay monotonic within a month and across
	// the month-9 → month-10 year borrow.
	earlier, err := ToUnixSeconds("14030901")
	require.NoError(t, err)
	later, err := ToUnixSeconds("14031001")
	require.NoError(t, err)
	assert.Less(t, earlier, later)

	a, _ := ToUnixSeconds("14030510")
	b, _ := ToUnixSeconds("14030511")
	assert.Equal(t, int64(24*60*60), b-a)
}

func TestApproxMappingShift(t *testing.T) {
	// Months 1–9: same year, +3 months. 1403/01/01 → 2024-04-01.
	ts, err := ToUnixSeconds("14030101")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC).Unix(), ts)

	// Months 10–12: next year, −9 months. 1403/10/01 → 2025-01-01.
	ts, err = ToUnixSeconds("14031001")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix(), ts)
}

func TestFromTime(t *testing.T) {
	// 2024-03-20 is 1403/01/01 (Nowruz 1403).
	key := FromTime(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, DateKey("14030101"), key)

	// 2025-03-20 is 1403/12/30 — 1403 is a leap year in the real calendar,
	// which FromTime handles even though Validate deliberately does not.
	key = FromTime(time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, DateKey("14031230"), key)
}

func TestTodayIsValidOrLeapDay(t *testing.T) {
	key := Today()
	y, m, d, err := Parts(key)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, y, MinYear)
	assert.LessOrEqual(t, m, 12)
	// Day 30 of month 12 only fails the simplified rule on leap years.
	if !(m == 12 && d == 30) {
		assert.True(t, Validate(key))
	}
}

func TestDigitTranscoding(t *testing.T) {
	assert.Equal(t, "۱۴۰۳۰۶۳۱", ToLocalDigits("14030631"))
	assert.Equal(t, "14030631", ToASCIIDigits("۱۴۰۳۰۶۳۱"))
	// Arabic-Indic alternate glyph set tolerated on input.
	assert.Equal(t, "14030631", ToASCIIDigits("١٤٠٣٠٦٣١"))
	// Mixed content: non-digits pass through.
	assert.Equal(t, "مبلغ ۵۰۰ ریال", ToLocalDigits("مبلغ 500 ریال"))
	assert.Equal(t, "abc", ToASCIIDigits("abc"))
	// Round trip.
	assert.Equal(t, "409822", ToASCIIDigits(ToLocalDigits("409822")))
}

func TestMonthGrid(t *testing.T) {
	cells, err := MonthGrid(1403, 7)
	require.NoError(t, err)
	require.Len(t, cells, 42)

	current := 0
	for _, c := range cells {
		if c.CurrentMonth {
			current++
		}
	}
	assert.Equal(t, 30, current)

	// First current-month cell sits at the column of the month's weekday.
	firstDow, err := DayOfWeek(Key(1403, 7, 1))
	require.NoError(t, err)
	assert.True(t, cells[firstDow].CurrentMonth)
	assert.Equal(t, 1, cells[firstDow].Day)
	if firstDow > 0 {
		assert.False(t, cells[firstDow-1].CurrentMonth)
	}

	// Trailing pad continues into the next month starting at day 1.
	last := cells[41]
	assert.False(t, last.CurrentMonth)
}

func TestMonthGridYearEdges(t *testing.T) {
	// Month 1 pads its head from month 12 of the previous year.
	cells, err := MonthGrid(1403, 1)
	require.NoError(t, err)
	for _, c := range cells {
		if c.CurrentMonth {
			break
		}
		y, m, _, err := Parts(c.Key)
		require.NoError(t, err)
		assert.Equal(t, 1402, y)
		assert.Equal(t, 12, m)
	}

	// Month 12 pads its tail from month 1 of the next year.
	cells, err = MonthGrid(1403, 12)
	require.NoError(t, err)
	tail := cells[41]
	y, m, _, err := Parts(tail.Key)
	require.NoError(t, err)
	assert.Equal(t, 1404, y)
	assert.Equal(t, 1, m)

	_, err = MonthGrid(1403, 13)
	assert.Error(t, err)
}
