package jalali

import "fmt"

// GridCell is one cell of a 6×7 month grid for the date-picker UI.
type GridCell struct {
	Key          DateKey `json:"key"`
	Day          int     `json:"day"`
	CurrentMonth bool    `json:"current_month"`
}

// gridCells is always 6 rows × 7 columns.
const gridCells = 42

// MonthGrid returns a fixed 42-cell grid for (year, month): leading cells
// hold the tail of the previous month, trailing cells the head of the next
// month. Columns start at Saturday (weekday 0). Side-effect free.
func MonthGrid(year, month int) ([]GridCell, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("jalali: month %d out of range", month)
	}
	if year < MinYear || year > MaxYear {
		return nil, fmt.Errorf("jalali: year %d out of range", year)
	}

	firstWeekday, err := DayOfWeek(Key(year, month, 1))
	if err != nil {
		return nil, err
	}

	prevYear, prevMonth := year, month-1
	if prevMonth == 0 {
		prevYear, prevMonth = year-1, 12
	}
	nextYear, nextMonth := year, month+1
	if nextMonth == 13 {
		nextYear, nextMonth = year+1, 1
	}

	cells := make([]GridCell, 0, gridCells)

	prevDays := DaysInMonth(prevMonth)
	for i := 0; i < firstWeekday; i++ {
		day := prevDays - firstWeekday + 1 + i
		cells = append(cells, GridCell{Key: Key(prevYear, prevMonth, day), Day: day})
	}
	for day := 1; day <= DaysInMonth(month); day++ {
		cells = append(cells, GridCell{Key: Key(year, month, day), Day: day, CurrentMonth: true})
	}
	for day := 1; len(cells) < gridCells; day++ {
		cells = append(cells, GridCell{Key: Key(nextYear, nextMonth, day), Day: day})
	}
	return cells, nil
}
