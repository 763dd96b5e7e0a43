// Package duedate converts due dates to and from the 4-digit "fator de
// vencimento" carried in positions 6-9 of a boleto barcode.
package duedate

import (
	"fmt"
	"strconv"
	"time"

	"fjacquet/boleto-cnab/internal/cnaberror"
	"fjacquet/boleto-cnab/internal/dateutils"
)

// MaxFactor is the largest value the 4-digit field can hold.
const MaxFactor = 9999

// BaseDate is day zero of the factor scheme.
var BaseDate = time.Date(1997, time.October, 7, 0, 0, 0, 0, time.UTC)

// ToFactor returns the number of calendar days between BaseDate and date.
// Time of day and location are ignored.
//
// Past day 9999 (2025-02-21) the count wraps as days % 9999, with 0 mapped to
// 1. This is a placeholder: FEBRABAN reset the base date in 2025 and the
// authoritative rule around the boundary is still to be confirmed.
func ToFactor(date time.Time) (int, error) {
	days := daysSinceBase(date)
	if days < 0 {
		return 0, &cnaberror.InvalidDateError{
			Date:   date.Format("2006-01-02"),
			Reason: "due date precedes factor base date 1997-10-07",
		}
	}
	if days > MaxFactor {
		factor := days % MaxFactor
		if factor == 0 {
			factor = 1
		}
		return factor, nil
	}
	return days, nil
}

// FromFactor maps a factor back to its date in the first cycle (1997-10-07 to
// 2025-02-21). Wrapped factors cannot be told apart from first-cycle ones.
func FromFactor(factor int) (time.Time, error) {
	if factor < 0 || factor > MaxFactor {
		return time.Time{}, cnaberror.Field("due_date_factor", strconv.Itoa(factor),
			fmt.Sprintf("must be between 0 and %d", MaxFactor))
	}
	return BaseDate.AddDate(0, 0, factor), nil
}

func daysSinceBase(date time.Time) int {
	return int(dateutils.CalendarDay(date).Sub(BaseDate).Hours() / 24)
}
