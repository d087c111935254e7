package spclient

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// weekday bitmask order used by RecurrenceDays
var recurrenceWeekdays = []rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// ExceptionOccurrences expands a recurring calendar exception into the
// concrete dates on which it applies, bounded by [rangeStart, rangeEnd].
// Non-recurring exceptions yield their start date when it falls in range.
func ExceptionOccurrences(exc CalendarException, rangeStart, rangeEnd time.Time) ([]time.Time, error) {
	if rangeEnd.Before(rangeStart) {
		return nil, fmt.Errorf("invalid range: end %s before start %s", rangeEnd, rangeStart)
	}

	interval := exc.RecurrenceFrequency
	if interval <= 0 {
		interval = 1
	}

	option := rrule.ROption{
		Interval: interval,
		Dtstart:  exc.Start,
		Until:    exc.Finish,
	}

	switch exc.RecurrenceType {
	case RecurrenceDaily:
		option.Freq = rrule.DAILY
	case RecurrenceWeekly:
		option.Freq = rrule.WEEKLY
		for i, day := range recurrenceWeekdays {
			if exc.RecurrenceDays&(1<<i) != 0 {
				option.Byweekday = append(option.Byweekday, day)
			}
		}
	case RecurrenceMonthly:
		option.Freq = rrule.MONTHLY
		if exc.RecurrenceMonthDay > 0 {
			option.Bymonthday = []int{exc.RecurrenceMonthDay}
		}
	case RecurrenceYearly:
		option.Freq = rrule.YEARLY
		if exc.RecurrenceMonth > 0 {
			option.Bymonth = []int{exc.RecurrenceMonth}
		}
		if exc.RecurrenceMonthDay > 0 {
			option.Bymonthday = []int{exc.RecurrenceMonthDay}
		}
	default:
		return nil, fmt.Errorf("unknown recurrence type %d", exc.RecurrenceType)
	}

	rule, err := rrule.NewRRule(option)
	if err != nil {
		return nil, fmt.Errorf("failed to build recurrence rule for %q: %w", exc.Name, err)
	}
	return rule.Between(rangeStart, rangeEnd, true), nil
}
