package usecases

import (
	"time"

	"task-server/apperrors"
)

const (
	FilterToday     = "today"
	FilterThisWeek  = "thisWeek"
	FilterThisMonth = "thisMonth"
)

// DateRange is a closed interval [Start, End].
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ComputeRange returns the due-date window for filter relative to now, in
// now's location.
//
// today spans the whole calendar day. thisWeek starts on the most recent
// Sunday and ends six days later; both ends keep now's time of day. thisMonth
// runs from midnight on the 1st to midnight on the last day of the month.
func ComputeRange(filter string, now time.Time) (DateRange, error) {
	y, m, d := now.Date()
	loc := now.Location()

	switch filter {
	case FilterToday:
		return DateRange{
			Start: time.Date(y, m, d, 0, 0, 0, 0, loc),
			End:   time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc),
		}, nil
	case FilterThisWeek:
		start := now.AddDate(0, 0, -int(now.Weekday()))
		return DateRange{Start: start, End: start.AddDate(0, 0, 6)}, nil
	case FilterThisMonth:
		return DateRange{
			Start: time.Date(y, m, 1, 0, 0, 0, 0, loc),
			// day 0 of next month is the last day of this one
			End: time.Date(y, m+1, 0, 0, 0, 0, 0, loc),
		}, nil
	default:
		return DateRange{}, apperrors.InvalidArgument("Invalid filter")
	}
}
