package domain

import "time"

// Interval полуоткрытый интервал занятости [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

// Overlaps пересечение полуоткрытых интервалов.
// Касание границ (a.End == b.Start) пересечением не считается
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
