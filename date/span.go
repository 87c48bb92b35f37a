package date

import "fmt"

// Span is a calendar-aware distance between two dates, expressed the way a person
// counts it: whole years, then whole months, then remaining days.
type Span struct {
	Years, Months, Days int
}

// Between returns the Span separating a and b. It is symmetric: Between(a, b) ==
// Between(b, a).
func Between(a, b Date) Span {
	if b.Before(a) {
		a, b = b, a
	}
	months := (b.y-a.y)*12 + int(b.m-a.m)
	anchor := a.AddMonths(months)
	if anchor.After(b) {
		months--
		anchor = a.AddMonths(months)
	}
	return Span{
		Years:  months / 12,
		Months: months % 12,
		Days:   anchor.days(b),
	}
}

// IsZero reports whether the span is empty, i.e. both dates are the same day.
func (s Span) IsZero() bool { return s == Span{} }

// Exceeds reports whether the span is strictly longer than the given number of
// months. Any whole year always exceeds.
func (s Span) Exceeds(months int) bool {
	switch {
	case s.Years > 0:
		return true
	case s.Months != months:
		return s.Months > months
	default:
		return s.Days > 0
	}
}

func (s Span) String() string {
	return fmt.Sprintf("%dy%dm%dd", s.Years, s.Months, s.Days)
}
