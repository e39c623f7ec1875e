package overtime

import "time"

// NetDuration is the payable part of a record.
//
// Weekday records that are not forced lose the time spent inside the work
// window, except for the part of that time that falls inside the break window:
// working through the break is still overtime. Every other record is paid in
// full. The result is never negative.
func NetDuration(r Record, s Schedule) time.Duration {
	raw := r.Duration()
	if r.Category != Weekday || r.ForceFullCalculation {
		return raw
	}

	day := r.Day()
	workStart, workEnd := s.workWindow(day)
	inWorkStart, inWorkEnd, work := overlap(r.Start, r.End, workStart, workEnd)
	if work == 0 {
		return raw
	}

	breakStart, breakEnd := s.breakWindow(day)
	_, _, breakInWork := overlap(inWorkStart, inWorkEnd, breakStart, breakEnd)

	return max(raw-(work-breakInWork), 0)
}

// NetHours is NetDuration in fractional hours.
func NetHours(r Record, s Schedule) float64 {
	return NetDuration(r, s).Hours()
}

// overlap intersects [aStart, aEnd) with [bStart, bEnd). Empty or inverted
// intervals give a zero length.
func overlap(aStart, aEnd, bStart, bEnd time.Time) (time.Time, time.Time, time.Duration) {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return start, start, 0
	}
	return start, end, end.Sub(start)
}
