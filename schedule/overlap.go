// Package schedule holds the interval arithmetic shared by recurring
// availability windows (wall-clock axis) and lesson bookings (absolute time
// axis). All intervals are half-open: [start, end). Two intervals that only
// touch at an endpoint do not overlap, so back-to-back scheduling is legal.
package schedule

import "time"

// Overlaps is the canonical half-open intersection test for wall-clock
// intervals. Identical intervals always overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && aEnd > bStart
}

// OverlapsAt is the same predicate on absolute timestamps, used for lesson
// double-booking detection.
func OverlapsAt(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Contains reports whether [start, end) lies entirely inside the window
// [wStart, wEnd]. Availability is containment, not overlap: a window that
// merely intersects the requested interval does not make it available.
func Contains(wStart, wEnd, start, end TimeOfDay) bool {
	return wStart <= start && wEnd >= end
}

// LessonEnd derives the exclusive end of a lesson's occupied interval.
func LessonEnd(scheduledAt time.Time, durationMinutes int) time.Time {
	return scheduledAt.Add(time.Duration(durationMinutes) * time.Minute)
}
