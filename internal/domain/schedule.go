package domain

import "time"

type recalculateOptions struct {
	forcedStart *time.Time
}

type RecalculateOption func(*recalculateOptions)

// WithForcedStart pins the start of the first time slot.
func WithForcedStart(start time.Time) RecalculateOption {
	return func(o *recalculateOptions) {
		o.forcedStart = &start
	}
}

// RecalculateTimeSlots lays the slots out back-to-back in their given order.
// Every slot keeps its duration; the first slot starts at the forced start,
// or at its own start time when none is given.
func RecalculateTimeSlots(slots []TimeSlot, opts ...RecalculateOption) []TimeSlot {
	if len(slots) == 0 {
		return []TimeSlot{}
	}

	var options recalculateOptions
	for _, opt := range opts {
		opt(&options)
	}

	lastEnd := slots[0].StartTime
	if options.forcedStart != nil {
		lastEnd = *options.forcedStart
	}
	lastEnd = lastEnd.Truncate(timestampPrecision)

	result := make([]TimeSlot, len(slots))
	for i, slot := range slots {
		duration := slot.Duration()
		slot.StartTime = lastEnd
		slot.EndTime = lastEnd.Add(duration)
		lastEnd = slot.EndTime
		result[i] = slot
	}

	return result
}
