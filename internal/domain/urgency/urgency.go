// Package urgency buckets how soon a category's next unresolved event
// occurs. Both timestamps must already be localized to the evaluation's
// reference zone; no zone conversion happens here.
package urgency

import (
	"time"

	"github.com/okian/podium/internal/domain/model"
)

// Week is the this_week window measured from now.
const Week = 7 * 24 * time.Hour

// Classify returns the urgency of the next event relative to now. A zero
// next-event time means the category has nothing left to watch.
func Classify(nextEvent, now time.Time) model.Urgency {
	if nextEvent.IsZero() {
		return model.UrgencyNone
	}
	ey, em, ed := nextEvent.Date()
	ny, nm, nd := now.Date()
	if ey == ny && em == nm && ed == nd {
		return model.UrgencyToday
	}
	if !nextEvent.After(now.Add(Week)) {
		return model.UrgencyThisWeek
	}
	return model.UrgencyLater
}
