package urgency_test

import (
	"testing"
	"time"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/urgency"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Given a reference time mid-tournament", t, func() {
		rome, err := time.LoadLocation("Europe/Rome")
		So(err, ShouldBeNil)
		now := time.Date(2026, time.February, 15, 12, 0, 0, 0, rome)

		Convey("A zero next-event time means nothing left to watch", func() {
			So(urgency.Classify(time.Time{}, now), ShouldEqual, model.UrgencyNone)
		})

		Convey("The same calendar date is today, even late in the evening", func() {
			tonight := time.Date(2026, time.February, 15, 23, 30, 0, 0, rome)
			So(urgency.Classify(tonight, now), ShouldEqual, model.UrgencyToday)
		})

		Convey("An event earlier the same day is still today", func() {
			morning := time.Date(2026, time.February, 15, 8, 0, 0, 0, rome)
			So(urgency.Classify(morning, now), ShouldEqual, model.UrgencyToday)
		})

		Convey("Tomorrow falls in this week", func() {
			tomorrow := now.Add(24 * time.Hour)
			So(urgency.Classify(tomorrow, now), ShouldEqual, model.UrgencyThisWeek)
		})

		Convey("Exactly seven days out is the last moment of this week", func() {
			edge := now.Add(urgency.Week)
			So(urgency.Classify(edge, now), ShouldEqual, model.UrgencyThisWeek)
		})

		Convey("Just past seven days is later", func() {
			past := now.Add(urgency.Week + time.Minute)
			So(urgency.Classify(past, now), ShouldEqual, model.UrgencyLater)
		})

		Convey("Urgency ranks order today before this week before later before none", func() {
			So(model.UrgencyToday.Rank(), ShouldBeLessThan, model.UrgencyThisWeek.Rank())
			So(model.UrgencyThisWeek.Rank(), ShouldBeLessThan, model.UrgencyLater.Rank())
			So(model.UrgencyLater.Rank(), ShouldBeLessThan, model.UrgencyNone.Rank())
		})
	})
}
