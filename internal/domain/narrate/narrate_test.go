package narrate_test

import (
	"testing"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/narrate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCountryScenarios(t *testing.T) {
	cat := model.Category{ID: "alpine_skiing_men", Kind: model.KindStandard, EventCount: 5}
	pred := func(pick string) model.Prediction {
		return model.Prediction{CategoryID: cat.ID, Pick: pick}
	}

	Convey("Given a category where nothing has been decided", t, func() {
		standing := model.CategoryStanding{CategoryID: cat.ID, GoldCounts: map[string]int{}, Remaining: 5}

		Convey("Then the line simply states the rooting interest", func() {
			lines := narrate.Scenarios(model.StatusBehindPossible, standing, pred("Norway"), cat)
			So(lines, ShouldResemble, []string{"Rooting for Norway to win gold medals."})
		})
	})

	Convey("Given a sole leader ahead of one runner-up", t, func() {
		standing := model.CategoryStanding{
			CategoryID: cat.ID,
			GoldCounts: map[string]int{"Switzerland": 3, "Norway": 1},
			Leaders:    []string{"Switzerland"},
			Remaining:  3,
			Completed:  4,
		}

		Convey("When the runner-up can still catch up, the magic number is named", func() {
			lines := narrate.Scenarios(model.StatusLeading, standing, pred("Switzerland"), cat)
			So(lines, ShouldResemble, []string{"Leading by 2 over Norway. Win 1 more gold to clinch."})
		})

		Convey("When the lead exceeds the remaining events, the category is clinched", func() {
			standing.Remaining = 1
			lines := narrate.Scenarios(model.StatusLeading, standing, pred("Switzerland"), cat)
			So(lines, ShouldResemble, []string{"Clinched: nobody can catch Switzerland in this category."})
		})

		Convey("When everything is complete but not yet official", func() {
			standing.Remaining = 0
			lines := narrate.Scenarios(model.StatusLeading, standing, pred("Switzerland"), cat)
			So(lines, ShouldResemble, []string{"Leading by 2 with all events complete: waiting for the official result."})
		})
	})

	Convey("Given a narrow lead where one win clinches", t, func() {
		standing := model.CategoryStanding{
			CategoryID: cat.ID,
			GoldCounts: map[string]int{"Switzerland": 2, "Norway": 1},
			Leaders:    []string{"Switzerland"},
			Remaining:  2,
			Completed:  3,
		}

		Convey("Then the magic number line comes back", func() {
			lines := narrate.Scenarios(model.StatusLeading, standing, pred("Switzerland"), cat)
			So(lines, ShouldResemble, []string{"Leading by 1 over Norway. Win 1 more gold to clinch."})
		})
	})

	Convey("Given the pick is the only country with golds", t, func() {
		standing := model.CategoryStanding{
			CategoryID: cat.ID,
			GoldCounts: map[string]int{"Switzerland": 2},
			Leaders:    []string{"Switzerland"},
			Remaining:  3,
			Completed:  2,
		}

		Convey("Then the line names only the clinching count", func() {
			lines := narrate.Scenarios(model.StatusLeading, standing, pred("Switzerland"), cat)
			So(lines, ShouldResemble, []string{"Leading: only country with golds so far. Win 1 more gold to clinch."})
		})
	})

	Convey("Given tied co-leaders", t, func() {
		standing := model.CategoryStanding{
			CategoryID: cat.ID,
			GoldCounts: map[string]int{"Norway": 2, "Sweden": 2},
			Leaders:    []string{"Norway", "Sweden"},
			Remaining:  1,
			Completed:  4,
		}

		Convey("Then the tied line names the other leader", func() {
			lines := narrate.Scenarios(model.StatusTied, standing, pred("Norway"), cat)
			So(lines, ShouldResemble, []string{"Tied for the lead with Sweden: pull ahead or hold the tie."})
		})

		Convey("Then a terminal tie reads as a shared win", func() {
			standing.Remaining = 0
			lines := narrate.Scenarios(model.StatusTied, standing, pred("Sweden"), cat)
			So(lines, ShouldResemble, []string{"Tied for the lead with Norway: a shared win."})
		})
	})

	Convey("Given a pick trailing the leader", t, func() {
		standing := model.CategoryStanding{
			CategoryID: cat.ID,
			GoldCounts: map[string]int{"Switzerland": 3, "Norway": 1},
			Leaders:    []string{"Switzerland"},
			Remaining:  3,
			Completed:  2,
		}

		Convey("Then the gap line names the leader", func() {
			lines := narrate.Scenarios(model.StatusBehindPossible, standing, pred("Norway"), cat)
			So(lines, ShouldResemble, []string{"Norway needs 2 more golds than Switzerland."})
		})

		Convey("When every remaining event is needed, a warning is added", func() {
			standing.Remaining = 2
			lines := narrate.Scenarios(model.StatusBehindPossible, standing, pred("Norway"), cat)
			So(lines, ShouldHaveLength, 2)
			So(lines[1], ShouldEqual, "Only 2 events left: near-perfect results needed.")
		})

		Convey("When the leaders are tied, the gap line says so", func() {
			standing.GoldCounts["Austria"] = 3
			standing.Leaders = []string{"Switzerland", "Austria"}
			lines := narrate.Scenarios(model.StatusBehindPossible, standing, pred("Norway"), cat)
			So(lines[0], ShouldEqual, "Norway needs 2 more golds than Switzerland (tied with Austria).")
		})
	})

	Convey("Given an eliminated pick", t, func() {
		standing := model.CategoryStanding{
			CategoryID: cat.ID,
			GoldCounts: map[string]int{"Switzerland": 4, "Norway": 1},
			Leaders:    []string{"Switzerland"},
			Remaining:  1,
			Completed:  4,
		}

		Convey("Then the line spells out the arithmetic", func() {
			lines := narrate.Scenarios(model.StatusEliminated, standing, pred("Norway"), cat)
			So(lines, ShouldResemble, []string{"Mathematically eliminated: Switzerland leads by 3 with 1 events left."})
		})
	})
}

func TestPropositionScenarios(t *testing.T) {
	Convey("Given a yes/no proposition", t, func() {
		cat := model.Category{ID: "usa_medal_record", Kind: model.KindPropositionYesNo}
		pending := model.CategoryStanding{CategoryID: cat.ID, Remaining: 1}

		Convey("Then pending picks read as rooting lines", func() {
			yes := narrate.Scenarios(model.StatusPropositionPending, pending, model.Prediction{Pick: "yes"}, cat)
			So(yes, ShouldResemble, []string{"Rooting for this to happen."})

			no := narrate.Scenarios(model.StatusPropositionPending, pending, model.Prediction{Pick: "no"}, cat)
			So(no, ShouldResemble, []string{"Rooting for this not to happen."})
		})

		Convey("Then resolved picks report the outcome", func() {
			resolved := model.CategoryStanding{CategoryID: cat.ID, PropResolved: true, PropOutcome: "Yes"}
			won := narrate.Scenarios(model.StatusLeading, resolved, model.Prediction{Pick: "yes"}, cat)
			So(won, ShouldResemble, []string{"Called it: the outcome was yes."})

			lost := narrate.Scenarios(model.StatusEliminated, resolved, model.Prediction{Pick: "no"}, cat)
			So(lost, ShouldResemble, []string{"Missed: the outcome was yes."})
		})
	})

	Convey("Given a numeric proposition", t, func() {
		cat := model.Category{ID: "total_ties", Kind: model.KindPropositionNumeric}

		Convey("Then the pending line repeats the pick", func() {
			lines := narrate.Scenarios(model.StatusPropositionPending, model.CategoryStanding{Remaining: 1}, model.Prediction{Pick: "7"}, cat)
			So(lines, ShouldResemble, []string{"Rooting for the final number to land on exactly 7."})
		})

		Convey("Then resolved lines report the number", func() {
			resolved := model.CategoryStanding{PropResolved: true, PropOutcome: "7"}
			So(narrate.Scenarios(model.StatusLeading, resolved, model.Prediction{Pick: "7"}, cat),
				ShouldResemble, []string{"Exactly right: the final number was 7."})
			So(narrate.Scenarios(model.StatusEliminated, resolved, model.Prediction{Pick: "8"}, cat),
				ShouldResemble, []string{"Missed: the final number was 7, not 8."})
		})
	})
}
