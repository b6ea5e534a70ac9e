package aggregate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/sisu/internal/domain/aggregate"
	"github.com/okian/sisu/internal/domain/dataset/datasettest"
	"github.com/okian/sisu/internal/domain/filter"
	"github.com/okian/sisu/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func emptyResult() aggregate.Result {
	return aggregate.Result{
		CountsByState:         []aggregate.CountEntry{},
		MaxScoreByState:       []aggregate.ScoreEntry{},
		MaxScoreByInstitution: []aggregate.ScoreEntry{},
	}
}

func TestComputeScenarios(t *testing.T) {
	Convey("Given the three-row scenario dataset", t, func() {
		ds := datasettest.Scenario()

		Convey("When aggregating Medicina in SP", func() {
			res := aggregate.Compute(filter.Apply(ds, model.Selection{
				Course: filter.Normalize("Medicina"),
				State:  filter.Normalize("SP"),
			}))

			Convey("Then counts and maxima match the two rows", func() {
				want := aggregate.Result{
					CountsByState:   []aggregate.CountEntry{{Key: "SP", Count: 2}},
					MaxScoreByState: []aggregate.ScoreEntry{{Key: "SP", Score: 890.5}},
					MaxScoreByInstitution: []aggregate.ScoreEntry{
						{Key: "UNICAMP", Score: 870.0},
						{Key: "USP", Score: 890.5},
					},
					TotalCount: 2,
				}
				So(cmp.Diff(want, res), ShouldBeEmpty)
			})
		})

		Convey("When the course selection is empty", func() {
			res := aggregate.Compute(filter.Apply(ds, model.Selection{State: filter.Normalize("SP")}))

			Convey("Then the total is zero and every table is empty", func() {
				So(cmp.Diff(emptyResult(), res), ShouldBeEmpty)
			})
		})

		Convey("When the institution does not match", func() {
			res := aggregate.Compute(filter.Apply(ds, model.Selection{
				Course:      filter.Normalize("Medicina"),
				State:       filter.Normalize("SP"),
				Institution: filter.Normalize("UFRJ"),
			}))

			Convey("Then the result is empty", func() {
				So(cmp.Diff(emptyResult(), res), ShouldBeEmpty)
			})
		})
	})
}

func TestComputeMissingScores(t *testing.T) {
	Convey("Given the wide dataset with missing scores", t, func() {
		ds := datasettest.Wide()

		Convey("When all courses in MG and SP are selected", func() {
			res := aggregate.Compute(filter.Apply(ds, model.Selection{
				Course: filter.Normalize("Medicina", "Direito", "Engenharia"),
				State:  filter.Normalize("MG", "SP"),
			}))

			Convey("Then rows without scores still count but never win a max", func() {
				want := aggregate.Result{
					CountsByState: []aggregate.CountEntry{{Key: "MG", Count: 2}, {Key: "SP", Count: 5}},
					MaxScoreByState: []aggregate.ScoreEntry{
						{Key: "MG", Score: 701.75},
						{Key: "SP", Score: 890.5},
					},
					MaxScoreByInstitution: []aggregate.ScoreEntry{
						{Key: "UFMG", Score: 701.75},
						{Key: "UNICAMP", Score: 870.0},
						{Key: "USP", Score: 890.5},
					},
					TotalCount: 7,
				}
				So(cmp.Diff(want, res), ShouldBeEmpty)
			})
		})

		Convey("When the only row of a group has no score", func() {
			res := aggregate.Compute(filter.Apply(ds, model.Selection{
				Course: filter.Normalize("Medicina"),
				State:  filter.Normalize("MG"),
			}))

			Convey("Then the group is counted but omitted from the score tables", func() {
				So(res.TotalCount, ShouldEqual, 1)
				So(res.CountsByState, ShouldResemble, []aggregate.CountEntry{{Key: "MG", Count: 1}})
				So(res.MaxScoreByState, ShouldBeEmpty)
				So(res.MaxScoreByInstitution, ShouldBeEmpty)
			})
		})

		Convey("When the same selection is aggregated twice", func() {
			sel := model.Selection{Course: filter.Normalize("Direito"), State: filter.Normalize("SP", "RJ")}
			a := aggregate.Compute(filter.Apply(ds, sel))
			b := aggregate.Compute(filter.Apply(ds, sel))

			Convey("Then the results are identical", func() {
				So(cmp.Diff(a, b), ShouldBeEmpty)
				So(a.TotalCount, ShouldEqual, 3)
			})
		})
	})
}
