package scoring_test

import (
	"testing"

	"github.com/okian/compas/internal/domain/model"
	"github.com/okian/compas/internal/domain/needs"
	"github.com/okian/compas/internal/domain/resolve"
	"github.com/okian/compas/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func catalogTable(rows ...model.Row) *model.Table {
	t := model.NewTable([]string{"program_id", "comp_a", "comp_b"})
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func catalogResolved() resolve.Resolved {
	return resolve.Resolved{
		ItemID:       "program_id",
		Competencies: []string{"comp_a", "comp_b"},
	}
}

func TestRank(t *testing.T) {
	Convey("Given a two-program catalog and a weight vector", t, func() {
		catalog := catalogTable(
			model.Row{"program_id": "P1", "comp_a": "10", "comp_b": "0"},
			model.Row{"program_id": "P2", "comp_a": "0", "comp_b": "10"},
		)
		// Profile comp_a=8, comp_b=2: mean 5, so comp_a weighs 0 and comp_b 3.
		weights := model.Vector{"comp_a": 0, "comp_b": 3}
		ranker := scoring.NewRanker(scoring.WithTopK(1))

		Convey("When ranking", func() {
			recs := ranker.Rank(catalog, catalogResolved(), weights, nil)

			Convey("Then the program covering the weak competency wins", func() {
				So(recs, ShouldHaveLength, 1)
				So(recs[0].ItemID, ShouldEqual, "P2")
				So(recs[0].Score, ShouldEqual, 30.0)
			})

			Convey("And the per-competency breakdown is retained", func() {
				So(recs[0].Contributions["comp_a"], ShouldEqual, 0.0)
				So(recs[0].Contributions["comp_b"], ShouldEqual, 30.0)
			})
		})

		Convey("When the winner is already completed", func() {
			recs := ranker.Rank(catalog, catalogResolved(), weights, map[string]struct{}{"P2": {}})

			Convey("Then exclusion happens before ranking, so P1 fills the slot", func() {
				So(recs, ShouldHaveLength, 1)
				So(recs[0].ItemID, ShouldEqual, "P1")
				So(recs[0].Score, ShouldEqual, 0.0)
			})
		})
	})
}

func TestExclusionInvariant(t *testing.T) {
	Convey("Given a catalog and an exclusion set", t, func() {
		catalog := catalogTable(
			model.Row{"program_id": "P1", "comp_a": "5", "comp_b": "5"},
			model.Row{"program_id": "P2", "comp_a": "9", "comp_b": "9"},
			model.Row{"program_id": "P3", "comp_a": "1", "comp_b": "1"},
		)
		weights := model.Vector{"comp_a": 1, "comp_b": 1}
		exclude := map[string]struct{}{"P2": {}}

		Convey("Then no excluded item appears for any K", func() {
			for k := 1; k <= 5; k++ {
				recs := scoring.NewRanker(scoring.WithTopK(k)).Rank(catalog, catalogResolved(), weights, exclude)
				for _, rec := range recs {
					So(rec.ItemID, ShouldNotEqual, "P2")
				}
			}
		})

		Convey("And output length is min(K, eligible items)", func() {
			So(scoring.NewRanker(scoring.WithTopK(1)).Rank(catalog, catalogResolved(), weights, exclude), ShouldHaveLength, 1)
			So(scoring.NewRanker(scoring.WithTopK(2)).Rank(catalog, catalogResolved(), weights, exclude), ShouldHaveLength, 2)
			So(scoring.NewRanker(scoring.WithTopK(10)).Rank(catalog, catalogResolved(), weights, exclude), ShouldHaveLength, 2)
		})
	})
}

func TestPrefixStabilityAndTies(t *testing.T) {
	Convey("Given a catalog with tied scores", t, func() {
		catalog := catalogTable(
			model.Row{"program_id": "T1", "comp_a": "3", "comp_b": "0"},
			model.Row{"program_id": "T2", "comp_a": "0", "comp_b": "3"},
			model.Row{"program_id": "T3", "comp_a": "9", "comp_b": "0"},
			model.Row{"program_id": "T4", "comp_a": "3", "comp_b": "0"},
		)
		weights := model.Vector{"comp_a": 1, "comp_b": 1}
		res := catalogResolved()

		Convey("When ranking with increasing K", func() {
			small := scoring.NewRanker(scoring.WithTopK(2)).Rank(catalog, res, weights, nil)
			large := scoring.NewRanker(scoring.WithTopK(4)).Rank(catalog, res, weights, nil)

			Convey("Then the K-result is a prefix of the K'-result", func() {
				So(large[:len(small)], ShouldResemble, small)
			})
		})

		Convey("When scores tie", func() {
			recs := scoring.NewRanker(scoring.WithTopK(4)).Rank(catalog, res, weights, nil)

			Convey("Then catalog row order breaks the tie, stably", func() {
				So(recs[0].ItemID, ShouldEqual, "T3")
				So(recs[1].ItemID, ShouldEqual, "T1")
				So(recs[2].ItemID, ShouldEqual, "T2")
				So(recs[3].ItemID, ShouldEqual, "T4")
			})
		})

		Convey("When ranking twice with identical inputs", func() {
			a := scoring.NewRanker(scoring.WithTopK(4)).Rank(catalog, res, weights, nil)
			b := scoring.NewRanker(scoring.WithTopK(4)).Rank(catalog, res, weights, nil)

			Convey("Then the output is identical, tie order included", func() {
				So(a, ShouldResemble, b)
			})
		})
	})
}

func TestRunPolicies(t *testing.T) {
	Convey("Given both policies over one catalog", t, func() {
		catalog := catalogTable(
			model.Row{"program_id": "P1", "comp_a": "10", "comp_b": "0"},
			model.Row{"program_id": "P2", "comp_a": "0", "comp_b": "10"},
		)
		levels := model.Vector{"comp_a": 8, "comp_b": 2}
		policies := []needs.Policy{
			needs.MeanRelative{},
			needs.TargetRelative{Target: 9},
		}
		ranker := scoring.NewRanker(scoring.WithTopK(2))

		Convey("When running them together", func() {
			recs := ranker.RunPolicies(catalog, catalogResolved(), levels, policies, nil)

			Convey("Then blocks concatenate in request order with method tags", func() {
				So(recs, ShouldHaveLength, 4)
				So(recs[0].Method, ShouldEqual, needs.MeanRelativeName)
				So(recs[1].Method, ShouldEqual, needs.MeanRelativeName)
				So(recs[2].Method, ShouldEqual, needs.TargetRelativeName)
				So(recs[3].Method, ShouldEqual, needs.TargetRelativeName)
			})

			Convey("And rank restarts at 1 within each block", func() {
				So(recs[0].Rank, ShouldEqual, 1)
				So(recs[1].Rank, ShouldEqual, 2)
				So(recs[2].Rank, ShouldEqual, 1)
				So(recs[3].Rank, ShouldEqual, 2)
			})

			Convey("And each block ranks under its own weights", func() {
				// mean-relative: weights a=0 b=3 -> P2 first
				So(recs[0].ItemID, ShouldEqual, "P2")
				// target 9: weights a=1 b=7 -> P2 (70) over P1 (10)
				So(recs[2].ItemID, ShouldEqual, "P2")
				So(recs[2].Score, ShouldEqual, 70.0)
				So(recs[3].Score, ShouldEqual, 10.0)
			})
		})
	})
}

func TestNumericCoercionInCatalog(t *testing.T) {
	Convey("Given catalog cells with garbage values", t, func() {
		catalog := catalogTable(
			model.Row{"program_id": "P1", "comp_a": "bad", "comp_b": "4"},
			model.Row{"program_id": "P2", "comp_a": "2"},
		)
		weights := model.Vector{"comp_a": 1, "comp_b": 1}

		Convey("When ranking", func() {
			recs := scoring.NewRanker().Rank(catalog, catalogResolved(), weights, nil)

			Convey("Then garbage and missing cells score as zero", func() {
				So(recs[0].ItemID, ShouldEqual, "P1")
				So(recs[0].Score, ShouldEqual, 4.0)
				So(recs[1].Score, ShouldEqual, 2.0)
			})
		})
	})
}
