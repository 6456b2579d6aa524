package needs_test

import (
	"testing"

	"github.com/okian/compas/internal/domain/model"
	"github.com/okian/compas/internal/domain/needs"
	. "github.com/smartystreets/goconvey/convey"
)

var keys = []string{"comp_a", "comp_b", "comp_c"} //nolint:gochecknoglobals // shared fixture

func TestMeanRelative(t *testing.T) {
	Convey("Given the mean-relative policy", t, func() {
		policy := needs.MeanRelative{}

		Convey("When levels differ", func() {
			levels := model.Vector{"comp_a": 8, "comp_b": 2, "comp_c": 2}
			w := policy.Weights(levels, keys)

			Convey("Then below-mean competencies pull weight toward the mean", func() {
				// mean = 4
				So(w["comp_a"], ShouldEqual, 0.0)
				So(w["comp_b"], ShouldEqual, 2.0)
				So(w["comp_c"], ShouldEqual, 2.0)
			})

			Convey("And every weight is non-negative", func() {
				for _, k := range keys {
					So(w[k], ShouldBeGreaterThanOrEqualTo, 0.0)
				}
			})
		})

		Convey("When a level sits exactly at the mean", func() {
			levels := model.Vector{"comp_a": 3, "comp_b": 3, "comp_c": 6}
			w := policy.Weights(levels, keys)

			Convey("Then its weight is exactly zero", func() {
				// mean = 4; comp_a and comp_b get 1, comp_c gets 0
				So(w["comp_c"], ShouldEqual, 0.0)
			})
		})

		Convey("When the profile is flat", func() {
			levels := model.Vector{"comp_a": 5, "comp_b": 5, "comp_c": 5}
			w := policy.Weights(levels, keys)

			Convey("Then the uniform fallback kicks in", func() {
				So(w, ShouldResemble, model.Vector{"comp_a": 1, "comp_b": 1, "comp_c": 1})
			})
		})

		Convey("When the profile is all zero", func() {
			w := policy.Weights(model.Vector{"comp_a": 0, "comp_b": 0, "comp_c": 0}, keys)

			So(w, ShouldResemble, model.Vector{"comp_a": 1, "comp_b": 1, "comp_c": 1})
		})

		Convey("When the keyspace is empty", func() {
			w := policy.Weights(model.Vector{}, nil)

			Convey("Then no fallback applies and the vector stays empty", func() {
				So(w, ShouldBeEmpty)
			})
		})
	})
}

func TestTargetRelative(t *testing.T) {
	Convey("Given the target-relative policy with target 5", t, func() {
		policy := needs.TargetRelative{Target: 5}

		Convey("When levels straddle the target", func() {
			levels := model.Vector{"comp_a": 2, "comp_b": 5, "comp_c": 9}
			w := policy.Weights(levels, keys)

			Convey("Then weight is the gap below target and zero at or above it", func() {
				So(w["comp_a"], ShouldEqual, 3.0)
				So(w["comp_b"], ShouldEqual, 0.0)
				So(w["comp_c"], ShouldEqual, 0.0)
			})
		})

		Convey("When every level meets the target", func() {
			levels := model.Vector{"comp_a": 5, "comp_b": 7, "comp_c": 6}
			w := policy.Weights(levels, keys)

			Convey("Then the uniform fallback kicks in", func() {
				So(w, ShouldResemble, model.Vector{"comp_a": 1, "comp_b": 1, "comp_c": 1})
			})
		})
	})
}

func TestPolicyNames(t *testing.T) {
	Convey("Given both policies", t, func() {
		So(needs.MeanRelative{}.Name(), ShouldEqual, needs.MeanRelativeName)
		So(needs.TargetRelative{}.Name(), ShouldEqual, needs.TargetRelativeName)
	})
}

func TestIdenticalLevelsProduceUniformWeights(t *testing.T) {
	Convey("Given a learner with identical levels everywhere", t, func() {
		levels := model.Vector{"comp_a": 4, "comp_b": 4, "comp_c": 4}

		Convey("Then mean-relative falls back to uniform", func() {
			So(needs.MeanRelative{}.Weights(levels, keys), ShouldResemble, model.Vector{"comp_a": 1, "comp_b": 1, "comp_c": 1})
		})

		Convey("And target-relative below target is uniform by construction", func() {
			w := needs.TargetRelative{Target: 6}.Weights(levels, keys)
			So(w, ShouldResemble, model.Vector{"comp_a": 2, "comp_b": 2, "comp_c": 2})
		})
	})
}
