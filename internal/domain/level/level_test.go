package level_test

import (
	"testing"

	"github.com/crewdeck/assigner/internal/domain/level"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRank(t *testing.T) {
	Convey("Given the ordinal level vocabulary", t, func() {
		Convey("When ranking named levels", func() {
			So(level.Rank("beginner"), ShouldEqual, 1)
			So(level.Rank("junior"), ShouldEqual, 2)
			So(level.Rank("intermediate"), ShouldEqual, 3)
			So(level.Rank("mid"), ShouldEqual, 4)
			So(level.Rank("senior"), ShouldEqual, 5)
			So(level.Rank("expert"), ShouldEqual, 6)
			So(level.Rank("principal"), ShouldEqual, 7)
		})

		Convey("When ranking is case-insensitive", func() {
			So(level.Rank("Senior"), ShouldEqual, 5)
			So(level.Rank("PRINCIPAL"), ShouldEqual, 7)
		})

		Convey("When ranking numeric strings", func() {
			Convey("Then the number is taken as the rank directly", func() {
				So(level.Rank("3"), ShouldEqual, 3)
				So(level.Rank("7"), ShouldEqual, 7)
			})

			Convey("And no upper clamp is applied", func() {
				So(level.Rank("12"), ShouldEqual, 12)
			})

			Convey("And non-positive numbers fall back to the default", func() {
				So(level.Rank("0"), ShouldEqual, level.DefaultRank)
				So(level.Rank("-2"), ShouldEqual, level.DefaultRank)
			})
		})

		Convey("When the level is empty or unrecognized", func() {
			So(level.Rank(""), ShouldEqual, level.DefaultRank)
			So(level.Rank("wizard"), ShouldEqual, level.DefaultRank)
		})

		Convey("When surrounded by whitespace", func() {
			So(level.Rank("  senior  "), ShouldEqual, 5)
		})
	})
}

func TestName(t *testing.T) {
	Convey("Given rank-to-name lookup", t, func() {
		So(level.Name(1), ShouldEqual, "beginner")
		So(level.Name(level.MaxRank), ShouldEqual, "principal")
		So(level.Name(0), ShouldEqual, "")
		So(level.Name(8), ShouldEqual, "")
	})
}
