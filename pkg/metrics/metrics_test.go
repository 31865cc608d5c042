package metrics_test

import (
	"testing"

	"github.com/crewdeck/assigner/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecorders(t *testing.T) {
	Convey("Given the metrics recorders", t, func() {
		Convey("When recording engine runs", func() {
			So(func() {
				metrics.RecordMatch(metrics.OutcomeOK, 0.01)
				metrics.RecordMatch(metrics.OutcomeNotFound, 0.002)
				metrics.RecordSchedule(metrics.OutcomeNoSchedule, 0.005)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP traffic", func() {
			So(func() {
				metrics.RecordHTTPRequest("match", "GET", "200")
				metrics.RecordHTTPRequestDuration("match", "GET", 12.5)
			}, ShouldNotPanic)
		})

		Convey("When publishing store sizes", func() {
			So(func() { metrics.UpdateStoreSizes(3, 7) }, ShouldNotPanic)
		})
	})
}
