package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithRegistry(registry),
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithConstLabels(prometheus.Labels{"env": "test"}),
			WithLatencyBuckets([]float64{1, 10, 100}),
			WithSizeBuckets([]float64{512, 4096}),
		)

		Convey("When documents are rendered", func() {
			m.RecordDocument(FormatHTML, "INDOOR", 4096, 3.5)
			m.RecordDocument(FormatHTML, "INDOOR", 2048, 1.5)
			m.RecordDocument(FormatXLSX, "", 8192, 12)

			Convey("Then they are counted per format and kind", func() {
				So(testutil.ToFloat64(m.documentsRendered.WithLabelValues(FormatHTML, "INDOOR")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.documentsRendered.WithLabelValues(FormatXLSX, "")), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.renderDuration), ShouldEqual, 2)
			})

			Convey("And the registry exposes namespaced names with constant labels", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var found bool
				for _, f := range families {
					if f.GetName() == "test_unit_documents_rendered_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
					if f.GetName() == "test_unit_document_size_bytes" {
						So(f.GetMetric()[0].GetHistogram().GetBucket(), ShouldHaveLength, 2)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When integrity errors and standings are recorded", func() {
			m.RecordIntegrityError(FormatXLSX)
			m.UpdateStandingsRows(8)
			So(testutil.ToFloat64(m.integrityErrors.WithLabelValues(FormatXLSX)), ShouldEqual, 1)
			So(testutil.ToFloat64(m.standingsRows), ShouldEqual, 8)
		})

		Convey("When the archive pool reports", func() {
			m.UpdateArchivePool(3, 8)
			m.RecordArchiveTask()
			So(testutil.ToFloat64(m.archiveWorkersRunning), ShouldEqual, 3)
			So(testutil.ToFloat64(m.archiveWorkersCapacity), ShouldEqual, 8)
			So(testutil.ToFloat64(m.archiveTasks), ShouldEqual, 1)
		})

		Convey("When HTTP requests and errors are recorded", func() {
			m.RecordHTTPRequest("/v1/reports/workbook", "POST", 200, 25)
			m.RecordErrorByEndpoint("/v1/reports/workbook", "POST", "bad_request")
			m.RecordErrorByComponent("app", "data_integrity")

			expected := `
# HELP test_unit_http_requests_total HTTP requests by endpoint, method and status
# TYPE test_unit_http_requests_total counter
test_unit_http_requests_total{endpoint="/v1/reports/workbook",env="test",method="POST",status_code="200"} 1
`
			So(testutil.CollectAndCompare(m.httpRequests, strings.NewReader(expected)), ShouldBeNil)
			So(testutil.ToFloat64(m.errorRateByComponent.WithLabelValues("app", "data_integrity")), ShouldEqual, 1)
		})

		Convey("When system stats are sampled", func() {
			m.SampleSystem()
			So(testutil.ToFloat64(m.systemGoroutineCount), ShouldBeGreaterThan, 0)
			So(testutil.ToFloat64(m.systemMemoryUsage), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithRegistry(prometheus.NewRegistry()), WithEnabled(false))
		m.RecordDocument(FormatHTML, "BEACH", 10, 1)
		m.UpdateStandingsRows(4)
		So(testutil.ToFloat64(m.documentsRendered.WithLabelValues(FormatHTML, "BEACH")), ShouldEqual, 0)
		So(testutil.ToFloat64(m.standingsRows), ShouldEqual, 0)
	})
}

func TestGlobalManager(t *testing.T) {
	Convey("Given the global manager", t, func() {
		So(func() {
			RecordDocument(FormatZip, "", 100, 2)
			RecordIntegrityError(FormatHTML)
			UpdateStandingsRows(3)
			RecordArchiveTask()
			UpdateArchivePool(1, 4)
			RecordHTTPRequest("/healthz", "GET", 200, 1)
			RecordErrorByComponent("api", "bad_request")
			RecordErrorByEndpoint("/v1/reports/standings", "POST", "bad_request")
			SampleSystem()
		}, ShouldNotPanic)

		Convey("Then the shared registry gathers them", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 5)
		})
	})
}
