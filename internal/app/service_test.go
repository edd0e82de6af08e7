package service_test

import (
	"context"
	"testing"
	"time"

	errors "github.com/cockroachdb/errors"
	service "github.com/okian/scoresheet/internal/app"
	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/domain/match/matchtest"
	"github.com/okian/scoresheet/internal/report"
	"github.com/okian/scoresheet/internal/report/scoresheet"
	"github.com/okian/scoresheet/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var (
	alpha   = matchtest.Team("t-a", "Alpha", "#1F4294", 0)
	bravo   = matchtest.Team("t-b", "Bravo", "#E53935", 20)
	charlie = matchtest.Team("t-c", "Charlie", "#FFFFFF", 40)
)

func division() []match.Match {
	ab := matchtest.Match("m-ab", alpha, bravo, 25, 20, 25, 18)
	bc := matchtest.Match("m-bc", bravo, charlie, 25, 23, 20, 25, 15, 10)
	ac := matchtest.Match("m-ac", alpha, charlie, 25, 15, 25, 15)
	bc.ScheduledAt = matchtest.Epoch.Add(24 * time.Hour)
	ac.ScheduledAt = matchtest.Epoch.Add(48 * time.Hour)
	return []match.Match{ab, bc, ac}
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it reports its defaults", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeFalse)
			So(stats["templateVersion"], ShouldEqual, "current")
			So(stats["timezone"], ShouldEqual, "UTC")
			So(stats["archiveWorkers"], ShouldEqual, 8)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithTemplateVersion(scoresheet.VersionLegacy),
			service.WithLocation(time.FixedZone("JST", 9*3600)),
			service.WithArchiveWorkers(2),
			service.WithMaxMatches(10),
			service.WithLogger(logger.Get()),
		)

		Convey("Then the options are applied", func() {
			stats := svc.GetStats()
			So(stats["templateVersion"], ShouldEqual, "legacy")
			So(stats["timezone"], ShouldEqual, "JST")
			So(stats["archiveWorkers"], ShouldEqual, 2)
			So(stats["maxMatches"], ShouldEqual, 10)
		})
	})
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithArchiveWorkers(2))
		ctx := context.Background()

		Convey("When the archive is requested before Start", func() {
			_, err := svc.RenderScoreSheetArchive(ctx, "Division A", division())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("When started and stopped repeatedly", func() {
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.GetStats()["started"], ShouldBeTrue)
			svc.Stop()
			svc.Stop()
			So(svc.GetStats()["started"], ShouldBeFalse)
		})
	})
}

func TestService_RenderScoreSheet(t *testing.T) {
	Convey("Given a service", t, func() {
		svc := service.New()
		ctx := context.Background()
		m := division()[0]

		Convey("When a consistent match is rendered", func() {
			doc, err := svc.RenderScoreSheet(ctx, m)

			Convey("Then an HTML document is returned and counted", func() {
				So(err, ShouldBeNil)
				So(doc.Filename, ShouldEqual, "Alpha__Bravo__02_01_2024.html")
				So(doc.ContentType, ShouldEqual, report.ContentTypeHTML)
				So(svc.GetStats()["scoreSheets"], ShouldEqual, int64(1))
			})
		})

		Convey("When the record is inconsistent", func() {
			m.Sets[0].HomePoints = 24
			_, err := svc.RenderScoreSheet(ctx, m)

			Convey("Then a data integrity error is returned and counted", func() {
				So(errors.Is(err, match.ErrDataIntegrity), ShouldBeTrue)
				So(svc.GetStats()["integrityErrors"], ShouldEqual, int64(1))
			})
		})

		Convey("When required fields are missing", func() {
			m.ID = ""
			_, err := svc.RenderScoreSheet(ctx, m)
			So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.RenderScoreSheet(cancelled, m)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestService_Division(t *testing.T) {
	Convey("Given a service and a division", t, func() {
		svc := service.New(service.WithMaxMatches(3))
		ctx := context.Background()
		matches := division()

		Convey("When the standings are requested", func() {
			rows, err := svc.DivisionStandings(ctx, "Division A", matches)

			Convey("Then teams are ranked", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 3)
				So(rows[0].TeamName, ShouldEqual, "Alpha")
				So(rows[2].TeamName, ShouldEqual, "Charlie")
			})
		})

		Convey("When the workbook is requested", func() {
			doc, err := svc.RenderDivisionWorkbook(ctx, "Division A", matches)
			So(err, ShouldBeNil)
			So(doc.Filename, ShouldEqual, "Division A.xlsx")
			So(doc.ContentType, ShouldEqual, report.ContentTypeXLSX)
		})

		Convey("When the division exceeds the limit", func() {
			more := append(division(), matches[0])
			_, err := svc.DivisionStandings(ctx, "Division A", more)
			So(errors.Is(err, service.ErrTooManyMatches), ShouldBeTrue)
			_, err = svc.RenderDivisionWorkbook(ctx, "Division A", more)
			So(errors.Is(err, service.ErrTooManyMatches), ShouldBeTrue)
		})

		Convey("When the division name is missing", func() {
			_, err := svc.DivisionStandings(ctx, "", matches)
			So(errors.Is(err, service.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When one match is inconsistent", func() {
			matches[2].Sets[0].Ladder[0] = "X"
			_, err := svc.DivisionStandings(ctx, "Division A", matches)
			So(errors.Is(err, match.ErrDataIntegrity), ShouldBeTrue)
		})
	})
}
