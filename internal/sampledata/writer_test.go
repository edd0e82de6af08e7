package sampledata_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bytedance/sonic"
	errors "github.com/cockroachdb/errors"
	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/scoresheet/internal/app"
	"github.com/okian/scoresheet/internal/domain/match"
	"github.com/okian/scoresheet/internal/domain/standings"
	"github.com/okian/scoresheet/internal/sampledata"
	"github.com/okian/scoresheet/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestRun(t *testing.T) {
	Convey("Given a sample run into a temporary directory", t, func() {
		dir := filepath.Join(t.TempDir(), "out")
		cfg := &sampledata.Config{Seed: 11, Teams: 4, Kind: match.KindIndoor, Division: "Division A", OutDir: dir}

		Convey("When the run completes", func() {
			stats, err := sampledata.Run(context.Background(), cfg, service.New())
			So(err, ShouldBeNil)

			Convey("Then the workbook, standings and sheets are written", func() {
				So(stats.Matches, ShouldEqual, 6)
				So(stats.Documents, ShouldEqual, 8)
				So(stats.Bytes, ShouldBeGreaterThan, 0)

				entries, err := os.ReadDir(dir)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 8)

				_, err = os.Stat(filepath.Join(dir, "Division A.xlsx"))
				So(err, ShouldBeNil)
			})

			Convey("And the standings list every team", func() {
				raw, err := os.ReadFile(filepath.Join(dir, sampledata.StandingsFile))
				So(err, ShouldBeNil)
				var rows []standings.Row
				So(sonic.Unmarshal(raw, &rows), ShouldBeNil)
				So(rows, ShouldHaveLength, 4)
				played := 0
				for _, r := range rows {
					played += r.Played()
				}
				So(played, ShouldEqual, 12)
			})
		})

		Convey("When the output directory cannot be created", func() {
			blocker := filepath.Join(t.TempDir(), "file")
			So(os.WriteFile(blocker, []byte("x"), 0o600), ShouldBeNil)
			cfg.OutDir = filepath.Join(blocker, "out")

			_, err := sampledata.Run(context.Background(), cfg, service.New())

			Convey("Then a write error is returned", func() {
				So(errors.Is(err, sampledata.ErrWrite), ShouldBeTrue)
			})
		})

		Convey("When the configuration is invalid", func() {
			cfg.Teams = 0
			_, err := sampledata.Run(context.Background(), cfg, service.New())

			Convey("Then nothing is written", func() {
				So(errors.Is(err, sampledata.ErrInvalidConfig), ShouldBeTrue)
				_, statErr := os.Stat(dir)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})
}
