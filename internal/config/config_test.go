package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/scoresheet/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.TemplateVersion, convey.ShouldEqual, "current")
			convey.So(cfg.ArchiveWorkers, convey.ShouldEqual, 8)
			convey.So(cfg.NeutralGuestColor, convey.ShouldEqual, "#BDBDBD")
			convey.So(cfg.RenderTimeout(), convey.ShouldEqual, 10*time.Second)
		})

		convey.Convey("And the defaults validate", func() {
			convey.So(config.Validate(context.Background(), cfg), convey.ShouldBeNil)
			loc, err := cfg.Location()
			convey.So(err, convey.ShouldBeNil)
			convey.So(loc, convey.ShouldEqual, time.UTC)
		})
	})
}
