package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/scoresheet/internal/config"
	"github.com/okian/scoresheet/internal/domain/match/matchtest"
	"github.com/okian/scoresheet/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestNewService(t *testing.T) {
	convey.Convey("Given a loaded configuration", t, func() {
		_ = os.Setenv("SCORESHEET_ARCHIVE_WORKERS", "3")
		_ = os.Setenv("SCORESHEET_TEMPLATE_VERSION", "legacy")
		defer func() {
			_ = os.Unsetenv("SCORESHEET_ARCHIVE_WORKERS")
			_ = os.Unsetenv("SCORESHEET_TEMPLATE_VERSION")
		}()
		cfg, err := config.Load(context.Background())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the service is built from it", func() {
			svc, err := newService(cfg, logger.Get())

			convey.Convey("Then the options are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				stats := svc.GetStats()
				convey.So(stats["archiveWorkers"], convey.ShouldEqual, 3)
				convey.So(stats["templateVersion"], convey.ShouldEqual, "legacy")
				convey.So(stats["timezone"], convey.ShouldEqual, "UTC")
			})
		})

		convey.Convey("When a value bypasses validation", func() {
			convey.Convey("Then an unknown template is rejected", func() {
				cfg.TemplateVersion = "v9"
				_, err := newService(cfg, logger.Get())
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Then an unknown timezone is rejected", func() {
				cfg.Timezone = "Mars/Olympus"
				_, err := newService(cfg, logger.Get())
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Then a malformed neutral color is rejected", func() {
				cfg.NeutralGuestColor = "gray"
				_, err := newService(cfg, logger.Get())
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the assembled HTTP handler", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc, err := newService(cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		h := newHandler(ctx, cfg, svc, logger.Get())

		get := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			return w
		}

		convey.Convey("Then the landing page, docs, metrics and stats are served", func() {
			convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/stats").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And a score sheet can be rendered end to end", func() {
			home := matchtest.Team("t-a", "Alpha", "#1F4294", 0)
			guest := matchtest.Team("t-b", "Bravo", "#E53935", 10)
			body, err := sonic.Marshal(matchtest.Match("m-1", home, guest, 25, 20, 25, 22))
			convey.So(err, convey.ShouldBeNil)

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/reports/score-sheet", bytes.NewReader(body)))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
		})
	})
}

func TestStartSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		convey.Convey("Then the updater returns", func() {
			done := make(chan struct{})
			go func() {
				startSystemMetricsUpdater(ctx)
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("updater did not stop")
			}
		})
	})
}
