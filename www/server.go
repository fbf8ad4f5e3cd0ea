package www

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/angas/solarvalue-go/config"
	"github.com/angas/solarvalue-go/database"
	"github.com/angas/solarvalue-go/hours"
	"github.com/angas/solarvalue-go/inverter"
	"github.com/angas/solarvalue-go/task"
	"github.com/angas/solarvalue-go/types/maybe"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	db     *database.Database
	live   *inverter.LiveFeed
	hub    *Hub
	tm     *TemplateManager
	mux    *http.ServeMux
}

//go:embed static
var embeddedStaticDir embed.FS

func StartServer(
	db *database.Database,
	tasks *task.Tasks,
	live *inverter.LiveFeed,
	fetchEnergy func(daysBack int),
	cnfg config.AppConfigApi,
	version string,
) *Server {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.WwwDir)
	if err != nil {
		logger.Error("template manager initialization error", slog.Any("error", err))
	}

	s := &Server{
		logger: logger,
		config: cnfg,
		db:     db,
		live:   live,
		hub:    NewHub(logger),
		tm:     tm,
		mux:    http.NewServeMux(),
	}

	go s.hub.Run()

	startedAt := time.Now()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	s.mux.Handle("GET /api/status", logReqMW(NewStatusHandler(
		logger.With(slog.String("handler", "status")), db, version, startedAt)))

	s.mux.Handle("GET /api/prices/by-date/{date}", logReqMW(NewPricesHandler(
		logger.With(slog.String("handler", "prices")), db)))

	s.mux.Handle("GET /api/energy/by-date/{date}", logReqMW(NewEnergyHandler(
		logger.With(slog.String("handler", "energy")), db)))

	s.mux.Handle("POST /api/prices/refresh", logReqMW(NewRefreshPricesHandler(
		logger.With(slog.String("handler", "prices_refresh")), tasks.EnergyPriceTask)))

	s.mux.Handle("POST /api/energy/fetch/{days_back}", logReqMW(NewFetchEnergyHandler(
		logger.With(slog.String("handler", "energy_fetch")), fetchEnergy)))

	s.mux.Handle("GET /api/analysis/by-date/{date}", logReqMW(NewDailyAnalysisHandler(
		logger.With(slog.String("handler", "daily_analysis")), db)))

	s.mux.Handle("GET /api/analysis/by-month/{month}", logReqMW(NewMonthlyAnalysisHandler(
		logger.With(slog.String("handler", "monthly_analysis")), db)))

	s.mux.Handle("GET /api/available-dates", logReqMW(NewAvailableDatesHandler(
		logger.With(slog.String("handler", "available_dates")), db)))

	s.mux.Handle("GET /chart", logReqMW(NewChartHandler(
		logger.With(slog.String("handler", "chart")), db)))

	s.mux.Handle("GET /{$}", logReqMW(NewPageHandler(logger, tm, "index.html")))
	s.mux.Handle("GET /daily", logReqMW(NewPageHandler(logger, tm, "daily.html")))
	s.mux.Handle("GET /monthly", logReqMW(NewPageHandler(logger, tm, "monthly.html")))
	s.mux.Handle("GET /log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")), db, tm)))

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", staticFilesHandler(cnfg.WwwDir)))

	s.mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s
}

type RealTimeData struct {
	PowerW         maybe.Maybe[float64]
	EnergyTodayKWh maybe.Maybe[float64]
	EnergyPrice    maybe.Maybe[float64]
	UpdatedAt      string
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "address", s.config.Address, "port", s.config.Port)
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
		Handler: s.mux,
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Second * 2)
	defer ticker.Stop()

	// Today's prices, reloaded when the date rolls over. Error state kept
	// to avoid spamming the log on every tick.
	var priceCache map[uint8]float64
	priceCacheDate := ""
	fetchPriceErrorState := false

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			now := hours.FromNow()
			if priceCacheDate != now.Date {
				prices, err := s.db.GetEnergyPriceMap(ctx, now.Date)
				if err != nil {
					if !fetchPriceErrorState {
						fetchPriceErrorState = true
						s.logger.Warn("failed to get energy prices", slog.String("date", now.Date), slog.Any("error", err))
					}
				} else {
					fetchPriceErrorState = false
					priceCache = prices
					priceCacheDate = now.Date
				}
			}

			data := RealTimeData{UpdatedAt: hours.FormatTimeInGuiTimezone(time.Now())}
			if s.live != nil {
				if reading := s.live.Snapshot(); !reading.ReceivedAt.IsZero() {
					data.PowerW = maybe.Some(reading.PowerW)
					data.EnergyTodayKWh = maybe.Some(reading.EnergyTodayKWh)
				}
			}
			if price, ok := priceCache[now.Hour]; ok {
				data.EnergyPrice = maybe.Some(price)
			}

			buf, err := s.tm.Execute("real_time_data.html", data)
			if err != nil {
				s.logger.Error("template execution failed", slog.Any("error", err))
				return
			}

			s.hub.Broadcast <- buf.Bytes()
		}
	}
}

func staticFilesHandler(extDir *string) http.Handler {
	if extDir != nil && *extDir != "" {
		staticDir := path.Join(*extDir, "static")
		if _, err := os.Stat(staticDir); err == nil {
			return http.FileServer(http.Dir(staticDir))
		}
	}

	fsys, err := fs.Sub(embeddedStaticDir, "static")
	if err != nil {
		log.Panic(err)
	}
	return http.FileServer(http.FS(fsys))
}
