package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/geoattendance/internal/config"
	appHTTP "github.com/cmlabs-hris/geoattendance/internal/handler/http"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/clock"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/database"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geocoder"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/geolocation"
	"github.com/cmlabs-hris/geoattendance/internal/pkg/jwt"
	"github.com/cmlabs-hris/geoattendance/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/geoattendance/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/geoattendance/internal/service/dashboard"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := appHTTP.NewLogger(cfg.App.Env, version, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	clk, err := clock.New(cfg.App.Timezone)
	if err != nil {
		return err
	}

	var reverseGeocoder geocoder.ReverseGeocoder = geocoder.Coordinates{}
	if cfg.Geocoder.Enabled {
		reverseGeocoder = geocoder.NewNominatim(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout)
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	officeRepo := postgresql.NewOfficeLocationRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	positionProvider := geolocation.NewDeviceProvider(clk)
	positionOptions := geolocation.PositionOptions{
		EnableHighAccuracy: cfg.Geolocation.EnableHighAccuracy,
		Timeout:            cfg.Geolocation.Timeout,
		MaximumAge:         cfg.Geolocation.MaximumAge,
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		officeRepo,
		positionProvider,
		positionOptions,
		reverseGeocoder,
		clk,
	)

	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, clk)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, positionProvider)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Env:            cfg.App.Env,
		Version:        version,
		AllowedOrigins: cfg.App.CORSOrigins,
		Logger:         logger,
	}, JWTService, attendanceHandler, dashboardHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
