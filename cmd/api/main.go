package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendly/attendly-backend/internal/config"
	appHTTP "github.com/attendly/attendly-backend/internal/handler/http"
	"github.com/attendly/attendly-backend/internal/pkg/cron"
	"github.com/attendly/attendly-backend/internal/pkg/database"
	"github.com/attendly/attendly-backend/internal/pkg/jwt"
	"github.com/attendly/attendly-backend/internal/pkg/sse"
	"github.com/attendly/attendly-backend/internal/repository/postgresql"
	serviceAuth "github.com/attendly/attendly-backend/internal/service/auth"
	"github.com/attendly/attendly-backend/internal/service/projection"
	semesterService "github.com/attendly/attendly-backend/internal/service/semester"
	subjectService "github.com/attendly/attendly-backend/internal/service/subject"
	"github.com/go-chi/httplog/v3"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendly"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	calculator, err := projection.NewCalculator(cfg.Attendance.TargetPercent)
	if err != nil {
		slog.Error("Invalid attendance target", "error", err, "target", cfg.Attendance.TargetPercent)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	semesterRepo := postgresql.NewSemesterRepository(db)
	subjectRepo := postgresql.NewSubjectRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	hub := sse.NewHub()
	semesterSvc := semesterService.NewSemesterService(db, semesterRepo, subjectRepo, hub)
	subjectSvc := subjectService.NewSubjectService(db, subjectRepo, semesterRepo, calculator, hub)

	scheduler := cron.NewScheduler()
	cron.NewTokenJobs(JWTRepository, JWTService, cfg.RefreshRetention()).RegisterJobs(scheduler, cfg.JWT.CleanupInterval)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService)
	semesterHandler := appHTTP.NewSemesterHandler(semesterSvc)
	subjectHandler := appHTTP.NewSubjectHandler(subjectSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		authHandler,
		semesterHandler,
		subjectHandler,
		eventsHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open event streams end when ctx is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		scheduler.Start(gCtx)
		scheduler.Wait()
		return nil
	})

	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "attendance_target", calculator.Target())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		db.Close()
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
