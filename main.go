package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"mercury-backend/config"
	"mercury-backend/controllers"
	"mercury-backend/ledger"
	"mercury-backend/routes"
	"mercury-backend/services"
)

func main() {
	logger := config.DefaultLogger()

	mainCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load(logger)
	logger = config.WithLevel(logger, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	var (
		remote   ledger.Remote
		recorder services.ReminderRecorder
	)
	if cfg.DatabaseURL != "" {
		db, err := config.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
			return
		}
		dbStore := services.NewDBStore(db)
		remote, recorder = dbStore, dbStore
		logger.Info().Msg("using PostgreSQL storage")
	} else {
		remote = services.NewFileStore(cfg.DataFile, logger)
		logger.Info().Str("file", cfg.DataFile).Msg("using JSON file storage")
	}

	store := ledger.NewStore()
	gateway := ledger.NewGateway(store, remote, cfg.RemoteTimeout, logger)
	if err := gateway.Load(mainCtx); err != nil {
		logger.Fatal().Err(err).Msg("failed to load data")
		return
	}

	var reminderCtrl *controllers.ReminderController
	if cfg.RemindersEnabled() {
		sender := services.NewTwilioSender(cfg.Reminder.Twilio.AccountSID, cfg.Reminder.Twilio.AuthToken, cfg.Reminder.Twilio.PhoneNumber)
		reminders := services.NewReminderService(store, sender, recorder, cfg.Reminder.MinDebt, logger)
		if err := reminders.StartScheduler(cfg.Reminder.Schedule); err != nil {
			logger.Fatal().Err(err).Msg("failed to start reminder scheduler")
			return
		}
		defer reminders.Stop()
		reminderCtrl = controllers.NewReminderController(reminders)
	}

	r := routes.SetupRouter(cfg, controllers.NewLedgerController(gateway, logger), reminderCtrl, logger)
	printRoutes(logger, r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server failed")
			cancel()
		}
	}()

	<-mainCtx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
}

func printRoutes(logger zerolog.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		logger.Debug().Msg(fmt.Sprintf("%-6s %s", route.Method, route.Path))
	}
}
