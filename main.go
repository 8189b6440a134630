package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/darumi/backend/internal/config"
	v1 "github.com/darumi/backend/internal/controllers/v1"
	"github.com/darumi/backend/internal/engine"
	"github.com/darumi/backend/internal/models"
	"github.com/darumi/backend/internal/notify"
	"github.com/darumi/backend/internal/router"
	"github.com/darumi/backend/internal/schedule"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg := config.Load()

	// Create data directory
	err := os.MkdirAll(cfg.DataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database and migrate the schema
	err = models.Connect(cfg.DatabaseDSN())
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Events are published to AMQP when a broker is configured,
	// discarded otherwise
	var port notify.Port = notify.NopPort{}
	if cfg.AMQPURL != "" {
		amqpPort, err := notify.NewAMQPPort(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("AMQP connection failed")
		}
		defer amqpPort.Close()

		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing objective events to AMQP")
		port = amqpPort
	} else {
		log.Info().Msg("AMQP_URL is not set, objective events will not be published")
	}

	e := engine.New(models.DB, port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The settlement scheduler fires at every month rollover
	scheduler := schedule.New(e)
	go scheduler.Run(ctx)

	r, err := router.Router(v1.NewController(e))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
