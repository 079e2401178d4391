package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/alfaz-studio/sonacove-sub000/pkg/internal"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/cache"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/database"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/http"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	if err := database.NewSource(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(database.C); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Initialize cache
	if err := cache.NewCache(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Connect other services
	services.SetupLiveKit()
	services.SetupStripe()
	if err := services.SetupStorage(); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connecting to object storage.")
	}

	// Server
	http.NewServer()
	go http.Listen()

	// Webhook deliveries
	workerCtx, stopWorker := context.WithCancel(context.Background())
	go services.RunWebhookDeliverWorker(workerCtx)

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", services.DoAutoDatabaseCleanup)
	quartz.AddFunc("@every 10m", services.SweepPendingWebhookDeliveries)
	quartz.Start()

	// Messages
	log.Info().Msgf("Dashboard v%s is started...", pkg.AppVersion)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msgf("Dashboard v%s is quitting...", pkg.AppVersion)

	stopWorker()
	quartz.Stop()
}
