package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/skybi/rendezvous/internal/activity"
	"github.com/skybi/rendezvous/internal/api"
	"github.com/skybi/rendezvous/internal/config"
	"github.com/skybi/rendezvous/internal/reference"
	"github.com/skybi/rendezvous/internal/storage"
	"github.com/skybi/rendezvous/internal/storage/cache"
	"github.com/skybi/rendezvous/internal/storage/memory"
	"github.com/skybi/rendezvous/internal/storage/postgres"
	"github.com/skybi/rendezvous/internal/task"
)

func main() {
	// Set up zerolog to use pretty printing
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out: os.Stderr,
	})
	log.Info().Msg("starting up...")

	// Load the application configuration
	log.Info().Msg("loading configuration...")
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load the configuration")
	}
	if cfg.IsEnvProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("config", fmt.Sprintf("%+v", cfg)).Msg("")

	// Initialize the configured storage driver
	log.Info().Str("driver", cfg.StorageDriver).Msg("initializing storage driver...")
	driver, err := openStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize the storage driver")
	}
	defer driver.Close()

	// Cache the rarely changing reference data
	referenceRepo := cache.NewReferenceRepository(reference.NewRepository(driver.Reference()), cfg.ReferenceCacheLifetime)
	defer referenceRepo.Close()

	// Create the user activity tracker and schedule a task that flushes it
	activityTracker := activity.NewTracker(driver.Users())
	flushActivity := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := activityTracker.Flush(ctx)
		if err != nil {
			log.Error().Err(err).Msg("could not flush user activity")
		} else if n > 0 {
			log.Info().Int("amount", n).Msg("flushed user activity")
		}
	}
	flushingTask := task.NewRepeating(flushActivity, cfg.ActivityFlushInterval)
	flushingTask.Start()
	defer flushingTask.Stop(true)

	// Start up the API
	log.Info().Str("address", cfg.ListenAddress).Msg("starting up the API...")
	apiService := &api.Service{
		Config:    cfg,
		Storage:   driver,
		Reference: referenceRepo,
		Activity:  activityTracker,
	}
	apiErrs := make(chan error, 1)
	apiService.Startup(apiErrs)
	go func() {
		err := <-apiErrs
		log.Fatal().Err(err).Msg("the API service raised an unexpected error")
	}()
	defer func() {
		log.Info().Msg("shutting down the API...")
		apiService.Shutdown()
	}()

	log.Info().Msg("done!")
	defer log.Info().Msg("shutting down...")

	// Wait for the application to be terminated
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)
	<-shutdown
}

// openStorage creates and initializes the configured storage driver
func openStorage(cfg *config.Config) (storage.Driver, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		driver := memory.New()
		if err := driver.Initialize(context.Background()); err != nil {
			return nil, err
		}
		err := driver.Seed(
			&reference.Gender{ID: 1, Name: "Male"},
			&reference.Gender{ID: 2, Name: "Female"},
		)
		return driver, err
	}

	driver := postgres.New(cfg.PostgresDSN)
	if err := driver.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return driver, nil
}
