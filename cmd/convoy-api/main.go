// README: Entry point; loads config, wires services, starts HTTP server and planner intake.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"convoy/internal/config"
	httptransport "convoy/internal/http"
	"convoy/internal/infra"
	"convoy/internal/logger"
	"convoy/internal/modules/asset"
	"convoy/internal/modules/directory"
	"convoy/internal/modules/movement"
	"convoy/internal/modules/planner"
	"convoy/internal/modules/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		zlog.Fatal("db init: " + err.Error())
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	var geocoder directory.Geocoder
	if cfg.Maps.APIKey != "" {
		mapsClient, err := infra.NewMaps(cfg.Maps.APIKey)
		if err != nil {
			zlog.Fatal("maps init: " + err.Error())
		}
		geocoder = directory.NewMapsGeocoder(mapsClient)
	}

	directoryStore := directory.NewStore(dbPool)
	directorySvc := directory.NewService(directoryStore, directory.NewRedisNameCache(redisClient), geocoder, zlog)

	ledgerStore := movement.NewStore(dbPool)

	assetStore := asset.NewStore(dbPool)
	assetSvc := asset.NewService(assetStore, ledgerStore, directorySvc, zlog)

	tripStore := trip.NewStore(dbPool)
	tripSvc := trip.NewService(tripStore, zlog)

	handler := httptransport.NewRouter(tripSvc, assetSvc, directorySvc, zlog)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	if cfg.Planner.Endpoint != "" {
		plannerSvc := planner.NewService(
			planner.NewClient(cfg.Planner.Endpoint),
			planner.NewRedisDedupe(redisClient),
			tripSvc,
			cfg.Planner,
			zlog,
		)
		go plannerSvc.RunIntake(ctx)
	}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	zlog.Info("listening on " + cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal(err.Error())
	}
}
