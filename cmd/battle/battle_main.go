package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	battleactor "Ironmarch/internal/battle/actor"
	"Ironmarch/internal/battle/app"
	"Ironmarch/internal/battle/combat"
	"Ironmarch/internal/battle/entity"
	"Ironmarch/internal/battle/infra/notify"
	"Ironmarch/internal/battle/infra/persistence/mongodb"
	"Ironmarch/internal/battle/infra/persistence/mysql"
	"Ironmarch/internal/battle/infra/schedule"
	"Ironmarch/internal/battle/interfaces/handler"
	"Ironmarch/internal/shared/gameconfig/military"
	"Ironmarch/internal/shared/infrastructure/db"
	sharedmongo "Ironmarch/internal/shared/infrastructure/mongo"
	"Ironmarch/internal/shared/logs"
	"Ironmarch/internal/shared/serverconfig"
	transporthttp "Ironmarch/internal/shared/transport/http"
)

func main() {
	_ = godotenv.Load()
	serverconfig.Load()
	if err := logs.Init("battle", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	logger := logs.Logger()
	military.Load()

	gormDB, err := db.Open(serverconfig.Conf.MySQL)
	if err != nil {
		logs.Fatal("open mysql failed", zap.Error(err))
	}

	mongoClient, err := sharedmongo.Open(serverconfig.Conf.MongoDB, logger)
	if err != nil {
		logs.Fatal("open mongodb failed", zap.Error(err))
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	mongoDB := mongoClient.Database(serverconfig.Conf.MongoDB.Database)

	armyRepo := mysql.NewArmyRepo(gormDB)
	regionRepo := mysql.NewRegionRepo(gormDB)
	reportRepo := mongodb.NewReportRepo(mongoDB)

	hub := notify.NewHub()
	defer hub.Close()

	settlement := app.NewSettlement(armyRepo, regionRepo, reportRepo, hub)
	engine := combat.NewEngine(serverconfig.Conf.Logic.TickCap)
	arrivals := app.NewArrivalService(armyRepo, regionRepo, engine, settlement)

	rt := battleactor.NewRuntime(armyRepo, arrivals, 0)
	defer rt.Shutdown()

	timers := schedule.NewMarchTimers(func(ctx context.Context, id entity.ArmyID) {
		if _, err := rt.HandleArrival(ctx, id); err != nil {
			logs.Error("arrival resolution failed", zap.Int64("army_id", int64(id)), zap.Error(err))
		}
	})
	defer timers.Stop()

	marches := app.NewMarchService(armyRepo, regionRepo, timers, serverconfig.Conf.Logic.BaseMarchMinutes)

	rearmMarchTimers(armyRepo, timers)

	opsHost := serverconfig.Conf.OpsServer.Host
	if opsHost == "" {
		opsHost = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", opsHost, serverconfig.Conf.OpsServer.Port)

	server := transporthttp.NewHttpServer(addr, nil, logger)
	handler.NewBattleHandler(marches, reportRepo, hub).Register(server.Group())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("battle server started", zap.String("addr", addr))
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("battle http serve failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logs.Error("server exited abnormally", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logs.Error("http shutdown failed", zap.Error(err))
	}
}

// rearmMarchTimers restores arrival timers for armies persisted mid-march.
// Overdue arrivals fire immediately.
func rearmMarchTimers(armyRepo *mysql.ArmyRepo, timers *schedule.MarchTimers) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	marching, err := armyRepo.Marching(ctx)
	if err != nil {
		logs.Error("list marching armies failed", zap.Error(err))
		return
	}
	for _, a := range marching {
		timers.Schedule(a.ID, a.ArrivalAt)
	}
	if len(marching) > 0 {
		logs.Info("march timers re-armed", zap.Int("count", len(marching)))
	}
}
