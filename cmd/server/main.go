package main

import (
	"context"
	"errors"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/votingapp/api/internal/adapters/handler/http"
	"github.com/votingapp/api/internal/adapters/repository/dynamodb"
	"github.com/votingapp/api/internal/adapters/repository/memory"
	"github.com/votingapp/api/internal/adapters/session"
	"github.com/votingapp/api/internal/config"
	"github.com/votingapp/api/internal/core/ports"
	"github.com/votingapp/api/internal/core/services"
)

func main() {
	cfg := config.Load()

	logrus.WithFields(logrus.Fields{
		"cpu_stress_factor": cfg.CPUStressFactor,
		"mem_stress_factor": cfg.MemStressFactor,
		"restaurants":       cfg.Restaurants,
	}).Info("starting voting app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := selectVoteStore(ctx, cfg)

	voteService := services.NewVoteService(store, cfg.Restaurants, cfg.StoreTimeout)
	stressService := services.NewStressService(cfg.CPUStressFactor, cfg.MemStressFactor)
	authService := services.NewAuthService(cfg.VotesPassword, session.NewMemoryStore(), cfg.SessionTTL)
	cookies := session.NewCookieManager(cfg.SessionSecret)

	voteHandler := http.NewVoteHandler(voteService, stressService, authService, cookies)
	dashboardHandler := http.NewDashboardHandler(voteService, authService, cookies, cfg.Restaurants)

	server := &stdhttp.Server{
		Addr:    cfg.ListenAddr,
		Handler: http.NewHandler(voteHandler, dashboardHandler, cfg.Restaurants),
	}

	go func() {
		logrus.WithField("addr", cfg.ListenAddr).Info("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("shutdown failed")
	}
}

// selectVoteStore picks the backend once at startup. Production mode tries
// DynamoDB and degrades to the seeded in-memory store when the client cannot
// be built or the table is unreachable; request handlers never fall back.
func selectVoteStore(ctx context.Context, cfg config.Config) ports.VoteStore {
	if cfg.DevelopmentMode {
		logrus.Info("running in development mode with in-memory store")
		return memoryStore()
	}

	store, err := dynamodb.NewVoteStore(ctx, cfg.DDBRegion, cfg.DDBTableName)
	if err != nil {
		logrus.WithError(err).Warn("dynamodb unavailable, falling back to development mode")
		return memoryStore()
	}

	logrus.WithFields(logrus.Fields{
		"region": cfg.DDBRegion,
		"table":  cfg.DDBTableName,
	}).Info("running in production mode with dynamodb")
	return store
}

func memoryStore() ports.VoteStore {
	return memory.NewVoteStore(memory.DevSeed)
}
