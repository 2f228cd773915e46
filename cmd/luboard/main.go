package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mrlaolu/luBoard/internal/api/admin"
	"github.com/Mrlaolu/luBoard/internal/api/user"
	"github.com/Mrlaolu/luBoard/internal/config"
	"github.com/Mrlaolu/luBoard/internal/contest"
	"github.com/Mrlaolu/luBoard/internal/loader"
	"github.com/Mrlaolu/luBoard/internal/pubsub"

	"go.uber.org/zap"
)

var Version = "dev-build"

func main() {

	fmt.Fprintf(os.Stderr, "luBoard %s - contest scoreboard replay\n\n", Version)

	// config
	var configPath string
	flag.StringVar(&configPath, "c", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// logger
	logger, err := newLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	broker := pubsub.NewBroker(cfg.Events.History)
	opts := contest.Options{
		DurationSeconds: cfg.Contest.DurationSeconds(),
		AutoplayAt:      cfg.Contest.AutoplayAt,
		Broker:          broker,
	}

	// contest log; a missing source leaves the board unavailable until a reload
	var state *contest.State
	contestLog, err := loader.Load(cfg.Source)
	if err != nil {
		zap.S().Errorf("failed to load contest log, board is unavailable until reload: %v", err)
		state = contest.NewUnavailable(err, opts)
	} else {
		state = contest.New(contestLog, opts)
		zap.S().Infof("loaded %d problems, %d teams and %d submissions",
			len(contestLog.Problems), len(contestLog.Teams), len(contestLog.Submissions))
	}

	servers := []*http.Server{
		{Addr: cfg.Listen, Handler: user.NewUserRouter(cfg, state, broker)},
	}
	if cfg.Admin.Enabled {
		servers = append(servers, &http.Server{Addr: cfg.Admin.Listen, Handler: admin.NewAdminRouter(cfg, state)})
	}

	// start servers
	for _, srv := range servers {
		go func(srv *http.Server) {
			zap.S().Infof("starting server at %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zap.S().Fatalf("failed to start server at %s: %v", srv.Addr, err)
			}
		}(srv)
	}

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("shutting down server...")

	broker.CloseTopic(pubsub.TopicBoard)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			zap.S().Warnf("server at %s did not shut down cleanly: %v", srv.Addr, err)
		}
	}
}

// newLogger builds a development logger for debug level and a production one
// otherwise, also writing to cfg.File when set.
func newLogger(cfg config.Logger) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Level == "debug" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		if cfg.Level != "" {
			level, err := zap.ParseAtomicLevel(cfg.Level)
			if err != nil {
				return nil, err
			}
			zc.Level = level
		}
	}
	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}
	return zc.Build()
}
