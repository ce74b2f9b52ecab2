package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	server "urbanpulse/server"
	"urbanpulse/server/internal/config"
	servernet "urbanpulse/server/internal/net"
	"urbanpulse/server/internal/world"
)

// Run wires the whole server together and blocks until the context is
// canceled or a component fails.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	w := world.New(world.Config{
		VehicleCount:      cfg.Game.VehicleCount,
		NPCCount:          cfg.Game.NPCCount,
		MissionCount:      cfg.Game.MissionCount,
		WorldExtent:       cfg.Game.WorldExtent,
		PlayerSpawnExtent: cfg.Game.PlayerSpawnExtent,
		VehicleRadius:     cfg.Game.VehicleRadius,
		MissionRadius:     cfg.Game.MissionRadius,
		StartingMoney:     cfg.Game.StartingMoney,
		Seed:              cfg.Game.Seed,
	}, logger)

	hubCfg := server.DefaultHubConfig()
	hubCfg.TickRate = cfg.Game.TickRate
	hub := server.NewHub(w, hubCfg, logger)

	clientDir, err := servernet.ResolveClientDir(cfg.Server.ClientDir)
	if err != nil {
		logger.Warn("serving without static client", zap.Error(err))
		clientDir = ""
	}

	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{
		ClientDir: clientDir,
		Logger:    logger,
	})
	srv := &http.Server{Addr: cfg.Server.BindAddress, Handler: handler}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(ctx)
	})

	g.Go(func() error {
		logger.Info("server listening",
			zap.String("addr", cfg.Server.BindAddress),
			zap.String("client_dir", clientDir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
