package main

import (
	"TTSAnnouncer/internal/adapter/mcpserver"
	"TTSAnnouncer/internal/app/provider"
	"TTSAnnouncer/internal/config"
	"TTSAnnouncer/internal/service/announcer"
	"TTSAnnouncer/internal/service/audiofile"
	"TTSAnnouncer/internal/service/tts"
	"TTSAnnouncer/internal/service/tts/player"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app — общие зависимости подкоманд, создаются в PersistentPreRunE.
type app struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
	sync   func()
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg, logger: zap.NewNop().Sugar(), sync: func() {}}

	cmd := &cobra.Command{
		Use:           "tts-mcp-server",
		Short:         "MCP server that speaks progress updates out loud",
		Long:          "Serves the announce_progress tool over stdio. Stdout carries MCP frames, logs go to stderr.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return a.initLogger()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
	cfg.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(newSayCommand(a), newVoicesCommand(a))
	return cmd
}

// initLogger: development-конфиг zap, вывод только в stderr.
func (a *app) initLogger() error {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	if !a.cfg.DebugMode {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.logger = logger.Sugar()
	a.sync = func() {
		// Sync на stderr-терминале может вернуть EINVAL, это не ошибка
		_ = logger.Sync()
	}
	return nil
}

// buildAnnouncer собирает провайдера, проигрыватель и чистит забытые аудиофайлы.
func (a *app) buildAnnouncer(ctx context.Context) (*announcer.Announcer, tts.Synthesizer, error) {
	synth, err := provider.New(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, nil, err
	}
	p := player.New(a.cfg.Player, runtime.GOOS)

	dir := a.cfg.AudioDir
	if dir == "" {
		dir = os.TempDir()
	}
	if a.cfg.AudioRetention > 0 {
		audiofile.NewCleaner(a.logger).Clean(dir, a.cfg.AudioRetention)
	}

	a.logger.Infow("Announcer ready",
		"provider", synth.Name(),
		"player", p.Name(),
		"mode", p.Mode().String(),
		"defaultVoice", a.cfg.DefaultVoice,
		"audioDir", dir,
	)
	return announcer.New(synth, p, announcer.Options{
		Enabled:          config.TTSEnabled,
		DefaultVoice:     a.cfg.DefaultVoice,
		MaxMessageLength: a.cfg.MaxMessageLength,
		AudioDir:         dir,
		KeepUnplayed:     a.cfg.Player.KeepUnplayed,
	}, a.logger), synth, nil
}

func (a *app) serve(ctx context.Context) error {
	ann, _, err := a.buildAnnouncer(ctx)
	if err != nil {
		return err
	}
	a.logger.Infow("Starting MCP server on stdio", "version", version, "DebugMode", a.cfg.DebugMode)

	err = mcpserver.Serve(ctx, mcpserver.NewServer(ann, a.logger, version))
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Errorw("MCP server stopped with error", "error", err)
		return err
	}
	a.logger.Infow("MCP server stopped")
	return nil
}
