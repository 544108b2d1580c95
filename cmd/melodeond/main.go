// Package main provides the playback daemon entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/dkrasnov/melodeon/internal/app/hotkey"
	"github.com/dkrasnov/melodeon/internal/app/player"
	"github.com/dkrasnov/melodeon/internal/domain/playlist"
	"github.com/dkrasnov/melodeon/internal/infra/audio"
	"github.com/dkrasnov/melodeon/internal/infra/config"
	"github.com/dkrasnov/melodeon/internal/infra/input"
	"github.com/dkrasnov/melodeon/internal/infra/ipc"
	"github.com/dkrasnov/melodeon/internal/infra/logger"
)

const (
	pidFile   = "/tmp/melodeon.pid"
	daemonEnv = "MELODEON_DAEMONIZED"
)

var (
	app        = kingpin.New("melodeond", "Background media-playback daemon")
	configPath = app.Flag("config", "Path to config file").Short('c').Default(config.DefaultPath).String()
	musicPath  = app.Flag("path", "Music directory (persisted to config)").Short('p').String()
	socketPath = app.Flag("socket", "Command socket path").Default(ipc.DefaultSocketPath).String()
	daemonize  = app.Flag("daemon", "Detach into the background").Short('d').Bool()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{Output: "stdout", Level: "info"}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Re-exec detached when asked to daemonize; the child recognises
	// itself through the environment marker.
	if *daemonize && os.Getenv(daemonEnv) == "" {
		if err := respawn(); err != nil {
			zlog.Fatal().Msgf("Failed to daemonize: %v", err)
		}
		return
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if *musicPath != "" {
		cfg.MusicDir = *musicPath
		if err := cfg.Save(*configPath); err != nil {
			zlog.Fatal().Msgf("Failed to persist music directory: %v", err)
		}
	}

	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Daemon error: %v", err)
		os.Exit(1)
	}
}

// run executes the daemon. Using a separate function ensures defer
// statements run even when returning with an error.
func run(cfg *config.Config) error {
	musicDir := cfg.MusicDir
	if musicDir == "" {
		musicDir = "."
	}

	list, err := playlist.Scan(musicDir)
	if err != nil {
		return fmt.Errorf("scanning music directory: %w", err)
	}

	opts, err := cfg.AudioOptions()
	if err != nil {
		return err
	}

	sink, err := audio.NewSpeakerSink(opts)
	if err != nil {
		return fmt.Errorf("opening audio output: %w", err)
	}
	defer sink.Close()
	sink.SetVolume(cfg.Volume)

	if err := writePID(); err != nil {
		zlog.Warn().Err(err).Msg("Failed to write pid file")
	}
	defer os.Remove(pidFile)

	dispatcher := player.NewDispatcher(list, sink)

	server, err := ipc.NewServer(*socketPath, dispatcher.Apply)
	if err != nil {
		return fmt.Errorf("starting command listener: %w", err)
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go server.Serve()

	hk := input.NewHook()
	go hk.Run(ctx)

	matcher := hotkey.NewMatcher(cfg.Hotkeys)
	matcherDone := make(chan struct{})
	go func() {
		defer close(matcherDone)
		matcher.Run(ctx, hk.Events(), dispatcher.Apply)
	}()

	supervisor := player.NewSupervisor(dispatcher, player.DefaultPollInterval)
	go supervisor.Run(ctx)

	if err := dispatcher.Start(); err != nil {
		// The supervisor advances past a broken first track.
		zlog.Warn().Err(err).Msg("First track failed to load")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
		dispatcher.Shutdown()
	case <-dispatcher.Done():
		zlog.Info().Msg("Stop command received, shutting down...")
	}

	// Orderly teardown: stop accepting commands, stop capture, join the
	// matcher, then drop the sink (deferred).
	server.Close()
	cancel()
	<-matcherDone

	zlog.Info().Msg("Daemon stopped")
	return nil
}

// respawn re-executes the daemon detached from the terminal session.
func respawn() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), daemonEnv+"=1")
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}

	zlog.Info().Msgf("Daemon started: pid=%d", cmd.Process.Pid)
	return nil
}

func writePID() error {
	return os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}
