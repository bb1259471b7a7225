package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/memory-server/internal/app"
	"github.com/vancomm/memory-server/internal/config"
	"github.com/vancomm/memory-server/internal/memory"
)

var (
	log = logrus.New()

	configPath string
	cfg        *config.Config
)

func init() {
	const (
		defaultConfigPath = "/run/config.json"
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if cfg.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if cfg.LogFile != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to open log file: ", err)
		}
		log.AddHook(hook)
	}

	memory.Log = log
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	var err error
	cfg, err = config.ReadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
		log.Warnf("%s not found, using defaults", configPath)
	} else if err != nil {
		log.Fatal(err)
	}

	setupLogging()

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	if err := cfg.Params().Validate(); err != nil {
		log.Fatal("invalid game parameters: ", err)
	}

	if err := app.New(log, cfg, quartz.NewReal()).Start(mainCtx); err != nil {
		log.Fatal(err)
	}
	log.Info("shut down")
}
