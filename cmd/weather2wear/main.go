// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package main implements the weather2wear web service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/weather2wear/weather2wear/internal/config"
	"github.com/weather2wear/weather2wear/internal/logger"
	"github.com/weather2wear/weather2wear/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT,
		os.Interrupt)
	defer cancel()

	// Initialize logger
	log := logger.New(slog.LevelError)

	// Local .env files can provide WEATHER2WEAR_* overrides
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Error("failed to load .env file", logger.Err(err))
		os.Exit(1)
	}

	// Read config
	confPath := flag.String("config", "", "path to the config file")
	flag.Parse()
	if *confPath == "" {
		*confPath = findConfigFile()
	}
	conf, err := config.New()
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	if *confPath != "" {
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
	}
	log = logger.New(conf.LogLevel)

	// Initialize the service
	srv, err := server.New(conf, log)
	if err != nil {
		log.Error("failed to initialize weather2wear service", logger.Err(err))
		os.Exit(1)
	}

	// Start the service
	log.Info("starting weather2wear service")
	if err = srv.Run(ctx); err != nil {
		log.Error("failed to run weather2wear service", logger.Err(err))
	}
	log.Info("shutting down weather2wear service")
}

// findConfigFile looks for a config file in the user's config directory
func findConfigFile() string {
	confDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.toml", "config.yaml", "config.yml", "config.json"} {
		candidate := filepath.Join(confDir, "weather2wear", name)
		if _, err = os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
