package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"telos/internal/config"
	"telos/internal/logger"
	"telos/internal/model"
	"telos/internal/repository"
	"telos/internal/state"
	"telos/internal/storage"
	"telos/internal/ui"
)

func main() {
	configFlag := flag.String("config", "", "path to config.toml")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Printf("failed to load .env: %v\n", err)
		os.Exit(1)
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogDevelopment, cfg.LogPath); err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Printf("failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	manager := state.New(repository.New(store), state.WithView(model.View(cfg.DefaultView)))
	if err := ui.Run(manager, cfg, configPath, firstLaunch); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
