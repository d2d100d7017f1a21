package main

import (
	"remind/internal/config"
	"remind/internal/storage"
	"remind/internal/ui"
	"remind/internal/util"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	util.MustSucceed("load config", err)

	store, err := storage.Open(cfg.DBPath)
	util.MustSucceed("open database", err)
	defer func() {
		util.LogError("close database", store.Close())
	}()

	util.MustSucceed("run program", ui.Run(store, cfg))
}
