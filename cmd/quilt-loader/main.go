package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/TheEpicBlock/quilt-loader/internal/config"
	"github.com/TheEpicBlock/quilt-loader/internal/discovery"
	"github.com/TheEpicBlock/quilt-loader/internal/loader"
	"github.com/TheEpicBlock/quilt-loader/internal/logging"
	"github.com/TheEpicBlock/quilt-loader/internal/observability"
)

func main() {
	configPath := flag.String("config", "quilt.toml", "path to the loader config")
	flag.Parse()

	logging.ConfigureRuntime()
	observability.RegisterMetrics()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log.Info().Str("path", *configPath).Str("side", cfg.Side).Msg("loaded config")

	var devPaths []string
	if cfg.Development {
		devPaths = cfg.Classpath
	}
	scanner := discovery.NewScanner(discovery.Config{
		DevPaths: devPaths,
		Logger:   log.Logger,
	})
	candidates := scanner.Scan(cfg.ModsDir)

	l := loader.New(loader.Config{
		Side:   loader.FixedSide(cfg.HostSide()),
		Bus:    loader.NewBus(),
		Logger: log.Logger,
	})
	if err := l.Load(candidates); err != nil {
		log.Fatal().Err(err).Msg("mod load aborted")
	}

	for i, c := range l.Mods() {
		fmt.Printf("%2d. %s %s (%s)\n", i+1, c.Meta.Ref(), c.Meta.RawVersion, c.Origin)
	}
}
