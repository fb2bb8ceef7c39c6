package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tlsedge-go/internal/infra/buildinfo"
	"github.com/yndnr/tlsedge-go/internal/infra/confloader"
	"github.com/yndnr/tlsedge-go/internal/server/config"
	"github.com/yndnr/tlsedge-go/internal/server/supervisor"
	"github.com/yndnr/tlsedge-go/internal/telemetry/logger"
	"github.com/yndnr/tlsedge-go/internal/telemetry/metric"
)

func main() {
	if err := app().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func app() *cli.App {
	return &cli.App{
		Name:    "tlsedge-server",
		Usage:   "TLS server with a plaintext-to-HTTPS redirect listener",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to an optional YAML configuration file",
				EnvVars: []string{"TLSEDGE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Path to a dotenv file, skipped when missing",
				EnvVars: []string{"TLSEDGE_ENV_FILE"},
				Value:   "example.env",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c.String("config"), c.String("env-file"))
		},
	}
}

func run(configFile, envFile string) error {
	cfg, err := loadConfig(configFile, envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sink, err := logger.OpenSink(logger.SinkConfig{
		ToFile: cfg.Log.ToFile,
		Dir:    cfg.Log.Dir,
	})
	if err != nil {
		return fmt.Errorf("open log sink: %w", err)
	}
	defer sink.Close()

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: sink,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting tlsedge-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", configFile,
		"env_file", envFile,
		"log_file", sink.Path())

	sup := supervisor.New(
		supervisor.ConfigFrom(cfg, info.Version),
		logger.Std(log),
		metric.Global(),
	)

	// No signal handling: the process runs until the secure listener stops.
	if err := sup.Run(context.Background()); err != nil {
		log.Error("server stopped", "error", err)
		return err
	}
	return nil
}

// loadConfig loads defaults, then the YAML file, the env file and the
// process environment, and validates the result.
func loadConfig(configFile, envFile string) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{
		confloader.WithEnvMapping(config.EnvKeys, config.EnvAliases),
	}
	if envFile != "" {
		opts = append(opts, confloader.WithEnvFile(envFile))
	}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	if err := confloader.NewLoader(opts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
