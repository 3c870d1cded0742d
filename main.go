package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/csvdeck/csvdeck/internal/cli"
	"github.com/csvdeck/csvdeck/internal/core"
	logx "github.com/csvdeck/csvdeck/pkg/logger"
)

// appConfig holds the process-level settings. LLM settings are loaded later,
// only by the commands that talk to a model, so --list-templates and --help
// run without an API key.
type appConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func main() {
	// .env is a local-run convenience; absence is not an error
	_ = godotenv.Load(".env")

	var cfg appConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Init()
		logx.Fatal().Err(err).Msg("failed to process environment config")
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	os.Exit(cli.Execute())
}
