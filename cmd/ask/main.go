// Command ask answers a single weather query from the command line:
//
//	ask "what's the weather in Paris tomorrow"
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-activity-assistant/internal/app"
	"github.com/i474232898/weather-activity-assistant/internal/config"
	"github.com/i474232898/weather-activity-assistant/internal/observability"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, `usage: ask "what's the weather in Paris tomorrow"`)
		os.Exit(2)
	}
	q := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// Logs go to stderr so stdout only carries the answer.
	log.Logger = observability.NewLogger(os.Stderr, cfg.ServiceName, "development")
	if cfg.LogEnv != "development" {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	// The CLI is one-shot; a process-local cache would never be hit.
	if cfg.CacheDriver == config.CacheMemory {
		cfg.CacheDriver = config.CacheNone
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Close()

	res := a.Service.Process(ctx, q)
	fmt.Println(res.Text)
	if !res.OK() {
		a.Close()
		os.Exit(1)
	}
}
