package main

import (
	"context"
	"fmt"
	"os"

	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/kvstore"
	"github.com/diwise/medication-reminder/internal/pkg/infrastructure/logging"
	"github.com/diwise/medication-reminder/internal/pkg/presentation/cli"
)

func main() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}

	ctx, _ := logging.NewLoggerWithWriter(context.Background(), os.Stderr, "medctl", "", level)

	if err := cli.NewRootCommand(kvstore.Open).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
