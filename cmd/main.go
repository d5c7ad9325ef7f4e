package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/patchbridge-backend/internal/app"
	"github.com/yungbote/patchbridge-backend/internal/platform/shutdown"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("server exited: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := shutdown.NotifyContext(context.Background())
	defer stop()

	a, err := app.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()

	return a.Run(ctx)
}
