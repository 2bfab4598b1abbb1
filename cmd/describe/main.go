// Command describe sends an image to a local vision model and prints the raw
// response. All settings come from INFERENCE_* environment variables.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/leca/image-store/internal/config"
	"github.com/leca/image-store/internal/inference"
)

func main() {
	cfg, err := config.LoadInference()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.Level(cfg.LogLevel, false),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Starting image analysis process...")
	raw, err := inference.Analyze(ctx, cfg, inference.NewClient(cfg), os.Stdout)
	if err != nil {
		slog.Error("analysis failed", "image", cfg.ImagePath, "model", cfg.Model, "error", err)
		fmt.Printf("\nFailed to complete analysis: %v\n\n%s\n", err, inference.Hints)
		stop()
		os.Exit(1)
	}

	fmt.Println("\nAnalysis complete!")
	fmt.Println("Response:", raw)
}
