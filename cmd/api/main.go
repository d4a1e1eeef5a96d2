package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"users-api/cmd/api/app"
	"users-api/cmd/api/server"

	"github.com/joho/godotenv"
)

func main() {
	// Variables already present in the environment win over both files.
	if err := loadDotEnv(".env", "../.env"); err != nil {
		log.Printf("ignoring env file: %v", err)
	}

	ctx, stop := server.WithSignal(context.Background())
	defer stop()

	application, err := app.New(ctx)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(ctx); err != nil {
		stop()
		log.Fatalf("application exited with error: %v", err)
	}
}

// loadDotEnv loads each file that exists. Missing files are skipped; files
// that fail to parse are reported.
func loadDotEnv(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
