package main

import (
	"donosync/internal/di"
	"donosync/internal/structures"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	debug := flag.Bool("debug", false, "log to the console as well")
	flag.Parse()

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %s\n", err)
		os.Exit(1)
	}

	app, err := di.InitApp(&structures.CliFlags{ConfigPath: *configPath, DebugMode: *debug})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %s\n", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "run: %s\n", err)
		os.Exit(1)
	}
}
