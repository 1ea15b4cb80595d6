package main

import (
	"flag"
	"fmt"
	"os"
	"shiftplan/internal/di"
	"shiftplan/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the YAML config")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stdout")
	flag.StringVar(&flags.ViewURL, "view", "", "follow a read-only share link instead of serving")
	flag.Parse()

	if flags.ViewURL != "" {
		viewer, err := di.InitViewer(flags)
		if err != nil {
			fmt.Fprintf(os.Stderr, "viewer: %s\n", err)
			os.Exit(1)
		}
		if err := viewer.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "viewer: %s\n", err)
			os.Exit(1)
		}
		return
	}

	app, cleanup, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %s\n", err)
		os.Exit(1)
	}
	err = app.Run()
	cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "run: %s\n", err)
		os.Exit(1)
	}
}
