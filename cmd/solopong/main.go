package main

import (
	"fmt"
	"os"

	"github.com/diegok/solopong/internal/app"
	"github.com/diegok/solopong/internal/config"
)

func main() {
	cfg, err := config.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	if cfg.PrintConfig {
		if err := cfg.WriteYAML(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	application := app.NewApp(cfg)
	if cfg.ReplayPath != "" {
		err = application.RunReplay()
	} else {
		err = application.Run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  solopong [options]                Play against the AI")
	fmt.Fprintln(os.Stderr, "  solopong --multiplayer [options]  Two players on one keyboard")
	fmt.Fprintln(os.Stderr, "  solopong --replay <file>          Play back a recording")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  --difficulty <level>  easy, medium or hard (default: medium)")
	fmt.Fprintln(os.Stderr, "  --theme <name>        classic, neon, retro or dark (default: classic)")
	fmt.Fprintln(os.Stderr, "  --points <n>          Points to win (default: 10)")
	fmt.Fprintln(os.Stderr, "  --seed <n>            Random seed for serves (default: clock)")
	fmt.Fprintln(os.Stderr, "  --config <file>       Read settings from a YAML file")
	fmt.Fprintln(os.Stderr, "  --record <file>       Record every tick for --replay")
	fmt.Fprintln(os.Stderr, "  --stats <file>        Append scored points to a CSV file")
	fmt.Fprintln(os.Stderr, "  --log <file>          Write a debug log")
	fmt.Fprintln(os.Stderr, "  --mute                Disable sound")
	fmt.Fprintln(os.Stderr, "  --print-config        Print the effective settings as YAML and exit")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  solopong --difficulty hard --theme neon")
	fmt.Fprintln(os.Stderr, "  solopong --multiplayer --points 5 --record match.rec")
	fmt.Fprintln(os.Stderr, "  solopong --replay match.rec")
	fmt.Fprintln(os.Stderr, "  solopong --print-config > solopong.yaml")
}
