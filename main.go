package main

import (
	"fmt"
	"log/slog"
	"os"

	cmdcalculate "demography-stats/command/calculate"
	cmdexport "demography-stats/command/export"
	cmdweb "demography-stats/command/web"
)

// Regional demography statistics: loads the municipal indicator tables and
// serves shares, rankings and correlations.
// Usage:
//   demography-stats web [-addr :8080] [-data ./data] [-ui ./ui/dist]
//   demography-stats calculate [-year 2023] [-out ./data/derived]
//   demography-stats export [-out ./export] [-format csv,xlsx]

const usage = `usage: demography-stats web [-addr :8080] [-data ./data] [-ui ./ui/dist] | calculate [-year <yyyy>] [-out <dir>] [-location <name>] | export [-out <dir>] [-format csv,xlsx] [-indicator <label>]
ENV: set CONFIG_PATH to point to a YAML config file (default ./config.yml)`

func main() {
	args := os.Args
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))

	if len(args) > 1 {
		sub := args[1]
		rest := append([]string{}, args[2:]...)
		var run func([]string) error
		switch sub {
		case "web":
			run = cmdweb.Run
		case "calculate":
			run = cmdcalculate.Run
		case "export":
			run = cmdexport.Run
		}
		if run != nil {
			if err := run(rest); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
	}
	fmt.Fprintln(os.Stderr, usage)
	os.Exit(2)
}
