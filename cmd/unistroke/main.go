// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

const defaultDBPath = "./unistroke_db"

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "unistroke",
		Usage:     "Single-stroke gesture recognizer",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				EnvVars: []string{"UNISTROKE_CONFIG"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import templates from data files",
				ArgsUsage: "FILE...",
				Action:    importCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.BoolFlag{
						Name:  "skip-invalid",
						Usage: "Skip templates that fail validation instead of aborting",
					},
				},
			},
			{
				Name:   "seed",
				Usage:  "Import the built-in reference shapes",
				Action: seedCommand,
				Flags:  []cli.Flag{dbFlag()},
			},
			{
				Name:   "list",
				Usage:  "List stored templates in insertion order",
				Action: listCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Only list templates with this name",
					},
				},
			},
			{
				Name:   "remove",
				Usage:  "Remove templates by ID or name",
				Action: removeCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringSliceFlag{
						Name:  "id",
						Usage: "Template ID to remove (repeatable)",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Remove every template with this name",
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Write stored templates in the data file format",
				Action: exportCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (default: stdout)",
					},
				},
			},
			{
				Name:   "recognize",
				Usage:  "Classify a stroke against the stored templates",
				Action: recognizeCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "points",
						Aliases: []string{"p"},
						Usage:   `Stroke as "x,y x,y ..."`,
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read the stroke from a file in the same syntax",
					},
					&cli.Float64Flag{
						Name:  "min-distance",
						Usage: "Drop input points closer than this to the previous kept point (0 keeps all)",
					},
					&cli.BoolFlag{
						Name:  "builtin",
						Usage: "Recognize against the built-in shapes instead of the library",
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Report scores below this as unrecognized (overrides config)",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Log every template's distance and score",
					},
				},
			},
			{
				Name:      "init-config",
				Usage:     "Write a config file with the default settings",
				ArgsUsage: "PATH",
				Action:    initConfigCommand,
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to the template library directory",
		Value:   defaultDBPath,
		EnvVars: []string{"UNISTROKE_DB"},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
