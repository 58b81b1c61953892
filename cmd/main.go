package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/dargueta/lowpix/codecs"
	"github.com/urfave/cli/v2"
)

// application is the state shared by every command once flags and the config
// file have been processed.
type application struct {
	config *Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	state := &application{stdout: stdout, stderr: stderr}

	return &cli.App{
		Name:      "lowpix",
		Usage:     "Compress and inspect GBA-style asset blocks",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "load defaults from this YAML `FILE`",
				EnvVars: []string{configEnvVar},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug messages",
			},
		},
		Before: state.setUp,
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "Compress a file into a block",
				ArgsUsage: "INPUT_FILE OUTPUT_FILE",
				Action:    state.encodeFile,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "codec",
						Aliases: []string{"c"},
						Usage:   "one of " + strings.Join(codecs.Names(), ", "),
					},
					&cli.BoolFlag{
						Name:  "gzip",
						Usage: "wrap the block in gzip",
					},
				},
			},
			{
				Name:      "decode",
				Usage:     "Expand a block, detecting the codec from its tag",
				ArgsUsage: "INPUT_FILE OUTPUT_FILE",
				Action:    state.decodeFile,
			},
			{
				Name:      "stats",
				Usage:     "Compress files with every codec and report the results as CSV",
				ArgsUsage: "FILE...",
				Action:    state.printStats,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "baselines",
						Usage: "include lz4 and zstd for comparison",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the report to `FILE` instead of stdout",
					},
				},
			},
		},
	}
}

func (a *application) setUp(context *cli.Context) error {
	cfg, err := LoadConfig(context.String("config"))
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if context.Bool("verbose") {
		level = slog.LevelDebug
	}

	a.config = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.logger.Debug("configuration loaded",
		"path", context.String("config"),
		"codec", cfg.Codec,
		"gzip", cfg.Gzip,
	)
	return nil
}
