package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"snag/audius"
	"snag/audius/types"
	"snag/config"
	"snag/constant"
	"snag/engine"
	"snag/log"
)

func main() {
	logger := log.NewDefault()

	//nolint:exhaustruct
	app := &cli.Command{
		Name:                  "snag",
		Version:               constant.Version,
		Metadata:              map[string]any{"compiled_at": constant.CompileTime},
		Suggest:               true,
		Usage:                 "Audius content archiver",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			//nolint:exhaustruct
			&cli.StringFlag{
				Name:     "config",
				Usage:    "Config file path",
				Required: false,
			},
		},
		Commands: []*cli.Command{
			//nolint:exhaustruct
			{
				Name:      "download",
				Usage:     "Resolve an identifier and build its asset archive",
				ArgsUsage: "<identifier>",
				Flags: []cli.Flag{
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Content type: artist, track, playlist, or album",
						Required: true,
					},
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output directory",
						Value: ".",
					},
					//nolint:exhaustruct
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Artist list page size override",
					},
					//nolint:exhaustruct
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Artist list page offset override",
					},
					//nolint:exhaustruct
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Artist list sort field override",
					},
				},
				Action: download,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); nil != err {
		if errors.Is(err, context.Canceled) {
			logger.Trace().Msg("Application was canceled")
			os.Exit(1)
		}

		var exitCode exitCodeError
		if errors.As(err, &exitCode) {
			os.Exit(int(exitCode))
		}

		logger.Error().Err(err).Msg("Application exited with error")
		os.Exit(10)
	}
}

type exitCodeError int

func (e exitCodeError) Error() string {
	return "error with exit code: " + strconv.Itoa(int(e))
}

func download(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.NewDefault()

	if err := godotenv.Load(); nil != err {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load .env file: %v", err)
		}
		logger.Debug().Msg(".env file was not found")
	} else {
		logger.Debug().Msg(".env file was loaded")
	}

	conf, err := config.Load(cmd.String("config"))
	if nil != err {
		return fmt.Errorf("load config: %v", err)
	}

	logger = log.FromConfig(conf.Log)

	logger.Debug().Dict("config", conf.ToDict()).Msg("Config loaded")

	identifier := cmd.Args().First()
	if identifier == "" {
		return errors.New("an identifier argument is required")
	}

	kind, err := types.ParseContentKind(cmd.String("type"))
	if nil != err {
		return fmt.Errorf("invalid --type value: %w", err)
	}

	page := audius.PageParams{
		Limit:  int(cmd.Int("limit")),
		Offset: int(cmd.Int("offset")),
		Sort:   cmd.String("sort"),
	}

	result, err := engine.New(conf).Build(ctx, logger, identifier, kind, page)
	if nil != err {
		return fmt.Errorf("failed to build archive: %w", err)
	}

	outPath := filepath.Join(cmd.String("out"), result.Filename)
	if err := os.WriteFile(outPath, result.Archive, 0o644); nil != err {
		return fmt.Errorf("failed to write archive file: %v", err)
	}

	logger.Info().Str("path", outPath).Int("size", len(result.Archive)).Msg("Archive written")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "File"})
	for i, f := range result.Files {
		t.AppendRow(table.Row{i + 1, f})
	}
	t.Render()

	for _, w := range result.Warnings {
		logger.Warn().Msg(w)
	}

	return nil
}
