// Command courier serves a directory of files over HTTP,
// answering Range requests with partial content.
package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/xy-planning-network/courier/server"
)

func main() {
	if err := command().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func command() *cli.Command {
	return &cli.Command{
		Name:  "courier",
		Usage: "Serve files with byte-range support",
		Description: `Serve the files in a directory under a path prefix.

Settings are read from environment variables (and a .env file), then a YAML file
passed with --config, then the flags below.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory to serve files from",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Path prefix files are served under (e.g., /files)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
			},
			&cli.BoolFlag{
				Name:  "strict-ranges",
				Usage: "Respond 416 with Content-Range: bytes */size to unsatisfiable ranges",
			},
			&cli.BoolFlag{
				Name:  "maintenance",
				Usage: "Respond 503 to every request",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config(cmd)
	if err != nil {
		return err
	}

	s, err := server.New(server.WithConfig(cfg))
	if err != nil {
		return err
	}

	return s.Guide(ctx)
}

// config layers the flags set on cmd over the configuration file or environment.
func config(cmd *cli.Command) (server.Config, error) {
	cfg := server.NewConfig()
	if path := cmd.String("config"); path != "" {
		var err error
		if cfg, err = server.LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if cmd.IsSet("dir") {
		cfg.StaticDir = cmd.String("dir")
	}

	if cmd.IsSet("prefix") {
		cfg.FilesPrefix = cmd.String("prefix")
	}

	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}

	if cmd.IsSet("port") {
		cfg.Port = cmd.String("port")
	}

	if cmd.IsSet("strict-ranges") {
		cfg.StrictRanges = cmd.Bool("strict-ranges")
	}

	if cmd.IsSet("maintenance") {
		cfg.Maintenance = cmd.Bool("maintenance")
	}

	return cfg, cfg.Valid()
}
