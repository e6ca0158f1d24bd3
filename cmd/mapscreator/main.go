package main

import (
	"errors"
	"fmt"
	"image/png"
	"log"
	"os"
	"strings"

	"github.com/bodgit/mapscreator"
	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/urfave/cli/v2"
)

const (
	exitFailure           = 1
	exitDimensionMismatch = 2
	exitEncode            = 3
	exitDecode            = 4
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var compressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"fast":    png.BestSpeed,
	"best":    png.BestCompression,
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, mapscreator.ErrDimensionMismatch):
		return exitDimensionMismatch
	case errors.Is(err, mapscreator.ErrEncode):
		return exitEncode
	case errors.Is(err, mapscreator.ErrDecode):
		return exitDecode
	default:
		return exitFailure
	}
}

func exitError(err error) error {
	color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "An error occurred!")
	return cli.Exit(err, exitCode(err))
}

func newLogger(c *cli.Context) hclog.Logger {
	level := hclog.LevelFromString(c.String("log-level"))
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	if c.Bool("verbose") {
		level = hclog.Debug
	}

	colorOption := hclog.AutoColor
	if c.Bool("no-color") {
		colorOption = hclog.ColorOff
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        "mapscreator",
		Level:       level,
		Output:      os.Stderr,
		Color:       colorOption,
		DisableTime: true,
	})
}

func newOptions(c *cli.Context) (*mapscreator.Options, error) {
	level, ok := compressionLevels[strings.ToLower(c.String("compression"))]
	if !ok {
		return nil, fmt.Errorf("unknown compression level %q", c.String("compression"))
	}
	return &mapscreator.Options{
		Extension:        c.String("ext"),
		MaterialPath:     c.String("material-path"),
		Strict:           c.Bool("strict"),
		CompressionLevel: level,
	}, nil
}

func newMapsCreator(c *cli.Context, registry *mapscreator.Registry) (*mapscreator.MapsCreator, error) {
	opts, err := newOptions(c)
	if err != nil {
		return nil, err
	}
	return mapscreator.New(registry, newLogger(c), opts), nil
}

func description(registry *mapscreator.Registry) string {
	var b strings.Builder
	b.WriteString("Will output maps1, maps2, [and maps3 if required] in the most efficient way for a given material.\n")
	b.WriteString("This will read files with <texture_name>_channel, where channel can be one of:\n")
	for _, c := range registry.Channels() {
		fmt.Fprintf(&b, "   %s\n", c.Name)
	}
	return b.String()
}

func newApp(registry *mapscreator.Registry) *cli.App {
	app := cli.NewApp()

	app.Name = "mapscreator"
	app.Usage = "PBRStandard packed map creation utility"
	app.Description = description(registry)
	app.ArgsUsage = "TEXTURE"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "ext",
			EnvVars: []string{"MAPSCREATOR_EXT"},
			Value:   mapscreator.DefaultExtension,
			Usage:   "filename extension of source images",
		},
		&cli.StringFlag{
			Name:    "material-path",
			EnvVars: []string{"MAPSCREATOR_MATERIAL_PATH"},
			Usage:   "material path used for the map references in the .vmt",
		},
		&cli.StringFlag{
			Name:    "compression",
			EnvVars: []string{"MAPSCREATOR_COMPRESSION"},
			Value:   "default",
			Usage:   "PNG compression level (default, none, fast, best)",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail on source images that can't be decoded",
		},
		&cli.StringFlag{
			Name:    "log-level",
			EnvVars: []string{"MAPSCREATOR_LOG_LEVEL"},
			Value:   "info",
			Usage:   "log level (trace, debug, info, warn, error)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable colored output",
		},
	}

	app.Before = func(c *cli.Context) error {
		if c.Bool("no-color") {
			color.NoColor = true
		}
		color.New(color.FgCyan, color.Bold).Fprintln(c.App.ErrWriter, "MapsCreator")
		return nil
	}

	app.Action = func(c *cli.Context) error {
		m, err := newMapsCreator(c, registry)
		if err != nil {
			return cli.Exit(err, exitFailure)
		}

		if _, err := m.Pack(c.Args().First()); err != nil {
			if errors.Is(err, mapscreator.ErrNoTextureName) {
				color.New(color.FgYellow, color.Bold).Fprintln(c.App.ErrWriter, "You need to specify a texture name.")
				return cli.ShowAppHelp(c)
			}
			return exitError(err)
		}

		color.New(color.FgGreen, color.Bold).Fprintln(c.App.ErrWriter, "Done! You now need to convert to .vtf, and fixup the paths in your .vmt!")
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:        "scan",
			Usage:       "Scan a directory and pack every texture found",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "jobs",
					Aliases: []string{"j"},
					Value:   mapscreator.DefaultJobs,
					Usage:   "number of textures to pack concurrently",
				},
				&cli.StringFlag{
					Name:    "db",
					EnvVars: []string{"MAPSCREATOR_DB"},
					Usage:   "path to cache database, unchanged textures are skipped",
				},
				&cli.BoolFlag{
					Name:  "force",
					Usage: "pack every texture even if unchanged",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
				}

				m, err := newMapsCreator(c, registry)
				if err != nil {
					return cli.Exit(err, exitFailure)
				}

				opts := mapscreator.ScanOptions{
					Jobs:  c.Int("jobs"),
					Force: c.Bool("force"),
				}

				if c.String("db") != "" {
					cache, err := mapscreator.NewCache(c.String("db"))
					if err != nil {
						return cli.Exit(err, exitFailure)
					}
					defer cache.Close()
					opts.Cache = cache
				}

				if err := m.Scan(c.Context, c.Args().First(), opts); err != nil {
					return exitError(err)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	if err := newApp(mapscreator.DefaultRegistry()).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
