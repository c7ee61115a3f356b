package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/ctree/internal/output"
	"github.com/panbanda/ctree/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		output.NewDiag(!color.NoColor, false).Error("%v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ctree",
		Usage:   "Query decompiled function trees",
		Version: version,
		Description: `ctree lifts decompiler pseudocode (C or C++) into an expression and
instruction tree and answers structural questions about it: which statement
holds an expression, where that statement sits in its block, which of a set
of statements are outermost, and which expressions match a filter.

Addresses are byte offsets into the file plus the configured base.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{config.EnvConfig},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, markdown, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Pseudocode language (c, cpp); detected from the extension by default",
			},
			&cli.StringFlag{
				Name:  "base",
				Usage: "Address added to every byte offset, e.g. 0x401000",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			funcsCmd(),
			stmtCmd(),
			posCmd(),
			topmostCmd(),
			findCmd(),
			treeCmd(),
		},
	}
}
