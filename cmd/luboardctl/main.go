package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Mrlaolu/luBoard/internal/config"
	"github.com/Mrlaolu/luBoard/internal/contest"
	"github.com/Mrlaolu/luBoard/internal/export"
	"github.com/Mrlaolu/luBoard/internal/loader"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cliApp := &cli.App{
		Name:  "luboardctl",
		Usage: "offline tools for luBoard contest logs",
		Commands: []*cli.Command{
			convertCommand(),
			exportCommand(),
			fakeCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var sourceFlags = []cli.Flag{
	&cli.StringFlag{Name: "type", Value: config.SourceDat, Usage: "source type: dat or sqlite"},
	&cli.StringSliceFlag{Name: "ignore-team", Usage: "team name to drop while loading (repeatable)"},
}

func sourceFromContext(c *cli.Context, path string) config.Source {
	src := config.Default().Source
	src.Type = c.String("type")
	src.Path = path
	if c.IsSet("ignore-team") {
		src.IgnoreTeams = c.StringSlice("ignore-team")
	}
	return src
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "convert a contest log into a sqlite database",
		ArgsUsage: "<source> <sqlite file>",
		Flags:     sourceFlags,
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("convert needs a source and a target path", 2)
			}
			contestLog, err := loader.Load(sourceFromContext(c, c.Args().Get(0)))
			if err != nil {
				return err
			}
			if err := loader.SaveSQLite(c.Args().Get(1), contestLog); err != nil {
				return err
			}
			fmt.Printf("Wrote %d problems, %d teams and %d submissions to %s\n",
				len(contestLog.Problems), len(contestLog.Teams), len(contestLog.Submissions), c.Args().Get(1))
			return nil
		},
	}
}

func exportCommand() *cli.Command {
	flags := append([]cli.Flag{
		&cli.IntFlag{Name: "at", Value: -1, Usage: "cutoff in elapsed seconds, the whole contest when negative"},
		&cli.IntFlag{Name: "duration", Value: config.Default().Contest.Duration, Usage: "contest length in minutes"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "board.xlsx", Usage: "output workbook"},
	}, sourceFlags...)

	return &cli.Command{
		Name:      "export",
		Usage:     "write the board at a cutoff as an xlsx workbook",
		ArgsUsage: "<source>",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("export needs a source path", 2)
			}
			contestLog, err := loader.Load(sourceFromContext(c, c.Args().First()))
			if err != nil {
				return err
			}

			duration := config.Contest{Duration: c.Int("duration")}.DurationSeconds()
			cutoff := c.Int("at")
			if cutoff < 0 {
				cutoff = duration
			}
			state := contest.New(contestLog, contest.Options{DurationSeconds: duration})
			board, err := state.BoardAt(cutoff)
			if err != nil {
				return err
			}

			data, err := export.BoardWorkbook(board)
			if err != nil {
				return err
			}
			out := c.String("out")
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote board at %ds for %d teams to %s\n", cutoff, len(board.Rows), out)
			return nil
		},
	}
}

func fakeCommand() *cli.Command {
	return &cli.Command{
		Name:      "fake",
		Usage:     "generate a random contest log for demos and load testing",
		ArgsUsage: "<sqlite file>",
		Flags: []cli.Flag{
			&cli.Uint64Flag{Name: "seed", Value: 1},
			&cli.IntFlag{Name: "teams", Value: 50},
			&cli.IntFlag{Name: "problems", Value: 10},
			&cli.IntFlag{Name: "submissions", Value: 2000},
			&cli.IntFlag{Name: "duration", Value: config.Default().Contest.Duration, Usage: "contest length in minutes"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("fake needs a target path", 2)
			}
			contestLog := loader.Fake(loader.FakeOptions{
				Seed:            c.Uint64("seed"),
				Teams:           c.Int("teams"),
				Problems:        c.Int("problems"),
				Submissions:     c.Int("submissions"),
				DurationSeconds: config.Contest{Duration: c.Int("duration")}.DurationSeconds(),
			})
			if err := loader.SaveSQLite(c.Args().First(), contestLog); err != nil {
				return err
			}
			fmt.Printf("Wrote %d teams and %d submissions to %s\n", len(contestLog.Teams), len(contestLog.Submissions), c.Args().First())
			return nil
		},
	}
}
