package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/CongDon1207/Four-Connect/internal/config"
	"github.com/CongDon1207/Four-Connect/internal/console"
	"github.com/CongDon1207/Four-Connect/internal/service/game"
	"github.com/CongDon1207/Four-Connect/pkg/logger"
)

type playOptions struct {
	mode           string
	level          int
	aiFirst        bool
	noColor        bool
	difficultyFile string
	parallel       bool
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "connect4",
		Short:         "Play Connect Four in the terminal",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetupWriter(cmd.ErrOrStderr(), logLevel, true)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newPlayCmd(), newLevelsCmd())
	return root
}

func newPlayCmd() *cobra.Command {
	opts := playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Start a game against the computer or a second player",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", string(game.ModeAI), "game mode: ai or human")
	cmd.Flags().IntVar(&opts.level, "level", 1, "AI difficulty level")
	cmd.Flags().BoolVar(&opts.aiFirst, "ai-first", false, "let the AI make the first move")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "draw the board in plain ASCII")
	cmd.Flags().StringVar(&opts.difficultyFile, "difficulty-file", os.Getenv("DIFFICULTY_FILE"), "YAML file replacing the built-in difficulty table")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", false, "search root moves in parallel (negamax levels)")
	return cmd
}

func runPlay(cmd *cobra.Command, opts playOptions) error {
	table, err := config.LoadDifficultyTable(opts.difficultyFile)
	if err != nil {
		return err
	}
	table = table.WithParallel(opts.parallel)

	session, err := game.NewSession("console", game.Settings{
		Mode:    game.Mode(opts.mode),
		Level:   opts.level,
		AIFirst: opts.aiFirst,
	}, table)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	driver := console.NewDriver(session, console.NewRenderer(opts.noColor), cmd.InOrStdin(), cmd.OutOrStdout())
	_, err = driver.Run(ctx)
	return err
}

func newLevelsCmd() *cobra.Command {
	var difficultyFile string

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List the AI difficulty levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := config.LoadDifficultyTable(difficultyFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, level := range table.Levels() {
				cfg := table[level]
				fmt.Fprintf(out, "%d\t%s\tdepth %d\n", level, cfg.Algorithm, cfg.Depth)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&difficultyFile, "difficulty-file", os.Getenv("DIFFICULTY_FILE"), "YAML file replacing the built-in difficulty table")
	return cmd
}
