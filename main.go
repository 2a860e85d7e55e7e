package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"library-catalog/config"
	"library-catalog/library"
	"library-catalog/shell"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "librarycli",
		Short:        "Manage an in-memory library catalog from the console",
		Long:         "librarycli keeps books, members and loans in memory and drives them through a numbered menu.\nPipe commands on stdin to script it; use -o json for machine-readable results.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, os.Stdin, shell.IsTerminal(os.Stdin), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, interactive bool, out, errOut io.Writer) error {
	logger := cfg.Log.NewLogger(errOut)

	manager, err := library.NewLibraryManager(library.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("start library: %w", err)
	}
	defer manager.Close()

	switch {
	case cfg.Seed != "":
		seed, err := library.LoadSeedFile(cfg.Seed)
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		if err := manager.ApplySeed(seed); err != nil {
			return err
		}
	case !cfg.NoSample:
		if err := manager.ApplySeed(library.SampleSeed()); err != nil {
			return err
		}
	}

	sh := shell.New(manager, in, out, shell.NewPrinter(cfg.Output), interactive)
	if err := sh.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
