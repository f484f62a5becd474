package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bimmerbailey/envform/internal/convert"
	"github.com/bimmerbailey/envform/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [file]",
	Short: "Re-run the conversion whenever the env file changes",
	Long: `Watch an env file and regenerate the structured output on every change.

Useful during development to keep a derived config artifact in sync with
the .env file it was generated from.

Examples:
  envform watch --output=config.json .env
  envform watch --format=yaml --prefix=APP_ .env`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, err := optionsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	if _, err := os.Stat(opts.File); err != nil {
		return fmt.Errorf("file does not exist: %s", opts.File)
	}

	watcher := watch.New(watch.Options{
		FilePath: opts.File,
		OnChange: func() error {
			result := convert.Convert(opts)
			if !result.Success {
				return errors.New(result.Error)
			}
			if result.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Data)
			return nil
		},
	})

	// Set up context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- watcher.Run(ctx)
	}()

	select {
	case <-sigChan:
		cancel()
		<-errChan
		return nil
	case err := <-errChan:
		return err
	}
}
