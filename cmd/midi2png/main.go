package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/neurlang/midipng/convert"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type usageError struct {
	error
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newCommand() *cobra.Command {
	var cfg convert.Config
	var verbose bool

	cmd := &cobra.Command{
		Use:           "midi2png -i <input_folder> [-o <output_file>]",
		Short:         "Converts a folder of MIDI files to greyscale PNG images",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.InputDir == "" {
				return usageError{errors.New("no input folder given")}
			}

			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			n, err := convert.NewConverter(cfg, log).Run(cmd.Context())
			if err != nil {
				log.Error("conversion stopped", zap.Int("written", n), zap.Error(err))
				return err
			}
			log.Info("done", zap.Int("written", n))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.InputDir, "ifile", "i", "", "folder containing the .mid files")
	f.StringVarP(&cfg.OutputFile, "ofile", "o", "", "output file (unused)")
	f.BoolVar(&cfg.WavPreview, "wav", false, "also write the rendered audio as <name>.wav")
	f.BoolVar(&cfg.Float16, "f16", false, "also write the image matrix as <name>.f16")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	return cmd
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprint(stderr, cmd.UsageString())
		return 2
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
