package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ramlconv/internal/converter"
	"ramlconv/internal/output"
)

func newWatchCmd(v *viper.Viper) *cobra.Command {
	var debounce = converter.DefaultDebounce

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert, then convert again whenever an input document changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			output.Info(fmt.Sprintf("watching %s (Ctrl+C to stop)", cfg.InputDir()))
			return converter.New(cfg).Watch(ctx, debounce, func(summary *converter.Summary, err error) {
				if err != nil {
					reportError(err)
					return
				}
				report(summary)
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", converter.DefaultDebounce, "quiet period before re-running")
	return cmd
}
