package main

import (
	"context"

	"github.com/spf13/viper"

	"ramlconv/internal/converter"
)

func runConvert(ctx context.Context, v *viper.Viper) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(ctx)
	defer stop()

	summary, err := converter.New(cfg).Run(ctx)
	if err != nil {
		return err
	}
	report(summary)
	return summary.Err()
}
