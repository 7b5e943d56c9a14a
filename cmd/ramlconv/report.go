package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"ramlconv/internal/converter"
	"ramlconv/internal/output"
)

// report prints one line per unit, then the written artifacts in verbose
// mode.
func report(summary *converter.Summary) {
	for _, u := range summary.Units {
		name := u.Document
		if u.Backend != "" {
			name += " [" + u.Backend + "]"
		}

		if u.Err != nil {
			output.Error(fmt.Sprintf("%s: %v", name, u.Err))
			continue
		}

		output.Success(fmt.Sprintf("%s: %d types", name, u.Result.Types))
		if len(u.Result.Skipped) > 0 {
			output.Info("skipped " + strings.Join(u.Result.Skipped, ", "))
		}
		for _, path := range u.Result.Artifacts {
			output.Verbose(path)
		}
	}

	if failed := len(summary.Failed()); failed > 0 {
		output.Error(fmt.Sprintf("%d of %d conversions failed (run %s)", failed, len(summary.Units), summary.RunID))
	}
}

func reportError(err error) {
	if errors.Is(err, converter.ErrConversionFailed) {
		// units were already reported
		return
	}
	output.Error(err.Error())
	if hints := errors.FlattenHints(err); hints != "" {
		output.Step(hints)
	}
}
