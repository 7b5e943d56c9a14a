package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ramlconv/internal/backend"
	"ramlconv/internal/config"
	"ramlconv/internal/logger"
	"ramlconv/internal/output"
)

// EnvPrefix prefixes environment overrides, e.g. RAMLCONV_OUTPUT_DIR.
const EnvPrefix = "RAMLCONV"

// backendFlags are the per-backend enable switches.
var backendFlags = []struct {
	flag string
	kind backend.Kind
	help string
}{
	{"xml", backend.XSD, "generate XML schemas"},
	{"json", backend.JSONSchema, "generate JSON schemas"},
	{"cs", backend.CSharp, "generate C# data contracts"},
	{"ts", backend.TypeScript, "generate TypeScript classes"},
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "ramlconv",
		Short: "Convert RAML type libraries into schemas and data contracts",
		Long: `ramlconv reads RAML 1.0 type libraries and writes one artifact per
document and backend.

Examples:
  ramlconv --input-dir ./raml --xml --json
  ramlconv --file orders.raml --cs --cs-ns Acme.Orders --desc
  ramlconv watch --input-dir ./raml --ts --indent 2
  ramlconv --config ramlconv.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbosity := v.GetInt("verbose")
			output.SetVerbose(verbosity > 0)
			return logger.Initialize(v.GetBool("log-json"), verbosity)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (YAML or JSON, default ./"+config.DefaultConfigFile+" when present)")
	flags.StringP("file", "f", "", "convert a single RAML file")
	flags.StringP("input-dir", "i", "", "directory with *.raml input files (default: working directory)")
	flags.StringP("output-dir", "o", "", "directory for generated files (default: input directory)")
	for _, bf := range backendFlags {
		flags.Bool(bf.flag, false, bf.help)
	}
	flags.Bool("desc", false, "emit descriptions as documentation")
	flags.String("xml-ns", "", "XML namespace (default "+config.DefaultXMLNamespace+")")
	flags.String("cs-ns", "", "C# namespace (default "+config.DefaultCSharpNamespace+")")
	flags.StringSlice("root-type", nil, "types that get their own root artifact (repeatable)")
	flags.StringSliceP("types", "T", nil, "only convert these types")
	flags.StringSliceP("exclude", "X", nil, "skip these types")
	flags.Int("indent", 0, "indent size in spaces (default: tab for C#/TypeScript, two spaces for schemas)")
	flags.Bool("disable-lint", false, "prefix TypeScript output with a tslint:disable comment")
	flags.CountP("verbose", "v", "increase log verbosity (-v info, -vv debug)")
	flags.Bool("log-json", false, "log as JSON")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert every input document once (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), v)
		},
	}

	rootCmd.AddCommand(convertCmd, newWatchCmd(v), newVersionCmd())
	return rootCmd
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// loadConfig layers defaults, the config file, environment and flags.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg := config.New()

	path := v.GetString("config")
	if path == "" {
		if _, err := os.Stat(config.DefaultConfigFile); err == nil {
			path = config.DefaultConfigFile
		}
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, errors.Wrapf(err, "loading %s", path)
		}
		logger.Debugw("loaded config", "path", path)
	}

	if v.IsSet("file") {
		cfg.InputFileName = v.GetString("file")
	}
	if v.IsSet("input-dir") {
		cfg.InputDirectory = v.GetString("input-dir")
	}
	if v.IsSet("output-dir") {
		cfg.OutputDirectory = v.GetString("output-dir")
	}
	if v.GetBool("desc") {
		cfg.GenerateDescriptions = true
	}
	if v.IsSet("root-type") {
		cfg.RootTypes = v.GetStringSlice("root-type")
	}
	if v.IsSet("types") {
		cfg.IncludeTypes = v.GetStringSlice("types")
	}
	if v.IsSet("exclude") {
		cfg.ExcludeTypes = v.GetStringSlice("exclude")
	}

	for _, bf := range backendFlags {
		if v.GetBool(bf.flag) {
			cfg.EnableBackend(bf.kind)
		}
	}

	if v.IsSet("xml-ns") {
		ns := v.GetString("xml-ns")
		cfg.XMLNamespace = ns
		updateBackend(cfg, backend.XSD, func(b *config.Backend) { b.Namespace = ns })
	}
	if v.IsSet("cs-ns") {
		ns := v.GetString("cs-ns")
		updateBackend(cfg, backend.CSharp, func(b *config.Backend) { b.Namespace = ns })
	}
	if v.IsSet("indent") {
		size := v.GetInt("indent")
		for _, kind := range backend.Kinds {
			updateBackend(cfg, kind, func(b *config.Backend) { b.IndentSize = &size })
		}
	}
	if v.GetBool("disable-lint") {
		updateBackend(cfg, backend.TypeScript, func(b *config.Backend) { b.DisableLint = true })
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func updateBackend(cfg *config.Config, kind backend.Kind, fn func(*config.Backend)) {
	section := cfg.Backends[string(kind)]
	fn(&section)
	cfg.Backends[string(kind)] = section
}
