package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"

	"github.com/agentgen/agentgen/internal/backend"
	"github.com/agentgen/agentgen/internal/doc"
	"github.com/agentgen/agentgen/internal/logging"
	"github.com/charmbracelet/x/editor"
	"github.com/joho/godotenv"
	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

// Build vars.
var (
	//nolint: gochecknoglobals
	Version   = ""
	CommitSHA = ""
)

var (
	config  Config
	rootCmd = &cobra.Command{
		Use:           "agentgen <api-doc-file>",
		Short:         "Generate API agents from documentation with an LLM.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		Example: `  agentgen users.txt -d "Agent for managing users"
  LLM_PROVIDER=AWS_BEDROCK agentgen api.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Settings {
				return editSettings()
			}
			if config.ResetSettings {
				if err := resetSettings(config); err != nil {
					return err
				}
				fmt.Fprintln(os.Stderr, "Settings restored to defaults:", config.SettingsPath)
				return nil
			}
			if len(args) == 0 {
				return cmd.Usage()
			}
			config.DocPath = args[0]

			log, closer := newLogger()
			defer closer.Close() //nolint:errcheck

			path, err := generate(cmd.Context(), log, config)
			if err != nil {
				log.Error().Err(err).Msg("workflow failed")
				return agentgenError{err, reasonFor(err)}
			}
			if path == "" {
				fmt.Fprintln(os.Stderr, "The provider returned no code, nothing was written.")
				return nil
			}
			log.Info().Str("path", path).Msg("agent generation workflow completed")
			if isOutputTTY() {
				fmt.Println(stdoutStyles().Path.Render(path))
			} else {
				fmt.Println(path)
			}
			return nil
		},
	}
	validateCmd = &cobra.Command{
		Use:   "validate <api-doc-file>",
		Short: "Validate an API documentation file without generating anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log, closer := newLogger()
			defer closer.Close() //nolint:errcheck

			d, err := doc.Load(logging.Component(log, "doc"), args[0])
			if err != nil {
				return agentgenError{err, reasonFor(err)}
			}
			fmt.Println("✓ Documentation is valid")
			if d.IsStructured() {
				fmt.Printf("  Endpoints: %d\n", len(d.Endpoints()))
			} else {
				fmt.Printf("  Characters: %d\n", len(d.Text))
			}
			return nil
		},
	}
)

func newLogger() (zerolog.Logger, io.Closer) {
	return logging.New(logging.Options{
		Console: os.Stderr,
		NoColor: !isErrTTY(),
		File:    config.LogFile,
		Level:   config.LogLevel,
	})
}

// generate builds the configured backend and runs the documentation through
// the pipeline.
func generate(ctx context.Context, log zerolog.Logger, cfg Config) (string, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	g := newGenerator(cfg, log, func(ctx context.Context) (backend.Backend, error) {
		return newBackend(ctx, cfg, log)
	})
	return g.run(ctx, cfg.DocPath, cfg.Description)
}

func editSettings() error {
	c, err := editor.Cmd("agentgen", config.SettingsPath)
	if err != nil {
		return agentgenError{
			err:    err,
			reason: "Could not edit your settings file.",
		}
	}
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return agentgenError{err, fmt.Sprintf(
			"Missing %s.",
			stderrStyles().InlineCode.Render("$EDITOR"),
		)}
	}
	fmt.Fprintln(os.Stderr, "Wrote config file to:", config.SettingsPath)
	return nil
}

func initFlags() {
	flags := rootCmd.Flags()
	flags.StringVarP(&config.Description, "description", "d", config.Description, stdoutStyles().FlagDesc.Render(help["description"]))
	flags.StringVarP(&config.Provider, "provider", "p", config.Provider, stdoutStyles().FlagDesc.Render(help["provider"]))
	flags.StringVarP(&config.GeminiModel, "model", "m", config.GeminiModel, stdoutStyles().FlagDesc.Render(help["model"]))
	flags.StringVar(&config.BedrockModelID, "bedrock-model", config.BedrockModelID, stdoutStyles().FlagDesc.Render(help["bedrock-model"]))
	flags.StringVar(&config.AWSRegion, "region", config.AWSRegion, stdoutStyles().FlagDesc.Render(help["region"]))
	flags.IntVar(&config.MaxTokens, "max-tokens", config.MaxTokens, stdoutStyles().FlagDesc.Render(help["max-tokens"]))
	flags.StringVarP(&config.Language, "language", "l", config.Language, stdoutStyles().FlagDesc.Render(help["language"]))
	flags.StringVar(&config.Ext, "ext", config.Ext, stdoutStyles().FlagDesc.Render(help["ext"]))
	flags.StringVarP(&config.OutputDir, "output-dir", "o", config.OutputDir, stdoutStyles().FlagDesc.Render(help["output-dir"]))
	flags.Var(newDurationFlag(config.Timeout, &config.Timeout), "timeout", stdoutStyles().FlagDesc.Render(help["timeout"]))
	flags.BoolVar(&config.Settings, "settings", false, stdoutStyles().FlagDesc.Render(help["settings"]))
	flags.BoolVar(&config.ResetSettings, "reset-settings", false, stdoutStyles().FlagDesc.Render(help["reset-settings"]))
	flags.BoolVarP(&config.ShowHelp, "help", "h", false, stdoutStyles().FlagDesc.Render(help["help"]))
	flags.BoolVarP(&config.Version, "version", "v", false, stdoutStyles().FlagDesc.Render(help["version"]))
	flags.SortFlags = false

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&config.LogFile, "log-file", config.LogFile, stdoutStyles().FlagDesc.Render(help["log-file"]))
	persistent.StringVar(&config.LogLevel, "log-level", config.LogLevel, stdoutStyles().FlagDesc.Render(help["log-level"]))

	rootCmd.MarkFlagsMutuallyExclusive("settings", "reset-settings")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newFlagParseError(err)
	})
}

func useLine() string {
	appName := filepath.Base(os.Args[0])
	return fmt.Sprintf(
		"%s %s",
		stdoutStyles().AppName.Render(appName),
		stdoutStyles().CliArgs.Render("[OPTIONS] <api-doc-file>"),
	)
}

func usageFunc(cmd *cobra.Command) error {
	fmt.Printf("%s\n\n", cmd.Short)
	fmt.Printf(
		"Usage:\n  %s\n\n",
		useLine(),
	)
	fmt.Println("Options:")
	cmd.Flags().VisitAll(func(f *flag.Flag) {
		if f.Hidden {
			return
		}
		if f.Shorthand == "" {
			fmt.Printf(
				"  %-44s %s\n",
				stdoutStyles().Flag.Render("--"+f.Name),
				stdoutStyles().FlagDesc.Render(f.Usage),
			)
		} else {
			fmt.Printf(
				"  %s%s %-40s %s\n",
				stdoutStyles().Flag.Render("-"+f.Shorthand),
				stdoutStyles().FlagComma,
				stdoutStyles().Flag.Render("--"+f.Name),
				stdoutStyles().FlagDesc.Render(f.Usage),
			)
		}
	})
	if cmd.Example != "" {
		fmt.Printf(
			"\nExample:\n%s\n",
			stdoutStyles().Comment.Render(cmd.Example),
		)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(&cobra.Command{
		Use:                   "man",
		Short:                 "Generates manpages",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Hidden:                true,
		Args:                  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			manPage, err := mcobra.NewManPage(1, rootCmd)
			if err != nil {
				//nolint:wrapcheck
				return err
			}
			_, err = fmt.Fprint(os.Stdout, manPage.Build(roff.NewDocument()))
			//nolint:wrapcheck
			return err
		},
	})

	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
			Version = info.Main.Version
		} else {
			Version = "unknown (built from source)"
		}
	}
	rootCmd.Version = Version
	if len(CommitSHA) >= 7 { //nolint:mnd
		rootCmd.SetVersionTemplate(fmt.Sprintf("agentgen version %s (%s)\n", Version, CommitSHA[:7]))
	}
	rootCmd.SetUsageFunc(usageFunc)
}

func main() {
	// a missing .env is fine, the environment may be set some other way.
	_ = godotenv.Load()

	var err error
	config, err = ensureConfig()
	if err != nil && !isCompletionCmd(os.Args) && !isManCmd(os.Args) {
		handleError(agentgenError{err, "Could not load your configuration file."})
		os.Exit(1)
	}

	// XXX: this must come after creating the config.
	initFlags()

	if err := rootCmd.Execute(); err != nil {
		handleError(err)
		os.Exit(1)
	}
}

func isCompletionCmd(args []string) bool {
	if len(args) <= 1 {
		return false
	}
	if args[1] == "__complete" {
		return true
	}
	if args[1] != "completion" {
		return false
	}
	switch len(args) {
	case 3: //nolint:mnd
		return slices.Contains([]string{"-h", "--help", "help", "bash", "fish", "zsh", "powershell"}, args[2])
	case 4: //nolint:mnd
		return slices.Contains([]string{"bash", "fish", "zsh", "powershell"}, args[2]) &&
			(args[3] == "-h" || args[3] == "--help")
	default:
		return false
	}
}

func isManCmd(args []string) bool {
	if len(args) == 2 {
		return args[1] == "man"
	}
	if len(args) == 3 && args[1] == "man" {
		return args[2] == "-h" || args[2] == "--help"
	}
	return false
}
