package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"readmegen/internal/config"
	"readmegen/internal/generator"
	"readmegen/internal/logging"
	"readmegen/internal/params"
	"readmegen/internal/watcher"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "readmegen",
		Short:         "Regenerate the Parameters section of a README from a parameter manifest",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	configPath   string
	readmePath   string
	valuesPath   string
	sectionTitle string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	// Used until the config file has been read.
	ctx = logging.WithContext(ctx, logging.NewFromEnv())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the readmegen config file")
	rootCmd.PersistentFlags().StringVarP(&readmePath, "readme", "r", "", "README file to update (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&valuesPath, "values", "v", "", "Parameter manifest (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&sectionTitle, "title", "t", "", "Parameters section title pattern (overrides config)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
}

// setup loads the config, applies flag overrides and attaches the logger to ctx.
func setup(ctx context.Context) (context.Context, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("config", configPath).Msg("config load failed")
		return ctx, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if readmePath != "" {
		cfg.Readme = readmePath
	}
	if valuesPath != "" {
		cfg.Values = valuesPath
	}
	if sectionTitle != "" {
		cfg.Regexp.ParamsSectionTitle = sectionTitle
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	logCfg.Format = cfg.Log.Format
	ctx = logging.WithContext(ctx, logging.New(logCfg))
	return ctx, cfg, nil
}

func generate(ctx context.Context, cfg *config.Config) error {
	group, err := params.LoadFile(cfg.Values)
	if err != nil {
		return err
	}
	return generator.InsertParametersTable(logging.WithComponent(ctx, "generator"), cfg.Readme, group, cfg)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Rewrite the Parameters section of the README",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		if err := generate(ctx, cfg); err != nil {
			return err
		}
		fmt.Printf("✅ Parameters section of %s updated from %s.\n", cfg.Readme, cfg.Values)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fail if the README Parameters section is not up to date",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		group, err := params.LoadFile(cfg.Values)
		if err != nil {
			return err
		}
		if err := generator.CheckReadme(logging.WithComponent(ctx, "check"), cfg.Readme, group, cfg); err != nil {
			return err
		}
		fmt.Printf("✅ %s is up to date.\n", cfg.Readme)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the README whenever the parameter manifest or config changes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cfg, err := setup(cmd.Context())
		if err != nil {
			return err
		}

		w, err := watcher.New([]string{cfg.Values, configPath}, func(ctx context.Context) error {
			// Reload so edits to the config file take effect.
			ctx, cfg, err := setup(ctx)
			if err != nil {
				return err
			}
			if err := generate(ctx, cfg); err != nil {
				return err
			}
			fmt.Printf("🔄 %s regenerated.\n", cfg.Readme)
			return nil
		})
		if err != nil {
			return err
		}

		fmt.Printf("👀 Watching %s (Ctrl+C to stop)...\n", cfg.Values)
		return w.Run(logging.WithComponent(ctx, "watcher"))
	},
}
