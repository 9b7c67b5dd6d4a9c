package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/daebeom/macfolio/internal/config"
	"github.com/daebeom/macfolio/internal/replay"
	"github.com/daebeom/macfolio/internal/terminal"
)

// loadScriptConfig applies the shared --script and --char-interval overrides.
func loadScriptConfig(cmd *cobra.Command, configPath, scriptPath string, interval time.Duration) (config.Config, terminal.Script, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, terminal.Script{}, err
	}
	if scriptPath != "" {
		cfg.Terminal.Script = scriptPath
	}
	if cmd.Flags().Changed("char-interval") {
		if interval <= 0 {
			return config.Config{}, terminal.Script{}, fmt.Errorf("%w: --char-interval must be positive", config.ErrInvalidConfig)
		}
		cfg.Terminal.CharInterval = interval
	}
	script, err := cfg.LoadScript()
	if err != nil {
		return config.Config{}, terminal.Script{}, err
	}
	return cfg, script, nil
}

func newReplayCmd(configPath *string) *cobra.Command {
	var (
		plain      bool
		scriptPath string
		interval   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Play the portfolio terminal session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, script, err := loadScriptConfig(cmd, *configPath, scriptPath, interval)
			if err != nil {
				return err
			}
			seq := terminal.New(script, terminal.WithCharInterval(cfg.Terminal.CharInterval))

			interactive := !plain && isatty.IsTerminal(os.Stdout.Fd())
			replay.ConfigureColor(interactive)
			if !interactive {
				_, err := replay.RunPlain(cmd.Context(), seq, cmd.OutOrStdout())
				return err
			}
			return replay.Run(cmd.Context(), seq)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "write plain text instead of the full-screen view")
	cmd.Flags().StringVar(&scriptPath, "script", "", "YAML script to play instead of the configured one")
	cmd.Flags().DurationVar(&interval, "char-interval", terminal.DefaultCharInterval, "pause before each typed character")
	return cmd
}

func newScriptCmd(configPath *string) *cobra.Command {
	var scriptPath string
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Print the active terminal script as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if scriptPath != "" {
				cfg.Terminal.Script = scriptPath
			}
			script, err := cfg.LoadScript()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(script); err != nil {
				return fmt.Errorf("encode script: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&scriptPath, "script", "", "YAML script to print instead of the configured one")
	return cmd
}
