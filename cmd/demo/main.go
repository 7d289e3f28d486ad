// Command demo exercises the composex pipeline end to end: a factory
// registry of butlers, a wrapper chain of hats, and a mood subject with
// logging and metrics listeners.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/comalice/composex"
	"github.com/comalice/composex/internal/production"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "demo",
		Short:         "Composable object framework demonstration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")

	newLogger := func() zerolog.Logger {
		lvl, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			lvl = zerolog.InfoLevel
		}
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(lvl).With().Timestamp().Logger()
	}

	var configPath, stateDir string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Build a butler chain and broadcast mood changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(newLogger(), configPath, stateDir)
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "Composition file (.yaml/.json/.toml); built-in scenario when empty")
	runCmd.Flags().StringVar(&stateDir, "state-dir", "", "Directory for mood snapshots; no persistence when empty")

	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "List registered butler kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := composex.NewRegistry()
			if err := registerButlers(reg); err != nil {
				return err
			}
			for _, k := range reg.Kinds() {
				fmt.Println(k)
			}
			return nil
		},
	}

	root.AddCommand(runCmd, kindsCmd)
	return root
}

func run(log zerolog.Logger, configPath, stateDir string) error {
	reg := composex.NewRegistry(composex.WithLogger(log))
	if err := registerButlers(reg); err != nil {
		return err
	}
	effects := demoEffects()

	chain, err := buildChain(reg, configPath, effects)
	if err != nil {
		return err
	}
	if w, ok := chain.(*composex.Wrapper); ok {
		log.Info().Strs("chain", w.Describe()).Int("depth", w.Depth()).Msg("chain composed")
	}

	ctx := context.Background()
	out, err := chain.Invoke(ctx, "Tacos")
	if err != nil {
		return err
	}
	log.Info().Str("output", fmt.Sprint(out)).Msg("chain invoked")

	// Mood subject with logging + metrics fan-out.
	mood := composex.NewSubject("mood", "neutral")
	metrics := production.NewMetricsListener("metrics", mood.Name())
	prometheus.MustRegister(metrics.Collector())
	mood.Subscribe(production.NewLogListener("audit", log))
	mood.Subscribe(metrics)

	for _, state := range []string{"hungry", "served", "content"} {
		if err := mood.SetState(ctx, state); err != nil {
			log.Warn().Err(err).Msg("delivery pass had failures")
		}
	}

	if stateDir != "" {
		persister, err := production.NewJSONPersister(stateDir)
		if err != nil {
			return err
		}
		snap := production.SubjectSnapshot{
			Subject:   mood.Name(),
			State:     mood.State(),
			Timestamp: time.Now(),
		}
		if err := persister.Save(snap); err != nil {
			return err
		}
		log.Info().Str("dir", stateDir).Msg("mood snapshot saved")
	}

	return nil
}

func buildChain(reg *composex.Registry, configPath string, effects map[string]composex.Effect) (composex.Constructible, error) {
	if configPath != "" {
		cfg, err := production.LoadComposition(configPath)
		if err != nil {
			return nil, err
		}
		return production.BuildComposition(reg, cfg, effects)
	}

	base, err := reg.Create(composex.NewDescriptor("plain", nil))
	if err != nil {
		return nil, err
	}
	return composex.NewChain(base).
		Post("FancyHat", effects["fancy-hat"]).
		Post("ChefHat", effects["chef-hat"]).
		Build()
}
