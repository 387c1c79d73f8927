package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chrisuehlinger/vibepopper/config"
	"github.com/chrisuehlinger/vibepopper/observability"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

// app holds the state shared by all subcommands once the root command's
// pre-run has loaded configuration.
type app struct {
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:           "popperctl",
		Short:         "Resolve and inspect floating element placements.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate(`{{printf "popperctl %s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./popperctl.yaml)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("placement", "", "default placement for poppers that set none")
	flags.Float64("spacing", 0, "default spacing in pixels")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		binds := map[string]string{
			"logger.level":     "log-level",
			"popper.placement": "placement",
			"popper.spacing":   "spacing",
		}
		for key, name := range binds {
			if f := flags.Lookup(name); f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return fmt.Errorf("binding --%s: %w", name, err)
				}
			}
		}

		cfg, err := config.Load(v, a.cfgFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.logger = observability.New(cfg.Logger, zapcore.AddSync(cmd.ErrOrStderr()))
		a.logger.Debug("configuration loaded", zap.String("version", Version), zap.String("file", v.ConfigFileUsed()))
		return nil
	}

	cmd.AddCommand(newPlaceCmd(a), newRenderCmd(a))
	return cmd
}
