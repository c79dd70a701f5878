package xcadmin

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pyth-network/governance/pkg/config"
	"github.com/pyth-network/governance/sdk"
)

type rootOptions struct {
	configPath string
	verbose    bool
	cfg        *config.Config
}

func BuildXcadminCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := cobra.Command{
		Use:           "xcadmin",
		Short:         "Build and inspect Pyth cross-chain governance payloads and proposals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "xcadmin.yaml", "Path of the YAML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output")

	cmd.AddCommand(buildEncodeCmd())
	cmd.AddCommand(buildDecodeCmd(opts))
	cmd.AddCommand(buildClassifyCmd(opts))
	cmd.AddCommand(buildBatchCmd(opts))
	cmd.AddCommand(buildPlanCmd(opts))
	cmd.AddCommand(buildProposePayloadCmd(opts))
	cmd.AddCommand(buildDeriveCmd(opts))

	return &cmd
}

// setup loads .env and the configuration, and stores the logger in the
// command context.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to load .env: %w", err)
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	level := zapcore.InfoLevel
	if o.verbose {
		level = zapcore.DebugLevel
	}
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("unable to build logger: %w", err)
	}
	cmd.SetContext(sdk.WithLogger(cmd.Context(), logger.Sugar()))

	return nil
}
