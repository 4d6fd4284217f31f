package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ashwinyue/strato-tools/internal/catalog"
	"github.com/ashwinyue/strato-tools/internal/config"
	"github.com/ashwinyue/strato-tools/internal/logging"
)

const defaultConfigPath = "./configs/config.yaml"

type rootOptions struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{
		configPath: os.Getenv("CONFIG_PATH"),
		logger:     zap.NewNop(),
	}
	if opts.configPath == "" {
		opts.configPath = defaultConfigPath
	}

	root := &cobra.Command{
		Use:           "strato-tools",
		Short:         "Tool catalog browsing and recommendation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "path to config file")

	root.AddCommand(
		newServeCmd(opts),
		newRecommendCmd(opts),
		newFilterCmd(opts),
		newValidateCmd(opts),
	)

	return root
}

// loadCatalog 加载配置指定的目录，未配置时使用内置数据
func (o *rootOptions) loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(o.cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return cat, nil
}
