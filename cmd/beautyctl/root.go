package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/config"
	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	logpkg "github.com/Tejass087/Skin-Care-Reccomadation/internal/logger"
	catalogrepo "github.com/Tejass087/Skin-Care-Reccomadation/internal/repository/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/version"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	logLevel   string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "beautyctl",
		Short: "Operate the beauty product recommender",
		Long: `beautyctl imports product catalogs into the catalog store, ranks catalogs
from the shell and runs the skin analysis and curated matcher offline.`,
		Version:      version.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logpkg.NewLogger("cli", opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"config file path (default: config/<ENV>.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newImportCmd(opts),
		newRecommendCmd(opts),
		newMatchCmd(opts),
		newAnalyzeCmd(opts),
	)
	return cmd
}

// loadConfig reads --config, or the file selected by ENV.
func (o *rootOptions) loadConfig() (config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.Load(config.GetEnv())
}

// readCatalogFile reads a CSV or Parquet catalog. format "" picks by extension.
func readCatalogFile(
	ctx context.Context, path, format string, kind domcat.Kind, policy catalogrepo.PricePolicy, logger *zap.Logger,
) (domcat.Snapshot, catalogrepo.Report, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case "parquet":
		return catalogrepo.ReadParquetFile(ctx, path, kind, policy, logger)
	case "csv", "":
		return catalogrepo.ReadCSVFile(ctx, path, kind, policy, logger)
	default:
		return domcat.Snapshot{}, catalogrepo.Report{}, fmt.Errorf("unsupported catalog format %q", format)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
