package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/app"
	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	catalogrepo "github.com/Tejass087/Skin-Care-Reccomadation/internal/repository/catalog"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	var (
		catalog     string
		file        string
		format      string
		pricePolicy string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a CSV or Parquet catalog into the catalog store",
		Long: `Import reads a catalog file, cleans prices and skin type lists, and replaces
the stored catalog of the given kind. Rejected rows are counted, never fatal.`,
		Example: "  beautyctl import --catalog cosmetic --file data/cosmetics.csv",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := domcat.ParseKind(catalog)
			if err != nil {
				return err
			}
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return fmt.Errorf("import needs a catalog store: database.addrs is not configured")
			}
			if pricePolicy == "" {
				pricePolicy = cfg.Import.PricePolicy
			}
			policy, err := catalogrepo.ParsePricePolicy(pricePolicy)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			snap, report, err := readCatalogFile(ctx, file, format, kind, policy, root.logger)
			if err != nil {
				return err
			}

			store, err := app.OpenStore(ctx, cfg.Database, root.logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := catalogrepo.NewRedis(store, cfg.Database.KeyPrefix, root.logger).Save(ctx, snap); err != nil {
				return fmt.Errorf("save %s catalog: %w", kind, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s rows (%d blank, %d rejected)\n",
				report.Rows, kind, report.Skipped, report.Errors)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog kind: skincare, cosmetic or makeup")
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog file to import")
	cmd.Flags().StringVar(&format, "format", "", "csv or parquet (default: from the file extension)")
	cmd.Flags().StringVar(&pricePolicy, "price-policy", "", "cents or whole (default: import.price_policy)")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
