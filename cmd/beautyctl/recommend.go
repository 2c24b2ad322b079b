package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/app"
	domcat "github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/catalog"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/query"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/ranking"
	catalogrepo "github.com/Tejass087/Skin-Care-Reccomadation/internal/repository/catalog"
	recommenduc "github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/recommend"
)

type recommendOptions struct {
	catalog     string
	file        string
	format      string
	pricePolicy string
	topK        int
	asJSON      bool
	raw         query.Raw
}

func newRecommendCmd(root *rootOptions) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank a catalog by facets and optional free text",
		Long: `Recommend loads one catalog, from --file or from its configured source,
and prints the ranked products. With --q the products are ranked by text
similarity, otherwise by rating.`,
		Example: `  beautyctl recommend --catalog skincare --file data/skincare.csv --skin-type oily --q "acne brightening"
  beautyctl recommend --catalog cosmetic --category Moisturizer --max-price 60`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := domcat.ParseKind(opts.catalog)
			if err != nil {
				return err
			}
			svc, err := opts.service(cmd.Context(), root, kind)
			if err != nil {
				return err
			}

			res, err := svc.Recommend(cmd.Context(), kind, opts.raw)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), resultView(&res))
			}
			return printResult(cmd.OutOrStdout(), &res)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.catalog, "catalog", "", "catalog kind: skincare, cosmetic or makeup")
	f.StringVarP(&opts.file, "file", "f", "", "rank this CSV or Parquet file instead of the configured source")
	f.StringVar(&opts.format, "format", "", "csv or parquet (default: from the file extension)")
	f.StringVar(&opts.pricePolicy, "price-policy", "cents", "price policy for --file: cents or whole")
	f.IntVar(&opts.topK, "top-k", 0, "result size for --file (default: 5 with --q, 10 without)")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON")
	f.StringVar(&opts.raw.Category, "category", "", "category (exact, case-insensitive)")
	f.StringVar(&opts.raw.Subcategory, "subcategory", "", "subcategory (exact, case-insensitive)")
	f.StringVar(&opts.raw.Brand, "brand", "", "brand (substring)")
	f.StringVar(&opts.raw.SkinType, "skin-type", "", "skin type (substring)")
	f.StringVar(&opts.raw.MinRating, "min-rating", "", "minimum rating")
	f.StringVar(&opts.raw.MaxPrice, "max-price", "", "maximum price")
	f.StringVarP(&opts.raw.Text, "q", "q", "", "free text, e.g. ingredients or effects")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

// service returns a recommender with kind prepared.
func (o *recommendOptions) service(ctx context.Context, root *rootOptions, kind domcat.Kind) (*recommenduc.Service, error) {
	if o.file != "" {
		policy, err := catalogrepo.ParsePricePolicy(o.pricePolicy)
		if err != nil {
			return nil, err
		}
		snap, report, err := readCatalogFile(ctx, o.file, o.format, kind, policy, root.logger)
		if err != nil {
			return nil, err
		}
		if report.Errors > 0 {
			root.logger.Warn("rows rejected", zap.Int("errors", report.Errors))
		}

		profile, err := domcat.DefaultProfile(kind)
		if err != nil {
			return nil, err
		}
		svc := recommenduc.New(root.logger, recommenduc.NewEngine(profile.WithTopK(o.topK, o.topK), root.logger))
		if err := svc.Prepare(ctx, snap); err != nil {
			return nil, err
		}
		return svc, nil
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := app.OpenStore(ctx, cfg.Database, root.logger)
	if err != nil {
		return nil, err
	}
	if store != nil {
		defer store.Close()
	}
	svc, err := app.Recommender(cfg, store, nil, root.logger)
	if err != nil {
		return nil, err
	}
	if err := svc.Reload(ctx, kind); err != nil {
		return nil, err
	}
	return svc, nil
}

type hitView struct {
	Position int               `json:"position"`
	Score    float64           `json:"score"`
	Name     string            `json:"name"`
	Brand    string            `json:"brand"`
	Price    float64           `json:"price"`
	Rating   float64           `json:"rating"`
	Tags     map[string]string `json:"tags,omitempty"`
	URL      string            `json:"product_url,omitempty"`
}

type resultJSON struct {
	Catalog string            `json:"catalog"`
	Path    string            `json:"path"`
	Items   []hitView         `json:"items"`
	Ignored []ranking.Ignored `json:"ignored_constraints,omitempty"`
}

func resultView(res *ranking.Result) resultJSON {
	out := resultJSON{
		Catalog: string(res.Catalog()),
		Path:    string(res.Path()),
		Items:   make([]hitView, 0, res.Len()),
		Ignored: res.Ignored(),
	}
	for _, h := range res.Hits() {
		out.Items = append(out.Items, hitView{
			Position: h.Position,
			Score:    h.Score,
			Name:     h.Record.Name(),
			Brand:    h.Record.Brand(),
			Price:    h.Record.Price(),
			Rating:   h.Record.Rating(),
			Tags:     h.Record.Tags(),
			URL:      h.Record.ProductURL(),
		})
	}
	return out
}

func printResult(w io.Writer, res *ranking.Result) error {
	for _, ig := range res.Ignored() {
		fmt.Fprintf(w, "ignored %s=%q: %s\n", ig.Field, ig.Value, ig.Reason)
	}
	if res.IsEmpty() {
		_, err := fmt.Fprintln(w, "no products found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tROW\tSCORE\tNAME\tBRAND\tPRICE\tRATING\n")
	for i, h := range res.Hits() {
		fmt.Fprintf(tw, "%d\t%d\t%.4f\t%s\t%s\t%.2f\t%.1f\n",
			i+1, h.Position, h.Score, h.Record.Name(), h.Record.Brand(), h.Record.Price(), h.Record.Rating())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d candidates, ranked by %s\n", res.Len(), res.Candidates(), res.Path())
	return err
}
