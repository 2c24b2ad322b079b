package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tejass087/Skin-Care-Reccomadation/internal/app"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/config"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/domain/skin"
	"github.com/Tejass087/Skin-Care-Reccomadation/internal/usecase/analysis"
)

func newMatchCmd(root *rootOptions) *cobra.Command {
	var (
		skinType string
		tone     string
		acne     string
		table    string
	)

	cmd := &cobra.Command{
		Use:     "match",
		Short:   "Print the curated bundle for a skin type, tone and acne level",
		Example: "  beautyctl match --type oily --tone 3 --acne High",
		RunE: func(cmd *cobra.Command, _ []string) error {
			metrics, err := skin.NewMetrics(skinType, tone, acne)
			if err != nil {
				return err
			}
			m, err := app.Matcher(config.CuratedConfig{Path: table}, root.logger)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), m.Match(metrics))
		},
	}

	cmd.Flags().StringVar(&skinType, "type", "normal", "skin type: normal, oily, dry or combination")
	cmd.Flags().StringVar(&tone, "tone", "3", "tone level 1 (very fair) to 6 (deep)")
	cmd.Flags().StringVar(&acne, "acne", "Low", "acne level: Low, Moderate or High")
	cmd.Flags().StringVar(&table, "table", "", "curated table YAML (default: embedded table)")
	return cmd
}

// analysisView mirrors the HTTP skin_analysis object.
type analysisView struct {
	Type            string    `json:"type"`
	Tone            string    `json:"tone"`
	ToneDescription string    `json:"tone_description"`
	Acne            string    `json:"acne"`
	RawMetrics      *skin.Raw `json:"raw_metrics,omitempty"`
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var (
		input string
		table string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify skin from sampled RGB pixels and print the matching bundle",
		Long: `Analyze reads a JSON array of [r, g, b] triples from --input or stdin,
classifies skin type, tone and acne level, and prints the curated bundle.`,
		Example: `  echo '[[220,180,160],[210,170,150]]' | beautyctl analyze`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			var pixels []analysis.Pixel
			if err := json.NewDecoder(r).Decode(&pixels); err != nil {
				return fmt.Errorf("decode pixels: %w", err)
			}

			metrics, err := analysis.Analyze(pixels)
			if err != nil {
				return err
			}
			m, err := app.Matcher(config.CuratedConfig{Path: table}, root.logger)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), struct {
				SkinAnalysis    analysisView `json:"skin_analysis"`
				Recommendations skin.Bundle  `json:"recommendations"`
			}{
				SkinAnalysis: analysisView{
					Type:            string(metrics.Type()),
					Tone:            string(metrics.Tone()),
					ToneDescription: metrics.ToneDescription(),
					Acne:            string(metrics.Acne()),
					RawMetrics:      metrics.Raw(),
				},
				Recommendations: m.Match(metrics),
			})
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "pixel JSON file (default: stdin)")
	cmd.Flags().StringVar(&table, "table", "", "curated table YAML (default: embedded table)")
	return cmd
}
