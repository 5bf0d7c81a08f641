package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// segmentRule holds the rank rules and description for one segment.
type segmentRule struct {
	Segment     schema.Segment `json:"segment"`
	Rule        string         `json:"rule"`
	Description string         `json:"description"`
}

// tierRule holds the revenue band and description for one tier.
type tierRule struct {
	Tier        schema.Tier `json:"tier"`
	Band        string      `json:"band"`
	Description string      `json:"description"`
}

// taxonomyModel is the render model for the taxonomy reference.
type taxonomyModel struct {
	Segments []segmentRule `json:"segments"`
	Tiers    []tierRule    `json:"tiers"`
}

// segmentEmojis decorates segment headers in text output.
var segmentEmojis = map[schema.Segment]string{
	schema.SegmentChampions:         "🏆",
	schema.SegmentLoyal:             "💎",
	schema.SegmentPotentialLoyalist: "🌱",
	schema.SegmentNew:               "✨",
	schema.SegmentAtRisk:            "⚠️ ",
	schema.SegmentLost:              "💤",
	schema.SegmentOther:             "📦",
}

// buildTaxonomyModel constructs the complete render model. The rules restate
// the segment mapping in rank order and must stay in sync with it.
func buildTaxonomyModel() *taxonomyModel {
	rules := map[schema.Segment]string{
		schema.SegmentChampions:         "R>=4, F>=4, M>=4",
		schema.SegmentAtRisk:            "R<=2, F>=4, M>=4",
		schema.SegmentLoyal:             "R>=3, F>=3, M>=3",
		schema.SegmentLost:              "R<=2, F<=2",
		schema.SegmentNew:               "R>=4, F<=2",
		schema.SegmentPotentialLoyalist: "R>=3, M>=2",
		schema.SegmentOther:             "everything else",
	}

	segments := make([]segmentRule, len(schema.AllSegments))
	for i, s := range schema.AllSegments {
		segments[i] = segmentRule{
			Segment:     s,
			Rule:        rules[s],
			Description: schema.SegmentDescription(s),
		}
	}

	bands := map[schema.Tier]string{
		schema.TierA: "first 80% of revenue",
		schema.TierB: "80% to 95% of revenue",
		schema.TierC: "final 5% of revenue",
	}
	tiers := make([]tierRule, len(schema.AllTiers))
	for i, t := range schema.AllTiers {
		tiers[i] = tierRule{
			Tier:        t,
			Band:        bands[t],
			Description: schema.TierDescription(t),
		}
	}

	return &taxonomyModel{Segments: segments, Tiers: tiers}
}

// PrintTaxonomy displays the segment and tier reference tables.
// This is a static display that does not require any dataset.
func PrintTaxonomy(cfg *contract.Config) error {
	model := buildTaxonomyModel()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"kind", "name", "rule", "description"}
			return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
				return writeCSVTaxonomy(csvWriter, model)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTaxonomyText(w, model, cfg)
		}, "Wrote text")
	}
}

// writeTaxonomyText displays the taxonomy in human-readable text format.
func writeTaxonomyText(w io.Writer, model *taxonomyModel, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%s\n", headerText(cfg, "👥", "Customer Segments")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rules apply in order; the first match wins. Rank 5 is best on every dimension.\n\n"); err != nil {
		return err
	}
	for _, s := range model.Segments {
		name := contract.GetPlainSegmentLabel(s.Segment)
		if cfg.UseEmojis {
			name = segmentEmojis[s.Segment] + " " + name
		}
		if _, err := fmt.Fprintf(w, "%s (%s)\n", name, s.Rule); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   %s\n\n", s.Description); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s\n", headerText(cfg, "📦", "Product Tiers")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Products are ranked by revenue and classified by cumulative share.\n\n"); err != nil {
		return err
	}
	for _, t := range model.Tiers {
		if _, err := fmt.Fprintf(w, "Tier %s (%s)\n", t.Tier, t.Band); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   %s\n\n", t.Description); err != nil {
			return err
		}
	}

	return nil
}

// writeCSVTaxonomy writes the taxonomy in CSV format.
func writeCSVTaxonomy(w *csv.Writer, model *taxonomyModel) error {
	for _, s := range model.Segments {
		rec := []string{"segment", string(s.Segment), s.Rule, s.Description}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	for _, t := range model.Tiers {
		rec := []string{"tier", string(t.Tier), t.Band, t.Description}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
