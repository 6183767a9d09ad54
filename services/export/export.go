package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"hsakai921/clinicharvester/internal/extractor"
	"hsakai921/clinicharvester/logger"
	"hsakai921/clinicharvester/services/store"
)

// fetchSource names the fetch transport recorded in the CSV source column
const fetchSource = "http"

// WriteSnapshots writes the run's raw cards and flattened clinic rows to
// outDir as cards.json and latest.csv
func WriteSnapshots(outDir string, cards []extractor.Card, rows []store.ClinicRow) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	if err := writeCardsJSON(filepath.Join(outDir, "cards.json"), cards); err != nil {
		return err
	}
	if err := writeLatestCSV(filepath.Join(outDir, "latest.csv"), rows); err != nil {
		return err
	}

	logger.ForComponent("export").Info().Str("dir", outDir).Msg("Snapshots written")
	return nil
}

func writeCardsJSON(path string, cards []extractor.Card) error {
	data, err := json.MarshalIndent(cards, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cards: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeLatestCSV(path string, rows []store.ClinicRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp_utc", "source", "url", "title", "h1", "status", "notes"}); err != nil {
		return err
	}

	for _, r := range rows {
		notes := ""
		if r.Rating != nil {
			notes = fmt.Sprintf("rating=%.1f", *r.Rating)
		}
		if r.Reviews != nil {
			if notes != "" {
				notes += ", "
			}
			notes += fmt.Sprintf("reviews=%d", *r.Reviews)
		}

		record := []string{
			r.ScrapedAt.Format("2006-01-02T15:04:05Z"),
			fetchSource,
			r.ClinicURL,
			r.Name,
			r.Name,
			r.Status,
			notes,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
