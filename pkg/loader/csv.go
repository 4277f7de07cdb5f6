// Package loader reads trip records from CSV files into edge records for
// graph construction. It is the input collaborator of the analysis core:
// all it guarantees is a sequence of (from, to, weight) records.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"mobility-network-backend/pkg/graph"
)

// Options controls how the CSV is interpreted.
type Options struct {
	// SourceColumn and TargetColumn are the required endpoint columns.
	SourceColumn string
	TargetColumn string
	// WeightColumn is optional; when empty every edge gets the default
	// weight of 1.
	WeightColumn string
	// MaxRows caps how many data rows are read; <= 0 means no cap.
	MaxRows int
}

// DefaultOptions matches the bike-share trip export this service was built
// around: departure/return station columns, no weight column, first 1000
// rows for responsiveness.
func DefaultOptions() Options {
	return Options{
		SourceColumn: "departure_id",
		TargetColumn: "return_id",
		MaxRows:      1000,
	}
}

// LoadEdgeRecords reads edge records from the CSV file at path.
// It fails with a DataError when the header is missing one of the required
// endpoint columns. Malformed data rows (wrong field count, blank endpoint,
// unparseable weight) are skipped with a warning rather than aborting the
// whole load.
func LoadEdgeRecords(path string, opts Options) ([]graph.EdgeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	records, err := readEdgeRecords(f, opts)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", path).
		Int("records", len(records)).
		Msg("Edge records loaded")

	return records, nil
}

func readEdgeRecords(r io.Reader, opts Options) ([]graph.EdgeRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, graph.NewDataError("failed to read CSV header: %v", err)
	}

	srcIdx, tgtIdx, wIdx := -1, -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case opts.SourceColumn:
			srcIdx = i
		case opts.TargetColumn:
			tgtIdx = i
		case opts.WeightColumn:
			if opts.WeightColumn != "" {
				wIdx = i
			}
		}
	}
	if srcIdx < 0 || tgtIdx < 0 {
		return nil, graph.NewDataError("missing required fields: CSV must contain columns %q and %q",
			opts.SourceColumn, opts.TargetColumn)
	}
	if opts.WeightColumn != "" && wIdx < 0 {
		return nil, graph.NewDataError("missing required fields: weight column %q not found", opts.WeightColumn)
	}

	var records []graph.EdgeRecord
	row := 0
	for {
		if opts.MaxRows > 0 && row >= opts.MaxRows {
			break
		}
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Int("row", row+1).Err(err).Msg("Skipping malformed CSV row")
			row++
			continue
		}
		row++

		if srcIdx >= len(fields) || tgtIdx >= len(fields) {
			log.Warn().Int("row", row).Msg("Skipping row with too few fields")
			continue
		}

		from := strings.TrimSpace(fields[srcIdx])
		to := strings.TrimSpace(fields[tgtIdx])
		if from == "" || to == "" {
			log.Warn().Int("row", row).Msg("Skipping row with blank endpoint")
			continue
		}

		rec := graph.EdgeRecord{From: from, To: to}
		if wIdx >= 0 {
			if wIdx >= len(fields) {
				log.Warn().Int("row", row).Msg("Skipping row with missing weight field")
				continue
			}
			w, err := strconv.ParseFloat(strings.TrimSpace(fields[wIdx]), 64)
			if err != nil || w <= 0 {
				log.Warn().Int("row", row).Str("weight", fields[wIdx]).Msg("Skipping row with invalid weight")
				continue
			}
			rec.Weight = w
		}
		records = append(records, rec)
	}

	return records, nil
}
