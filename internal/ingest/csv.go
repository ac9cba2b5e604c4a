package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fracwatch/fracwatch/internal/telemetry"
)

// Column headers as written by the EDR CSV export.
const (
	colDepth = "Hole Depth (feet)"
	colROP   = "Rate Of Penetration (ft_per_hr)"
	colWOB   = "Weight on Bit (klbs)"
	colRPM   = "Rotary RPM (RPM)"
	colDate  = "YYYY/MM/DD"
	colTime  = "HH:MM:SS"
)

// ReadFile loads an EDR CSV export from path. See Read.
func ReadFile(path string) ([]telemetry.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open csv: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses an EDR CSV export into raw Records. The first row must be the
// header; columns are located by name so extra columns and arbitrary order
// are fine. Cells that are empty or not numeric become NaN; validation and
// rejection is the normalizer's job, not the reader's.
func Read(r io.Reader) ([]telemetry.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colDepth, colROP, colTime} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("ingest: missing column %q", required)
		}
	}

	var records []telemetry.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row %d: %w", len(records)+2, err)
		}
		records = append(records, telemetry.Record{
			Depth: cellFloat(row, idx, colDepth),
			ROP:   cellFloat(row, idx, colROP),
			WOB:   cellFloat(row, idx, colWOB),
			RPM:   cellFloat(row, idx, colRPM),
			Date:  cellString(row, idx, colDate),
			Time:  cellString(row, idx, colTime),
		})
	}

	slog.Info("ingest: csv loaded", "rows", len(records))
	return records, nil
}

func cellString(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func cellFloat(row []string, idx map[string]int, col string) float64 {
	s := cellString(row, idx, col)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
