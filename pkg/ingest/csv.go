// Package ingest turns bulk feedback exports into unclassified inputs.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/valentinpelus/signal/pkg/feedback"
)

// Defaults fill fields a row leaves empty
type Defaults struct {
	Source       string
	CustomerType string
}

// DefaultValues are used when the caller passes a zero Defaults
var DefaultValues = Defaults{Source: "Support", CustomerType: "Individual"}

// Result is the outcome of parsing one CSV document
type Result struct {
	Inputs  []feedback.Input
	Skipped int
}

type columns struct {
	source, message, customerType, timestamp int
}

var positional = columns{source: 0, message: 1, customerType: 2, timestamp: 3}

// ParseCSV reads a CSV document whose first line is a header. Columns are
// mapped by header name when the header names a message column, otherwise
// by position (source, message, customerType, timestamp). Rows with fewer
// than three fields or a blank message are skipped and counted.
func ParseCSV(r io.Reader, defaults Defaults) (Result, error) {
	if defaults.Source == "" {
		defaults.Source = DefaultValues.Source
	}
	if defaults.CustomerType == "" {
		defaults.CustomerType = DefaultValues.CustomerType
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols := mapColumns(header)

	var res Result
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}

		in, ok := parseRow(row, cols, defaults)
		if !ok {
			res.Skipped++
			continue
		}
		res.Inputs = append(res.Inputs, in)
	}

	return res, nil
}

func mapColumns(header []string) columns {
	cols := columns{source: -1, message: -1, customerType: -1, timestamp: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "source":
			cols.source = i
		case "message":
			cols.message = i
		case "customertype", "customer_type":
			cols.customerType = i
		case "timestamp":
			cols.timestamp = i
		}
	}
	if cols.message < 0 {
		return positional
	}
	return cols
}

func parseRow(row []string, cols columns, defaults Defaults) (feedback.Input, bool) {
	if len(row) < 3 {
		return feedback.Input{}, false
	}

	message := strings.TrimSpace(field(row, cols.message))
	if message == "" {
		return feedback.Input{}, false
	}

	in := feedback.Input{
		Source:       strings.TrimSpace(field(row, cols.source)),
		Message:      message,
		CustomerType: strings.TrimSpace(field(row, cols.customerType)),
	}
	if in.Source == "" {
		in.Source = defaults.Source
	}
	if in.CustomerType == "" {
		in.CustomerType = defaults.CustomerType
	}

	// an unparseable timestamp falls back to import time
	if raw := strings.TrimSpace(field(row, cols.timestamp)); raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			in.Timestamp = ts
		}
	}

	return in, true
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
