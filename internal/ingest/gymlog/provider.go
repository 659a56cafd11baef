package gymlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nomadflamingo/gymlog/internal/ingest"
)

// Provider reads whole exercise log files and parses them.
type Provider struct {
	log *slog.Logger
}

// NewProvider creates a new exercise log ingest provider.
func NewProvider(log *slog.Logger) *Provider {
	return &Provider{log: log}
}

// Ingest reads r to the end, parses it and returns the records with counts.
func (p *Provider) Ingest(ctx context.Context, r io.Reader) (*ingest.Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading exercise log: %w", err)
	}

	records, err := Parse(string(data))
	if err != nil {
		p.log.WarnContext(ctx, "exercise log rejected", "kind", ErrorKind(err), "error", err)
		return nil, fmt.Errorf("parsing exercise log: %w", err)
	}

	result := &ingest.Result{
		RecordsParsed: len(records),
		Records:       records,
	}
	for _, rec := range records {
		result.SetsParsed += len(rec.Sets)
		result.AttemptsParsed += rec.AttemptCount()
	}

	p.log.InfoContext(ctx, "exercise log parsed",
		"bytes", len(data),
		"records", result.RecordsParsed,
		"sets", result.SetsParsed,
		"attempts", result.AttemptsParsed,
	)
	return result, nil
}
