package dispatch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/hunter/internal/output"
	"github.com/jonathan/hunter/internal/types"
)

// requiredColumns lists the header columns each kind cannot run without.
var requiredColumns = map[types.Kind][]string{
	types.KindSearch: {"domain"},
	types.KindFind:   {"domain", "first_name", "last_name"},
	types.KindVerify: {"email"},
}

// RequiredColumns returns the header columns a batch of kind must carry.
func RequiredColumns(kind types.Kind) []string {
	return append([]string(nil), requiredColumns[kind]...)
}

// Summary counts what a batch run did.
type Summary struct {
	RunID    uuid.UUID
	Rows     int
	Requests int
	Failed   int
	Skipped  int
}

// header maps trimmed column names to their index.
type header map[string]int

func newHeader(names []string) header {
	h := make(header, len(names))
	for i, n := range names {
		n = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
		if _, dup := h[n]; !dup {
			h[n] = i
		}
	}
	return h
}

// value returns the trimmed cell for col, or "" when the column or cell is
// absent.
func (h header) value(record []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// validateColumns reports every missing required column. It returns true
// only when all of them are present.
func validateColumns(p *output.Printer, kind types.Kind, h header) (bool, error) {
	ok := true
	for _, col := range RequiredColumns(kind) {
		if _, present := h[col]; present {
			continue
		}
		ok = false
		if err := p.Printf("%s column is required", col); err != nil {
			return false, err
		}
	}
	return ok, nil
}

// rowRequest builds the request for one data row.
func rowRequest(kind types.Kind, h header, record []string) (types.Request, error) {
	switch kind {
	case types.KindSearch:
		limit, err := intOrDefault(h.value(record, "limit"), types.DefaultLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid limit: %w", err)
		}
		offset, err := intOrDefault(h.value(record, "offset"), types.DefaultOffset)
		if err != nil {
			return nil, fmt.Errorf("invalid offset: %w", err)
		}
		return types.SearchRequest{
			Domain: h.value(record, "domain"),
			Limit:  limit,
			Offset: offset,
			Type:   h.value(record, "type"),
		}, nil
	case types.KindFind:
		return types.FindRequest{
			Domain:    h.value(record, "domain"),
			FirstName: h.value(record, "first_name"),
			LastName:  h.value(record, "last_name"),
		}, nil
	case types.KindVerify:
		return types.VerifyRequest{Email: h.value(record, "email")}, nil
	}
	return nil, fmt.Errorf("unsupported command %q", kind)
}

func intOrDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

// RunBatch processes a CSV input with a header row, one request per data
// row, strictly in order. Rows that fail validation or whose call fails are
// reported and skipped; the rest of the batch still runs. A missing required
// column aborts before any request is sent.
func (d *Dispatcher) RunBatch(ctx context.Context, kind types.Kind, in io.Reader) (Summary, error) {
	summary := Summary{RunID: uuid.New()}
	logger := d.logger.With("run_id", summary.RunID, "command", kind)
	p := output.NewPrinter(d.out, output.FormatCSV)

	if _, ok := types.ParseKind(string(kind)); !ok {
		return summary, fmt.Errorf("unsupported command %q", kind)
	}

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	names, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return summary, fmt.Errorf("failed to read header: %w", err)
	}
	h := newHeader(names)

	ok, err := validateColumns(p, kind, h)
	if err != nil {
		return summary, err
	}
	if !ok {
		return summary, ErrMissingColumns
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		summary.Rows++

		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return summary, fmt.Errorf("failed to read row: %w", err)
			}
			summary.Skipped++
			if werr := p.Printf("row %d: %v", perr.StartLine, perr.Err); werr != nil {
				return summary, werr
			}
			continue
		}
		line, _ := reader.FieldPos(0)

		req, err := rowRequest(kind, h, record)
		if err == nil {
			err = req.Validate()
		}
		if err != nil {
			summary.Skipped++
			if werr := p.Printf("row %d: %v", line, err); werr != nil {
				return summary, werr
			}
			continue
		}

		if summary.Requests > 0 {
			logger.Debug("throttling", "delay", d.throttle)
			if err := d.sleep(ctx, d.throttle); err != nil {
				return summary, err
			}
		}

		summary.Requests++
		err = d.execute(ctx, p, req)
		var ce *callError
		switch {
		case errors.As(err, &ce):
			if ctxErr := ctx.Err(); ctxErr != nil {
				return summary, ctxErr
			}
			summary.Failed++
			logger.Debug("request failed", "line", line, "error", ce.err)
			if werr := p.Printf("%s", ce.Error()); werr != nil {
				return summary, werr
			}
		case err != nil:
			return summary, fmt.Errorf("failed to write output: %w", err)
		}
	}

	logger.Info("batch complete",
		"rows", summary.Rows,
		"requests", summary.Requests,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)

	if summary.Failed > 0 || summary.Skipped > 0 {
		return summary, fmt.Errorf("%w: %d failed, %d skipped", ErrRequestsFailed, summary.Failed, summary.Skipped)
	}
	return summary, nil
}
