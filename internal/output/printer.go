// Package output renders API results as terminal text or CSV lines.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/hunter/internal/hunter"
	"github.com/jonathan/hunter/internal/types"
)

// Format selects how results are rendered.
type Format int

const (
	// FormatText is tab-separated label/value output for a terminal.
	FormatText Format = iota
	// FormatCSV is comma-separated output with a single header line.
	FormatCSV
)

var csvHeaders = map[types.Kind][]string{
	types.KindSearch: {"domain", "email", "type", "sources"},
	types.KindFind:   {"domain", "first_name", "last_name", "email", "score", "sources"},
	types.KindVerify: {"email", "result", "score", "sources"},
}

// textSearchHeader is printed above search results in text mode.
const textSearchHeader = "Domain\tEmail\tType\tSources"

// CSVHeader returns the column names written for a kind in CSV mode.
func CSVHeader(kind types.Kind) []string {
	return append([]string(nil), csvHeaders[kind]...)
}

// JoinSources flattens sources into one semicolon-separated string of URIs.
func JoinSources(sources []hunter.Source) string {
	uris := make([]string, len(sources))
	for i, s := range sources {
		uris[i] = s.URI
	}
	return strings.Join(uris, ";")
}

// FormatScore prints a score in its shortest form (95, 0.5).
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// Printer writes results in one format. A header is written at most once,
// immediately before the first result line.
type Printer struct {
	out        io.Writer
	format     Format
	csv        *csv.Writer
	headerDone bool
}

// NewPrinter creates a Printer that writes to the given writer.
func NewPrinter(out io.Writer, format Format) *Printer {
	p := &Printer{out: out, format: format}
	if format == FormatCSV {
		p.csv = csv.NewWriter(out)
	}
	return p
}


// Printf writes a free-form message line.
func (p *Printer) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(p.out, format+"\n", args...)
	return err
}

// Search renders every email of a domain search. Nothing, not even the
// header, is written when the result holds no emails.
func (p *Printer) Search(domain string, result *hunter.SearchResult) error {
	for _, e := range result.Emails {
		sources := JoinSources(e.Sources)
		if p.format == FormatCSV {
			if err := p.record(types.KindSearch, domain, e.Value, e.Type, sources); err != nil {
				return err
			}
			continue
		}

		if !p.headerDone {
			if err := p.Printf("%s", textSearchHeader); err != nil {
				return err
			}
			p.headerDone = true
		}
		if err := p.Printf("%s\t%s\t%s\t%s", domain, e.Value, e.Type, sources); err != nil {
			return err
		}
	}
	return nil
}

// Find renders an email lookup.
func (p *Printer) Find(req types.FindRequest, result *hunter.FindResult) error {
	sources := JoinSources(result.Sources)
	score := FormatScore(result.Score)

	if p.format == FormatCSV {
		return p.record(types.KindFind, req.Domain, req.FirstName, req.LastName, result.Email, score, sources)
	}

	return p.labels(
		"Domain", req.Domain,
		"First Name", req.FirstName,
		"Last Name", req.LastName,
		"Email", result.Email,
		"Score", score,
		"Sources", quoteSources(sources),
	)
}

// Verify renders a deliverability check.
func (p *Printer) Verify(email string, result *hunter.VerifyResult) error {
	sources := JoinSources(result.Sources)
	score := FormatScore(result.Score)

	if p.format == FormatCSV {
		return p.record(types.KindVerify, email, result.Result, score, sources)
	}

	return p.labels(
		"Email", email,
		"Result", result.Result,
		"Score", score,
		"Sources", quoteSources(sources),
	)
}

func (p *Printer) record(kind types.Kind, fields ...string) error {
	if !p.headerDone {
		if err := p.csv.Write(CSVHeader(kind)); err != nil {
			return err
		}
		p.headerDone = true
	}
	if err := p.csv.Write(fields); err != nil {
		return err
	}
	// Flush per record so interleaved Printf messages keep row order.
	p.csv.Flush()
	return p.csv.Error()
}

func (p *Printer) labels(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := p.Printf("%s:\t%s", pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// quoteSources JSON-encodes the flattened source string for terminal output.
func quoteSources(sources string) string {
	b, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return sources
	}
	return string(b)
}
