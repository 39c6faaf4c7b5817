// Package dispatch routes single and CSV batch requests to the Hunter API
// and prints their results.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonathan/hunter/internal/hunter"
	"github.com/jonathan/hunter/internal/output"
	"github.com/jonathan/hunter/internal/types"
)

// DefaultThrottle is the pause between successive batch requests.
const DefaultThrottle = 200 * time.Millisecond

var (
	// ErrInvalidRequest is returned when required fields are missing; no
	// request was sent.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrMissingColumns is returned when a batch header lacks a required
	// column; no row was processed.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrRequestsFailed is returned after all work completed when at least
	// one request failed or one row was skipped.
	ErrRequestsFailed = errors.New("one or more requests failed")
)

// Client is the subset of hunter.Client the dispatcher needs.
type Client interface {
	Search(ctx context.Context, p hunter.SearchParams) (*hunter.SearchResult, error)
	Find(ctx context.Context, p hunter.FindParams) (*hunter.FindResult, error)
	Verify(ctx context.Context, email string) (*hunter.VerifyResult, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options configures a Dispatcher.
type Options struct {
	// Throttle separates successive batch requests. Zero disables it.
	Throttle time.Duration
	Logger   *log.Logger
	Sleep    SleepFunc
}

// DefaultOptions returns the production throttle and logger.
func DefaultOptions() *Options {
	return &Options{Throttle: DefaultThrottle}
}

// Dispatcher validates requests, calls the API one request at a time and
// prints results to out.
type Dispatcher struct {
	client   Client
	out      io.Writer
	throttle time.Duration
	logger   *log.Logger
	sleep    SleepFunc
}

// New creates a Dispatcher. Nil options use DefaultOptions.
func New(client Client, out io.Writer, opts *Options) *Dispatcher {
	if opts == nil {
		opts = DefaultOptions()
	}

	d := &Dispatcher{
		client:   client,
		out:      out,
		throttle: opts.Throttle,
		logger:   opts.Logger,
		sleep:    opts.Sleep,
	}
	if d.logger == nil {
		d.logger = log.Default()
	}
	if d.sleep == nil {
		d.sleep = sleepContext
	}
	return d
}

// callError marks a failed API call, as opposed to a failure to write output.
type callError struct {
	kind types.Kind
	err  error
}

func (e *callError) Error() string {
	return fmt.Sprintf("Error during %s request: %v", e.kind, e.err)
}

func (e *callError) Unwrap() error {
	return e.err
}

// RunSingle validates and executes one request, printing its result as
// terminal text. Missing fields are each reported and no call is made.
func (d *Dispatcher) RunSingle(ctx context.Context, req types.Request) error {
	p := output.NewPrinter(d.out, output.FormatText)

	if err := req.Validate(); err != nil {
		if perr := printValidation(p, err); perr != nil {
			return perr
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if err := d.banner(p, req); err != nil {
		return err
	}

	err := d.execute(ctx, p, req)
	var ce *callError
	if errors.As(err, &ce) {
		if perr := p.Printf("%s", ce.Error()); perr != nil {
			return perr
		}
		return fmt.Errorf("%w: %v", ErrRequestsFailed, ce.err)
	}
	return err
}

func (d *Dispatcher) banner(p *output.Printer, req types.Request) error {
	switch r := req.(type) {
	case types.SearchRequest:
		lines := []string{fmt.Sprintf("Searching %s for emails", r.Domain)}
		if r.Limit != 0 {
			lines = append(lines, fmt.Sprintf("Limit: %d", r.Limit))
		}
		if r.Offset != 0 {
			lines = append(lines, fmt.Sprintf("Offset: %d", r.Offset))
		}
		if r.Type != "" {
			lines = append(lines, fmt.Sprintf("Type: %s", r.Type))
		}
		for _, l := range lines {
			if err := p.Printf("%s", l); err != nil {
				return err
			}
		}
		return nil
	case types.FindRequest:
		return p.Printf("Finding email for %s, %s, %s", r.Domain, r.FirstName, r.LastName)
	case types.VerifyRequest:
		return p.Printf("Verifying deliverability of %s", r.Email)
	}
	return fmt.Errorf("unsupported request %T", req)
}

// execute performs exactly one API call for req and renders the result.
// API failures are returned as *callError.
func (d *Dispatcher) execute(ctx context.Context, p *output.Printer, req types.Request) error {
	switch r := req.(type) {
	case types.SearchRequest:
		res, err := d.client.Search(ctx, hunter.SearchParams{
			Domain: r.Domain,
			Limit:  r.Limit,
			Offset: r.Offset,
			Type:   r.Type,
		})
		if err != nil {
			return &callError{kind: r.Kind(), err: err}
		}
		return p.Search(r.Domain, res)
	case types.FindRequest:
		res, err := d.client.Find(ctx, hunter.FindParams{
			Domain:    r.Domain,
			FirstName: r.FirstName,
			LastName:  r.LastName,
		})
		if err != nil {
			return &callError{kind: r.Kind(), err: err}
		}
		return p.Find(r, res)
	case types.VerifyRequest:
		res, err := d.client.Verify(ctx, r.Email)
		if err != nil {
			return &callError{kind: r.Kind(), err: err}
		}
		return p.Verify(r.Email, res)
	}
	return fmt.Errorf("unsupported request %T", req)
}

func printValidation(p *output.Printer, err error) error {
	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		return p.Printf("%v", err)
	}
	for _, f := range verr.Fields {
		if perr := p.Printf("%s", f.Error()); perr != nil {
			return perr
		}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
