package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonathan/hunter/internal/hunter"
	"github.com/jonathan/hunter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records calls and answers from per-key canned results.
type fakeClient struct {
	calls   []string
	fail    map[string]error
	search  map[string]*hunter.SearchResult
	find    map[string]*hunter.FindResult
	verify  map[string]*hunter.VerifyResult
	lastArg hunter.SearchParams
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		fail:   map[string]error{},
		search: map[string]*hunter.SearchResult{},
		find:   map[string]*hunter.FindResult{},
		verify: map[string]*hunter.VerifyResult{},
	}
}

func (f *fakeClient) Search(_ context.Context, p hunter.SearchParams) (*hunter.SearchResult, error) {
	f.calls = append(f.calls, "search:"+p.Domain)
	f.lastArg = p
	if err := f.fail[p.Domain]; err != nil {
		return nil, err
	}
	if r, ok := f.search[p.Domain]; ok {
		return r, nil
	}
	return &hunter.SearchResult{}, nil
}

func (f *fakeClient) Find(_ context.Context, p hunter.FindParams) (*hunter.FindResult, error) {
	key := p.FirstName + " " + p.LastName
	f.calls = append(f.calls, "find:"+key)
	if err := f.fail[key]; err != nil {
		return nil, err
	}
	if r, ok := f.find[key]; ok {
		return r, nil
	}
	return &hunter.FindResult{}, nil
}

func (f *fakeClient) Verify(_ context.Context, email string) (*hunter.VerifyResult, error) {
	f.calls = append(f.calls, "verify:"+email)
	if err := f.fail[email]; err != nil {
		return nil, err
	}
	if r, ok := f.verify[email]; ok {
		return r, nil
	}
	return &hunter.VerifyResult{}, nil
}

func quietOptions() *Options {
	return &Options{Logger: log.New(io.Discard)}
}

func TestRunSingle_SearchScenario(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/domain-search", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":{"emails":[{"value":"x@example.com","type":"personal","sources":[{"uri":"http://s1"}]}]}}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	client := hunter.New("key", &hunter.Options{BaseURL: server.URL, Logger: log.New(io.Discard)})
	d := New(client, &out, quietOptions())

	err := d.RunSingle(context.Background(), types.SearchRequest{Domain: "example.com", Limit: 10, Offset: 0})
	require.NoError(t, err)

	assert.Equal(t,
		"Searching example.com for emails\n"+
			"Limit: 10\n"+
			"Domain\tEmail\tType\tSources\n"+
			"example.com\tx@example.com\tpersonal\thttp://s1\n",
		out.String())
}

func TestRunSingle_VerifyNotFoundScenario(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var out bytes.Buffer
	client := hunter.New("key", &hunter.Options{BaseURL: server.URL, Logger: log.New(io.Discard)})
	d := New(client, &out, quietOptions())

	err := d.RunSingle(context.Background(), types.VerifyRequest{Email: "bad@nowhere"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestsFailed)
	assert.Equal(t, 1, calls)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Verifying deliverability of bad@nowhere", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Error during verify request:"), lines[1])
	assert.Contains(t, lines[1], "404")
}

func TestRunSingle_MissingFieldsMakesNoCall(t *testing.T) {
	client := newFakeClient()
	var out bytes.Buffer
	d := New(client, &out, quietOptions())

	err := d.RunSingle(context.Background(), types.FindRequest{Domain: "example.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Empty(t, client.calls)
	assert.Equal(t,
		"first_name is required when using the find command\n"+
			"last_name is required when using the find command\n",
		out.String())
}

func TestRunSingle_ExactlyOneCall(t *testing.T) {
	client := newFakeClient()
	client.find["Jane Doe"] = &hunter.FindResult{Email: "jane@example.com", Score: 90}

	var out bytes.Buffer
	d := New(client, &out, quietOptions())

	err := d.RunSingle(context.Background(), types.FindRequest{Domain: "example.com", FirstName: "Jane", LastName: "Doe"})
	require.NoError(t, err)
	assert.Equal(t, []string{"find:Jane Doe"}, client.calls)
	assert.Contains(t, out.String(), "Finding email for example.com, Jane, Doe\n")
	assert.Contains(t, out.String(), "Email:\tjane@example.com\n")
	assert.Contains(t, out.String(), "Score:\t90\n")
}

func TestRunSingle_SearchBannerShowsOptionalFields(t *testing.T) {
	client := newFakeClient()
	var out bytes.Buffer
	d := New(client, &out, quietOptions())

	err := d.RunSingle(context.Background(), types.SearchRequest{Domain: "example.com", Limit: 5, Offset: 10, Type: "generic"})
	require.NoError(t, err)
	assert.Equal(t, "Searching example.com for emails\nLimit: 5\nOffset: 10\nType: generic\n", out.String())
	assert.Equal(t, "generic", client.lastArg.Type)
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), 0))
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleepContext(ctx, time.Hour)
	assert.True(t, errors.Is(err, context.Canceled))
}
