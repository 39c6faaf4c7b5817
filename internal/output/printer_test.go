package output

import (
	"bytes"
	"testing"

	"github.com/jonathan/hunter/internal/hunter"
	"github.com/jonathan/hunter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinSources(t *testing.T) {
	sources := []hunter.Source{{URI: "a"}, {URI: "b"}}
	assert.Equal(t, "a;b", JoinSources(sources))
	assert.Equal(t, "", JoinSources(nil))
	assert.Equal(t, "only", JoinSources([]hunter.Source{{URI: "only"}}))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "95", FormatScore(95))
	assert.Equal(t, "0.5", FormatScore(0.5))
	assert.Equal(t, "0", FormatScore(0))
}

func TestPrinter_SearchText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatText)

	result := &hunter.SearchResult{Emails: []hunter.Email{
		{Value: "x@example.com", Type: "personal", Sources: []hunter.Source{{URI: "http://s1"}}},
		{Value: "info@example.com", Type: "generic"},
	}}
	require.NoError(t, p.Search("example.com", result))

	assert.Equal(t,
		"Domain\tEmail\tType\tSources\n"+
			"example.com\tx@example.com\tpersonal\thttp://s1\n"+
			"example.com\tinfo@example.com\tgeneric\t\n",
		buf.String())
}

func TestPrinter_SearchNoEmailsPrintsNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatCSV)

	require.NoError(t, p.Search("empty.com", &hunter.SearchResult{}))
	assert.Empty(t, buf.String())
}

func TestPrinter_CSVHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatCSV)

	require.NoError(t, p.Verify("a@example.com", &hunter.VerifyResult{Result: "deliverable", Score: 91}))
	require.NoError(t, p.Printf("Error during verify request: boom"))
	require.NoError(t, p.Verify("b@example.com", &hunter.VerifyResult{
		Result: "risky", Score: 0.5, Sources: []hunter.Source{{URI: "a"}, {URI: "b"}},
	}))

	assert.Equal(t,
		"email,result,score,sources\n"+
			"a@example.com,deliverable,91,\n"+
			"Error during verify request: boom\n"+
			"b@example.com,risky,0.5,a;b\n",
		buf.String())
}

func TestPrinter_FindCSV(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatCSV)

	req := types.FindRequest{Domain: "example.com", FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, p.Find(req, &hunter.FindResult{Email: "jane@example.com", Score: 88}))

	assert.Equal(t,
		"domain,first_name,last_name,email,score,sources\n"+
			"example.com,Jane,Doe,jane@example.com,88,\n",
		buf.String())
}

func TestPrinter_FindText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatText)

	req := types.FindRequest{Domain: "example.com", FirstName: "Jane", LastName: "Doe"}
	result := &hunter.FindResult{Email: "jane@example.com", Score: 88, Sources: []hunter.Source{{URI: "a"}, {URI: "b"}}}
	require.NoError(t, p.Find(req, result))

	assert.Equal(t,
		"Domain:\texample.com\n"+
			"First Name:\tJane\n"+
			"Last Name:\tDoe\n"+
			"Email:\tjane@example.com\n"+
			"Score:\t88\n"+
			"Sources:\t\"a;b\"\n",
		buf.String())
}

func TestPrinter_VerifyText(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatText)

	require.NoError(t, p.Verify("a@example.com", &hunter.VerifyResult{Result: "undeliverable", Score: 12}))

	assert.Equal(t,
		"Email:\ta@example.com\n"+
			"Result:\tundeliverable\n"+
			"Score:\t12\n"+
			"Sources:\t\"\"\n",
		buf.String())
}

func TestCSVHeader_ReturnsCopy(t *testing.T) {
	h := CSVHeader(types.KindVerify)
	h[0] = "changed"
	assert.Equal(t, "email", CSVHeader(types.KindVerify)[0])
}
