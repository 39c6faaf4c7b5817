package hunter

// Source is a page where the remote service observed an email address.
type Source struct {
	Domain      string `json:"domain,omitempty"`
	URI         string `json:"uri"`
	ExtractedOn string `json:"extracted_on,omitempty"`
	LastSeenOn  string `json:"last_seen_on,omitempty"`
	StillOnPage bool   `json:"still_on_page,omitempty"`
}

// Email is a single address returned by a domain search.
type Email struct {
	Value      string   `json:"value"`
	Type       string   `json:"type"`
	Confidence float64  `json:"confidence,omitempty"`
	FirstName  string   `json:"first_name,omitempty"`
	LastName   string   `json:"last_name,omitempty"`
	Position   string   `json:"position,omitempty"`
	Sources    []Source `json:"sources"`
}

// SearchParams are the query parameters of a domain search.
type SearchParams struct {
	Domain string
	Limit  int
	Offset int
	Type   string // omitted from the query when empty
}

// SearchResult is the data payload of a domain search.
type SearchResult struct {
	Domain       string  `json:"domain,omitempty"`
	Organization string  `json:"organization,omitempty"`
	Pattern      string  `json:"pattern,omitempty"`
	Emails       []Email `json:"emails"`
}

// FindParams are the query parameters of an email lookup for one person.
type FindParams struct {
	Domain    string
	FirstName string
	LastName  string
}

// FindResult is the data payload of an email lookup.
type FindResult struct {
	Email   string   `json:"email"`
	Score   float64  `json:"score"`
	Sources []Source `json:"sources"`
}

// VerifyResult is the data payload of a deliverability check.
type VerifyResult struct {
	Email   string   `json:"email,omitempty"`
	Result  string   `json:"result"`
	Status  string   `json:"status,omitempty"`
	Score   float64  `json:"score"`
	Sources []Source `json:"sources"`
}

// envelope is the top-level shape of every successful response.
type envelope[T any] struct {
	Data T `json:"data"`
}

// apiErrors is the top-level shape of an error response.
type apiErrors struct {
	Errors []struct {
		ID      string `json:"id"`
		Code    int    `json:"code"`
		Details string `json:"details"`
	} `json:"errors"`
}
