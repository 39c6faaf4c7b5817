// Package schemas embeds the JSON Schemas describing Hunter API response
// envelopes.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// Schema file names, one per remote endpoint.
const (
	DomainSearch  = "domain_search.schema.json"
	EmailFinder   = "email_finder.schema.json"
	EmailVerifier = "email_verifier.schema.json"
)
