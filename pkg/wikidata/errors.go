package wikidata

import "errors"

var (
	// ErrNetwork indicates a failure in network communication.
	ErrNetwork = errors.New("wikidata network error")
	// ErrParse indicates a failure to parse the response.
	ErrParse = errors.New("wikidata parse error")
	// ErrInvalidQuery indicates the endpoint rejected the SPARQL query.
	ErrInvalidQuery = errors.New("wikidata invalid query")
)
