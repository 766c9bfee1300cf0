package wikidata

// Match is the first country record returned for a label lookup.
// OfficialName is empty when the entity has no official-name fact.
type Match struct {
	CommonName   string
	OfficialName string
}

// Complete reports whether both names are known.
func (m Match) Complete() bool {
	return m.CommonName != "" && m.OfficialName != ""
}

// Binding is one row of a SPARQL result set, keyed by variable name.
type Binding map[string]sparqlValue

// Value returns the value bound to key, or "" when unbound.
func (b Binding) Value(key string) string {
	if v, ok := b[key]; ok {
		return v.Value
	}
	return ""
}

// -- Internal parsing structs --

type sparqlResponse struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results *struct {
		Bindings []Binding `json:"bindings"`
	} `json:"results"`
}

type sparqlValue struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Language string `json:"xml:lang,omitempty"`
}
