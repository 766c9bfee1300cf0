package wikidata

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"countryname/pkg/request"
)

const (
	propInstanceOf   = "P31"
	propOfficialName = "P1448"
	itemCountry      = "Q6256"
)

// LookupCountry finds an entity typed "country" whose label in c.Language
// equals name exactly. It returns the first record's label and optional
// official name. ok is false when the result set is empty.
func (c *Client) LookupCountry(ctx context.Context, name string) (m Match, ok bool, err error) {
	provider := request.NormalizeProvider(hostOf(c.SPARQLEndpoint))

	bindings, err := c.QuerySPARQL(ctx, buildCountryQuery(name, c.Language))
	if err != nil {
		return Match{}, false, err
	}

	tr := c.request.Tracker()
	if len(bindings) == 0 {
		tr.TrackAPIZero(provider)
		c.Logger.Debug("No country entity for label", "name", name)
		return Match{}, false, nil
	}
	tr.TrackAPISuccess(provider)

	first := bindings[0]
	m = Match{
		CommonName:   first.Value("countryLabel"),
		OfficialName: first.Value("officialNameLabel"),
	}
	c.Logger.Debug("Country entity found", "name", name, "label", m.CommonName, "official", m.OfficialName, "rows", len(bindings))
	return m, true, nil
}

// buildCountryQuery renders the label lookup. The label service localizes
// ?countryLabel and ?officialNameLabel.
func buildCountryQuery(name, lang string) string {
	if lang == "" {
		lang = "en"
	}
	return fmt.Sprintf(`SELECT ?countryLabel ?officialNameLabel WHERE {
  ?country wdt:%s wd:%s;
           rdfs:label "%s"@%s.
  OPTIONAL {
    ?country wdt:%s ?officialName.
  }
  SERVICE wikibase:label { bd:serviceParam wikibase:language "[AUTO_LANGUAGE],%s". }
}`, propInstanceOf, itemCountry, escapeLiteral(name), lang, propOfficialName, lang)
}

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// escapeLiteral makes s safe inside a double-quoted SPARQL string literal.
func escapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

func hostOf(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	return u.Host
}
