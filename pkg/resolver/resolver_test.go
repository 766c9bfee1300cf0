package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"countryname/pkg/tracker"
	"countryname/pkg/wikidata"
)

type fakeRemote struct {
	matches map[string]wikidata.Match
	err     error
	calls   []string
}

func (f *fakeRemote) LookupCountry(ctx context.Context, name string) (wikidata.Match, bool, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return wikidata.Match{}, false, f.err
	}
	m, ok := f.matches[name]
	return m, ok, nil
}

type fakeStandards struct {
	names map[string]string
	calls []string
}

func (f *fakeStandards) Lookup(name string) (string, bool) {
	f.calls = append(f.calls, name)
	n, ok := f.names[name]
	return n, ok
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		remote        map[string]wikidata.Match
		remoteErr     error
		standards     map[string]string
		want          string
		wantSource    string
		wantStdCalled bool
	}{
		{
			name:       "Remote has both names",
			query:      "France",
			remote:     map[string]wikidata.Match{"France": {CommonName: "France", OfficialName: "French Republic"}},
			standards:  map[string]string{"France": "France"},
			want:       "France: French Republic",
			wantSource: SourceRemote,
		},
		{
			name:          "Remote common name only keeps remote label",
			query:         "germany",
			remote:        map[string]wikidata.Match{"germany": {CommonName: "Deutschland"}},
			standards:     map[string]string{"germany": "Germany"},
			want:          "Deutschland: Germany (ISO 3166 Standard)",
			wantSource:    SourceStandards,
			wantStdCalled: true,
		},
		{
			name:          "Remote official name only uses query as label",
			query:         "Kosovo",
			remote:        map[string]wikidata.Match{"Kosovo": {OfficialName: "Republic of Kosovo"}},
			standards:     map[string]string{"Kosovo": "Kosovo"},
			want:          "Kosovo: Kosovo (ISO 3166 Standard)",
			wantSource:    SourceStandards,
			wantStdCalled: true,
		},
		{
			name:          "Remote miss, standards hit",
			query:         "Germny",
			standards:     map[string]string{"Germny": "Germany"},
			want:          "Germny: Germany (ISO 3166 Standard)",
			wantSource:    SourceStandards,
			wantStdCalled: true,
		},
		{
			name:          "Both miss",
			query:         "Atlantis",
			want:          "Atlantis: Unable to verify this country",
			wantSource:    SourceUnverified,
			wantStdCalled: true,
		},
		{
			name:          "Remote partial, standards miss",
			query:         "Narnia",
			remote:        map[string]wikidata.Match{"Narnia": {CommonName: "Narnia Land"}},
			want:          "Narnia: Unable to verify this country",
			wantSource:    SourceUnverified,
			wantStdCalled: true,
		},
		{
			name:          "Transport failure is contained",
			query:         "France",
			remoteErr:     fmt.Errorf("%w: connection refused", wikidata.ErrNetwork),
			standards:     map[string]string{"France": "France"},
			want:          "France: France (ISO 3166 Standard)",
			wantSource:    SourceStandards,
			wantStdCalled: true,
		},
		{
			name:          "Rejected query is contained",
			query:         "France",
			remoteErr:     fmt.Errorf("%w: status 400", wikidata.ErrInvalidQuery),
			want:          "France: Unable to verify this country",
			wantSource:    SourceUnverified,
			wantStdCalled: true,
		},
		{
			name:          "Canceled lookup is contained",
			query:         "France",
			remoteErr:     context.Canceled,
			standards:     map[string]string{"France": "France"},
			want:          "France: France (ISO 3166 Standard)",
			wantSource:    SourceStandards,
			wantStdCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &fakeRemote{matches: tt.remote, err: tt.remoteErr}
			std := &fakeStandards{names: tt.standards}
			tr := tracker.New()

			r := New(remote, std, tr, nil)
			got := r.Resolve(context.Background(), tt.query)

			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.query, got.Query)
			assert.Equal(t, []string{tt.query}, remote.calls)
			assert.Equal(t, tt.wantStdCalled, len(std.calls) == 1)
			assert.Equal(t, int64(1), tr.Outcomes()[tt.wantSource])
		})
	}
}

func TestResolve_VerifiedHasNoMarkers(t *testing.T) {
	remote := &fakeRemote{matches: map[string]wikidata.Match{
		"Japan": {CommonName: "Japan", OfficialName: "State of Japan"},
	}}
	r := New(remote, &fakeStandards{}, nil, nil)

	got := r.Resolve(context.Background(), "Japan").String()
	assert.NotContains(t, got, StandardSuffix)
	assert.NotContains(t, got, UnverifiedStatus)
}

func TestUnverified(t *testing.T) {
	res := Unverified("Atlantis")
	assert.Equal(t, "Atlantis: Unable to verify this country", res.String())
	assert.Equal(t, SourceUnverified, res.Source)
}
