package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriOr(t *testing.T) {
	cases := []struct {
		name string
		a, b Tri
		want Tri
	}{
		{"true wins over false", TriTrue, TriFalse, TriTrue},
		{"true wins over unknown", TriUnknown, TriTrue, TriTrue},
		{"known false beats unknown", TriFalse, TriUnknown, TriFalse},
		{"unknown stays unknown", TriUnknown, TriUnknown, TriUnknown},
		{"false stays false", TriFalse, TriFalse, TriFalse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Or(tc.b))
			assert.Equal(t, tc.want, tc.b.Or(tc.a), "Or must be symmetric")
		})
	}
}

func TestTriJSONRoundtrip(t *testing.T) {
	repo := RepoSummary{
		Name:      "widget",
		HasCI:     TriTrue,
		HasTests:  TriFalse,
		HasReadme: TriUnknown,
	}

	b, err := json.Marshal(repo)
	require.NoError(t, err)

	// unknown must serialize as null, not false
	assert.Contains(t, string(b), `"has_ci":true`)
	assert.Contains(t, string(b), `"has_tests":false`)
	assert.Contains(t, string(b), `"has_readme":null`)

	var back RepoSummary
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, repo, back)
}

func TestTriUnmarshalMissingFieldIsUnknown(t *testing.T) {
	var repo RepoSummary
	require.NoError(t, json.Unmarshal([]byte(`{"name":"widget"}`), &repo))
	assert.Equal(t, TriUnknown, repo.HasCI)
}

func TestUnknownProfile(t *testing.T) {
	p := UnknownProfile("octocat", ProvenanceScrape)
	assert.Equal(t, "octocat", p.Handle)
	assert.Equal(t, StatusUnknown, p.Status)
	assert.Equal(t, ProvenanceScrape, p.Provenance)
	assert.Empty(t, p.Repos)
	assert.False(t, p.Activity.Known)
}
