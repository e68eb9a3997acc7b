package changelog

import (
	"errors"
	"testing"

	clierrors "github.com/poratu/pluginmeta/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChangelog() *Changelog {
	return &Changelog{
		Project: "test",
		Versions: []Version{
			{Version: "unreleased", Sections: Sections{{Name: "added", Items: []string{"U"}}}},
			{Version: "1.1.0", Date: "2026-01-16", Sections: Sections{
				{Name: "added", Items: []string{"A1", "A2"}},
				{Name: "fixed", Items: []string{"F1"}},
			}},
			{Version: "1.0.0", Date: "2026-01-15", Sections: Sections{{Name: "added", Items: []string{"Initial"}}}},
		},
	}
}

func TestGetVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		changelog *Changelog
		version   string
		wantErr   bool
		wantVer   string
	}{
		"exact match": {
			changelog: sampleChangelog(),
			version:   "1.0.0",
			wantVer:   "1.0.0",
		},
		"unreleased": {
			changelog: sampleChangelog(),
			version:   "unreleased",
			wantVer:   "unreleased",
		},
		"v prefix is not normalized": {
			changelog: sampleChangelog(),
			version:   "v1.0.0",
			wantErr:   true,
		},
		"prefix is not a match": {
			changelog: sampleChangelog(),
			version:   "1.1",
			wantErr:   true,
		},
		"empty changelog": {
			changelog: &Changelog{},
			version:   "1.0.0",
			wantErr:   true,
		},
		"nil changelog": {
			changelog: nil,
			version:   "1.0.0",
			wantErr:   true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.changelog.GetVersion(tt.version)
			if tt.wantErr {
				require.Error(t, err)
				var verErr *VersionNotFoundError
				assert.True(t, errors.As(err, &verErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVer, got.Version)
		})
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	released := &Changelog{Versions: []Version{{Version: "1.0.0"}}}

	tests := map[string]struct {
		changelog    *Changelog
		version      string
		wantVersion  string
		wantFallback bool
		wantErr      bool
	}{
		"present version": {
			changelog:   sampleChangelog(),
			version:     "1.1.0",
			wantVersion: "1.1.0",
		},
		"absent version falls back to unreleased": {
			changelog:    sampleChangelog(),
			version:      "2.0.0",
			wantVersion:  "unreleased",
			wantFallback: true,
		},
		"empty version falls back to unreleased": {
			changelog:    sampleChangelog(),
			version:      "",
			wantVersion:  "unreleased",
			wantFallback: true,
		},
		"absent version without unreleased": {
			changelog: released,
			version:   "2.0.0",
			wantErr:   true,
		},
		"empty store": {
			changelog: &Changelog{},
			version:   "1.0.0",
			wantErr:   true,
		},
		"nil store": {
			changelog: nil,
			version:   "1.0.0",
			wantErr:   true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			v, fallback, err := tt.changelog.Lookup(tt.version)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, clierrors.IsConfigError(err))
				assert.Nil(t, v)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, v.Version)
			assert.Equal(t, tt.wantFallback, fallback)
		})
	}
}

func TestGetUnreleased(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, sampleChangelog().GetUnreleased())
	assert.Nil(t, (&Changelog{Versions: []Version{{Version: "1.0.0"}}}).GetUnreleased())
	assert.Nil(t, (*Changelog)(nil).GetUnreleased())
}

func TestGetLastN(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		n     int
		texts []string
	}{
		"zero":          {n: 0, texts: []string{}},
		"negative":      {n: -1, texts: []string{}},
		"two":           {n: 2, texts: []string{"U", "A1"}},
		"more than all": {n: 100, texts: []string{"U", "A1", "A2", "F1", "Initial"}},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			entries := sampleChangelog().GetLastN(tt.n)
			texts := make([]string, len(entries))
			for i, e := range entries {
				texts[i] = e.Text
			}
			assert.Equal(t, tt.texts, texts)
		})
	}
}

func TestEntriesCarrySectionAndVersion(t *testing.T) {
	t.Parallel()

	entries := sampleChangelog().AllEntries()
	require.Len(t, entries, 5)
	assert.Equal(t, Entry{Text: "F1", Section: "fixed", Version: "1.1.0"}, entries[3])
	assert.Equal(t, 5, sampleChangelog().GetEntryCount())
}
