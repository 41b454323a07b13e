// internal/assistant/catalog_test.go
package assistant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	require.Len(t, catalog, 12)
	require.NoError(t, ValidateCatalog(catalog))

	for _, s := range catalog {
		assert.NotNil(t, s.DataSources, s.ID)
		assert.NotNil(t, s.RequiredSources, s.ID)
		if s.Category == CategoryCrossSource {
			assert.True(t, s.RequiresReconciliation, s.ID)
		}
	}
}

func TestDefaultCatalog_ReturnsCopy(t *testing.T) {
	first := DefaultCatalog()
	first[2].RequiredSources[0] = "mutated"
	first[0].ID = "mutated"

	second := DefaultCatalog()
	assert.Equal(t, "weekly-summary", second[0].ID)
	assert.Equal(t, SourceStripe, second[2].RequiredSources[0])
}

func TestParseCatalog(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantErr   bool
		errSubstr string
		count     int
	}{
		{
			name: "valid catalog",
			data: `[
				{"id": "mrr", "query": "MRR?", "category": "single-source", "dataSources": ["Stripe"], "requiredSources": ["stripe"], "requiresReconciliation": false},
				{"id": "ltv", "query": "LTV?", "category": "cross-source", "dataSources": ["HubSpot", "Stripe"], "requiredSources": ["hubspot", "stripe"], "requiresReconciliation": true}
			]`,
			count: 2,
		},
		{
			name:  "empty array",
			data:  `[]`,
			count: 0,
		},
		{
			name:      "not json",
			data:      `{not json`,
			wantErr:   true,
			errSubstr: "CATALOG_INVALID",
		},
		{
			name:      "missing query",
			data:      `[{"id": "x", "category": "single-source", "dataSources": [], "requiredSources": [], "requiresReconciliation": false}]`,
			wantErr:   true,
			errSubstr: "query",
		},
		{
			name:      "unknown category",
			data:      `[{"id": "x", "query": "q", "category": "tri-source", "dataSources": [], "requiredSources": [], "requiresReconciliation": false}]`,
			wantErr:   true,
			errSubstr: "CATALOG_INVALID",
		},
		{
			name:      "unexpected field",
			data:      `[{"id": "x", "query": "q", "category": "single-source", "dataSources": [], "requiredSources": [], "requiresReconciliation": false, "priority": 1}]`,
			wantErr:   true,
			errSubstr: "CATALOG_INVALID",
		},
		{
			name:      "unknown required source",
			data:      `[{"id": "x", "query": "q", "category": "single-source", "dataSources": [], "requiredSources": ["oracle"], "requiresReconciliation": false}]`,
			wantErr:   true,
			errSubstr: `unknown source "oracle"`,
		},
		{
			name: "duplicate id",
			data: `[
				{"id": "x", "query": "a", "category": "single-source", "dataSources": [], "requiredSources": [], "requiresReconciliation": false},
				{"id": "x", "query": "b", "category": "single-source", "dataSources": [], "requiredSources": [], "requiresReconciliation": false}
			]`,
			wantErr:   true,
			errSubstr: `duplicate suggestion id "x"`,
		},
		{
			name:      "cross source without reconciliation",
			data:      `[{"id": "x", "query": "q", "category": "cross-source", "dataSources": [], "requiredSources": ["stripe"], "requiresReconciliation": false}]`,
			wantErr:   true,
			errSubstr: "must require reconciliation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCatalog([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrCatalogInvalid)
				assert.Contains(t, err.Error(), tt.errSubstr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.count)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Run("empty path returns built-in catalog", func(t *testing.T) {
		got, err := LoadCatalog("")
		require.NoError(t, err)
		assert.Equal(t, DefaultCatalog(), got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCatalogNotFound)
	})

	t.Run("file on disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		data := `[{"id": "orders", "query": "How many orders today?", "category": "single-source", "dataSources": ["Shopify"], "requiredSources": ["shopify"], "requiresReconciliation": false}]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		got, err := LoadCatalog(path)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "orders", got[0].ID)
		assert.Equal(t, []string{SourceShopify}, got[0].RequiredSources)
		assert.Equal(t, CategorySingleSource, got[0].Category)
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id": "not-an-array"}`), 0o600))

		_, err := LoadCatalog(path)
		assert.ErrorIs(t, err, ErrCatalogInvalid)
	})

	t.Run("shipped catalog file", func(t *testing.T) {
		got, err := LoadCatalog(filepath.Join("..", "..", "configs", "suggestion-catalog.json"))
		require.NoError(t, err)
		assert.Equal(t, DefaultCatalog(), got)
	})
}
