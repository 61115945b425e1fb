package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plattolabs/stackforge/internal/manifest"
)

func TestSecretRefs_grouping(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme", LambdaApi: true},
		{Name: "zen", LambdaApi: true},
	}, []string{
		"stripe-key-acme",
		"stripe-key-zen",
		"sendgrid-key",
		"database-url-acme",
	}))
	require.NoError(t, err)

	refs := topo.SecretRefs()
	assert.Equal(t, "stripe-key-acme", refs["stripe-key"]["acme"])
	assert.Equal(t, "stripe-key-zen", refs["stripe-key"]["zen"])
	assert.Equal(t, "database-url-acme", refs["database-url"]["acme"])
	// no declared-brand suffix: the whole key scopes to core
	assert.Equal(t, "sendgrid-key", refs["sendgrid-key"][manifest.CoreBrand])
}

func TestSecretRefs_sharedPrefixAcrossBrands(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme"}, {Name: "globex"},
	}, []string{"database-url-acme", "database-url-globex", "auth-secret"}))
	require.NoError(t, err)

	refs := topo.SecretRefs()
	require.Len(t, refs, 2)
	assert.Equal(t, map[string]string{
		"acme":   "database-url-acme",
		"globex": "database-url-globex",
	}, refs["database-url"])
	assert.Equal(t, map[string]string{manifest.CoreBrand: "auth-secret"}, refs["auth-secret"])
}

func TestSecretRefs_everyKeyAppearsOnce(t *testing.T) {
	keys := []string{"stripe-key-acme", "stripe-key-zen", "sendgrid-key", "jwt-secret"}
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme"}, {Name: "zen"},
	}, keys))
	require.NoError(t, err)

	seen := map[string]int{}
	for _, byBrand := range topo.SecretRefs() {
		for _, key := range byBrand {
			seen[key]++
		}
	}
	for _, k := range keys {
		assert.Equal(t, 1, seen[k], "key %s", k)
	}
}

func TestSecretRefs_unknownSuffixStaysCore(t *testing.T) {
	// "legacy" is not a declared brand, so the suffix is part of the prefix
	topo, err := Derive(baseManifest([]manifest.Brand{{Name: "acme"}},
		[]string{"api-token-legacy"}))
	require.NoError(t, err)

	refs := topo.SecretRefs()
	assert.Equal(t, "api-token-legacy", refs["api-token-legacy"][manifest.CoreBrand])
	_, split := refs["api-token"]
	assert.False(t, split)
}

func TestSecretRefs_blankKeysSkipped(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{{Name: "acme"}},
		[]string{"", "  ", "real-key"}))
	require.NoError(t, err)
	assert.Len(t, topo.SecretRefs(), 1)
}

func TestSecretKeysForBrand(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme", LambdaApi: true},
	}, []string{"stripe-key-acme", "database-url-acme", "sendgrid-key"}))
	require.NoError(t, err)

	assert.Equal(t, []string{"database-url-acme", "stripe-key-acme"}, topo.SecretKeysForBrand("acme"))
	assert.Equal(t, []string{"sendgrid-key"}, topo.SecretKeysForBrand(manifest.CoreBrand))
	assert.Empty(t, topo.SecretKeysForBrand("zen"))
}
