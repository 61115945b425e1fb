package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plattolabs/stackforge/internal/manifest"
)

func TestPrimaryTarget_mgmtWins(t *testing.T) {
	topo, err := Derive(baseManifest(nil, nil))
	require.NoError(t, err)

	primary := topo.PrimaryTarget()
	assert.Equal(t, "mgmt", primary.Env)
	assert.Equal(t, "111111111111", primary.AccountID)
}

func TestPrimaryTarget_firstDeclaredFallback(t *testing.T) {
	m := baseManifest(nil, nil)
	m.Environments = manifest.MakeEnvironments(
		[]string{"prd", "nprd"},
		map[string]manifest.Target{
			"prd":  {AccountID: "333333333333", Region: "eu-west-1"},
			"nprd": {AccountID: "222222222222", Region: "eu-west-1"},
		})
	topo, err := Derive(m)
	require.NoError(t, err)

	primary := topo.PrimaryTarget()
	assert.Equal(t, "prd", primary.Env)
	assert.Equal(t, "333333333333", primary.AccountID)
}

func TestTargets_singleAccountIgnoresFilter(t *testing.T) {
	topo, err := Derive(baseManifest(nil, nil))
	require.NoError(t, err)

	for _, filter := range []string{"", "nprd", "prd"} {
		tgts := topo.Targets(manifest.ComponentOrganization, filter)
		require.Len(t, tgts, 1, "filter %q", filter)
		assert.Equal(t, "mgmt", tgts[0].Env)
	}
}

func TestTargets_multiEnvironmentExcludesMgmt(t *testing.T) {
	topo, err := Derive(baseManifest(nil, nil))
	require.NoError(t, err)

	tgts := topo.Targets(manifest.ComponentInfrastructure, "")
	require.Len(t, tgts, 2)
	assert.Equal(t, "nprd", tgts[0].Env)
	assert.Equal(t, "prd", tgts[1].Env)
}

func TestTargets_filterNarrows(t *testing.T) {
	topo, err := Derive(baseManifest(nil, nil))
	require.NoError(t, err)

	tgts := topo.Targets(manifest.ComponentSaasWorkload, "prd")
	require.Len(t, tgts, 1)
	assert.Equal(t, "prd", tgts[0].Env)
	assert.Equal(t, "333333333333", tgts[0].AccountID)
}
