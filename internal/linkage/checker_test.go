package linkage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plattolabs/stackforge/internal/manifest"
	"github.com/plattolabs/stackforge/internal/store"
	"github.com/plattolabs/stackforge/internal/topology"
)

func catalogManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Naming: manifest.NamingSpec{Company: "helios", Project: "platform"},
		Environments: manifest.MakeEnvironments(
			[]string{"mgmt", "nprd"},
			map[string]manifest.Target{
				"mgmt": {AccountID: "111111111111", Region: "eu-west-1"},
				"nprd": {AccountID: "222222222222", Region: "eu-west-1"},
			}),
		Domains:        &manifest.DomainsSpec{Root: "helios.io"},
		Infrastructure: &manifest.InfrastructureSpec{VpcCidr: "10.0.0.0/16", Alb: true},
		SaasWorkload: &manifest.SaasWorkloadSpec{
			Brands: []manifest.Brand{{Name: "acme", WebApp: true}},
		},
	}
}

func TestCatalog(t *testing.T) {
	m := catalogManifest()
	topo, err := topology.Derive(m)
	require.NoError(t, err)

	paths, err := Catalog(m, topo)
	require.NoError(t, err)

	assert.Contains(t, paths, "/helios/platform/mgmt/dns/zone-id")
	assert.Contains(t, paths, "/helios/platform/mgmt/dns/zone-name")
	assert.Contains(t, paths, "/helios/platform/nprd/alb/dns-name")
	assert.Contains(t, paths, "/helios/platform/nprd/alb/canonical-zone-id")
	assert.Contains(t, paths, "/helios/platform/nprd/cert/arn")
	assert.Contains(t, paths, "/helios/platform/nprd/cdn/acme/domain")
	assert.Contains(t, paths, "/helios/platform/nprd/cdn/acme/distribution-id")
}

func TestCatalog_edgePathsWithoutInfrastructure(t *testing.T) {
	ctx := context.Background()
	m := catalogManifest()
	m.Infrastructure = nil
	topo, err := topology.Derive(m)
	require.NoError(t, err)

	paths, err := Catalog(m, topo)
	require.NoError(t, err)

	// hosted brands publish their edge paths even when the manifest carries
	// no infrastructure section at all
	assert.Contains(t, paths, "/helios/platform/nprd/cert/arn")
	assert.Contains(t, paths, "/helios/platform/nprd/cdn/acme/domain")
	assert.Contains(t, paths, "/helios/platform/nprd/cdn/acme/distribution-id")
	assert.NotContains(t, paths, "/helios/platform/nprd/alb/dns-name")

	// and the checker reports them as pending, not unknown
	checker := NewChecker(store.NewMemory(), paths)
	st, err := checker.Check(ctx, "/helios/platform/nprd/cdn/acme/domain")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st)
}

func TestCatalog_edgePathsNeedHostedBrands(t *testing.T) {
	m := catalogManifest()
	m.SaasWorkload.Brands = []manifest.Brand{{Name: "acme", LambdaApi: true}}
	topo, err := topology.Derive(m)
	require.NoError(t, err)

	paths, err := Catalog(m, topo)
	require.NoError(t, err)

	// no hosted site means no certificate or distribution producers
	assert.NotContains(t, paths, "/helios/platform/nprd/cert/arn")
	assert.Contains(t, paths, "/helios/platform/nprd/alb/dns-name")
}

func TestChecker_statuses(t *testing.T) {
	ctx := context.Background()
	m := catalogManifest()
	topo, err := topology.Derive(m)
	require.NoError(t, err)
	paths, err := Catalog(m, topo)
	require.NoError(t, err)

	mem := store.NewMemory()
	require.NoError(t, mem.Publish(ctx, "/helios/platform/mgmt/dns/zone-id", "Z123"))
	checker := NewChecker(mem, paths)

	st, err := checker.Check(ctx, "/helios/platform/mgmt/dns/zone-id")
	require.NoError(t, err)
	assert.Equal(t, StatusPublished, st)

	// cataloged but not yet written: a producer will publish it
	st, err = checker.Check(ctx, "/helios/platform/nprd/alb/dns-name")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, st)

	// a path no producer of this manifest will ever publish
	st, err = checker.Check(ctx, "/helios/platform/nprd/cdn/ghost/domain")
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, st)
}

func TestChecker_lookupDistinguishesCauses(t *testing.T) {
	ctx := context.Background()
	m := catalogManifest()
	topo, err := topology.Derive(m)
	require.NoError(t, err)
	paths, err := Catalog(m, topo)
	require.NoError(t, err)

	checker := NewChecker(store.NewMemory(), paths)

	_, err = checker.Lookup(ctx, "/helios/platform/nprd/cert/arn")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotPublished))
	assert.False(t, errors.Is(err, store.ErrUnknownPath))

	// a consumer that derived a divergent path fails loudly, not as pending
	_, err = checker.Lookup(ctx, "/helios/platform/nprd/cert/certificate-arn")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUnknownPath))
}
