package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/manifest"
)

func baseManifest(brands []manifest.Brand, secretKeys []string) *manifest.Manifest {
	return &manifest.Manifest{
		Naming: manifest.NamingSpec{Company: "helios", Project: "platform"},
		Environments: manifest.MakeEnvironments(
			[]string{"mgmt", "nprd", "prd"},
			map[string]manifest.Target{
				"mgmt": {AccountID: "111111111111", Region: "eu-west-1"},
				"nprd": {AccountID: "222222222222", Region: "eu-west-1"},
				"prd":  {AccountID: "333333333333", Region: "eu-west-1"},
			}),
		SaasWorkload: &manifest.SaasWorkloadSpec{Brands: brands, SecretKeys: secretKeys},
	}
}

func TestDerive_coreSynthesized(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme", LambdaApi: true},
		{Name: "zen", WebApp: true},
	}, nil))
	require.NoError(t, err)

	// core rides along at the head of the API set but is never a declared brand
	assert.Equal(t, []string{"core", "acme"}, topo.APIBrands())
	assert.Equal(t, []string{"core", "acme"}, topo.DatabaseBrands())
	assert.Equal(t, []string{"acme", "zen"}, topo.Brands())
	assert.Equal(t, []string{"zen"}, topo.WebBrands())
}

func TestDerive_singleAPIBrand(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme", LambdaApi: true},
	}, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"core", "acme"}, topo.APIBrands())
	assert.Equal(t, []string{"core", "acme"}, topo.DatabaseBrands())
	assert.Empty(t, topo.WebBrands())
	assert.Empty(t, topo.MarketingBrands())
}

func TestDerive_noAPIMeansNoCore(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "zen", WebApp: true},
	}, nil))
	require.NoError(t, err)
	assert.Empty(t, topo.APIBrands())
}

func TestDerive_duplicateBrand(t *testing.T) {
	_, err := Derive(baseManifest([]manifest.Brand{
		{Name: "Acme"},
		{Name: " acme "},
	}, nil))
	require.Error(t, err)
	assert.True(t, errs.IsTopology(err))
}

func TestDerive_blankBrand(t *testing.T) {
	_, err := Derive(baseManifest([]manifest.Brand{{Name: "  "}}, nil))
	require.Error(t, err)
	assert.True(t, errs.IsTopology(err))
}

func TestDerive_undeclaredEnvironmentRestriction(t *testing.T) {
	_, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme", Environments: []string{"staging"}},
	}, nil))
	require.Error(t, err)
	assert.True(t, errs.IsTopology(err))
}

func TestBrandActiveIn(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme", LambdaApi: true},
		{Name: "zen", WebApp: true, Environments: []string{"prd"}},
	}, nil))
	require.NoError(t, err)

	assert.True(t, topo.BrandActiveIn("acme", "nprd"))
	assert.True(t, topo.BrandActiveIn("acme", "prd"))
	assert.False(t, topo.BrandActiveIn("zen", "nprd"))
	assert.True(t, topo.BrandActiveIn("zen", "prd"))
	// core deploys everywhere, always
	assert.True(t, topo.BrandActiveIn("core", "nprd"))
}

func TestHostedBrands_dedupes(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme", WebApp: true, MarketingSite: true},
		{Name: "zen", MarketingSite: true},
	}, nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "zen"}, topo.HostedBrands())
}

func TestHostedBrandsIn(t *testing.T) {
	m := baseManifest([]manifest.Brand{
		{Name: "acme", WebApp: true},
		{Name: "zen", MarketingSite: true, Environments: []string{"prd"}},
	}, nil)
	m.Domains = &manifest.DomainsSpec{Root: "helios.io", MarketingCdn: true}
	topo, err := Derive(m)
	require.NoError(t, err)

	assert.Equal(t, []string{"acme"}, topo.HostedBrandsIn("nprd"))
	assert.Equal(t, []string{"acme", "zen"}, topo.HostedBrandsIn("prd"))

	// without the marketingCdn flag the marketing brand drops out entirely
	m.Domains.MarketingCdn = false
	topo, err = Derive(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme"}, topo.HostedBrandsIn("prd"))
}

func TestSubdomain(t *testing.T) {
	topo, err := Derive(baseManifest([]manifest.Brand{
		{Name: "acme", Subdomain: "App"},
		{Name: "zen"},
	}, nil))
	require.NoError(t, err)
	assert.Equal(t, "app", topo.Subdomain("acme"))
	assert.Equal(t, "zen", topo.Subdomain("zen"))
}

func TestDerive_idempotent(t *testing.T) {
	m := baseManifest([]manifest.Brand{
		{Name: "acme", LambdaApi: true, WebApp: true},
		{Name: "zen", MarketingSite: true},
	}, []string{"stripe-key-acme", "sendgrid-key"})

	a, err := Derive(m)
	require.NoError(t, err)
	b, err := Derive(m)
	require.NoError(t, err)

	assert.Equal(t, a.APIBrands(), b.APIBrands())
	assert.Equal(t, a.HostedBrands(), b.HostedBrands())
	assert.Equal(t, a.SecretRefs(), b.SecretRefs())
}
