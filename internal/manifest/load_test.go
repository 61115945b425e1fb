package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plattolabs/stackforge/internal/errs"
)

const sampleManifest = `
naming:
  company: helios
  project: platform
environments:
  mgmt:
    accountId: "111111111111"
    region: eu-west-1
  nprd:
    accountId: "222222222222"
    region: eu-west-1
  prd:
    accountId: "333333333333"
    region: eu-west-1
domains:
  root: helios.io
  marketingCdn: true
infrastructure:
  vpcCidr: 10.0.0.0/16
  alb: true
saasWorkload:
  brands:
    - name: acme
      lambdaApi: true
      webApp: true
      subdomain: app
  secretKeys:
    - stripe-key-acme
    - sendgrid-key
githubOidc:
  repos:
    - plattolabs/platform
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type passthroughRenderer struct{}

func (passthroughRenderer) RenderString(_, tpl string, _ map[string]any) (string, error) {
	return tpl, nil
}

func TestLoad(t *testing.T) {
	m, err := Load(writeManifest(t, sampleManifest), passthroughRenderer{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "helios", m.Naming.Company)
	assert.Equal(t, []string{"mgmt", "nprd", "prd"}, m.Environments.Names())
	require.NotNil(t, m.Domains)
	assert.True(t, m.Domains.MarketingCdn)
	require.NotNil(t, m.SaasWorkload)
	require.Len(t, m.SaasWorkload.Brands, 1)
	assert.True(t, m.SaasWorkload.Brands[0].LambdaApi)
	assert.Nil(t, m.Organization)
	assert.Nil(t, m.IdentityCenter)
}

func TestLoad_environmentOrderPreserved(t *testing.T) {
	// declaration order matters: the first entry is the primary fallback
	m, err := Load(writeManifest(t, `
naming: {company: helios, project: platform}
environments:
  prd: {accountId: "333333333333", region: eu-west-1}
  nprd: {accountId: "222222222222", region: eu-west-1}
`), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"prd", "nprd"}, m.Environments.Names())
	first, _, ok := m.Environments.First()
	require.True(t, ok)
	assert.Equal(t, "prd", first)
}

func TestValidate_failures(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"missing company", `
naming: {project: platform}
environments:
  prd: {accountId: "333333333333", region: eu-west-1}
`},
		{"no environments", `
naming: {company: helios, project: platform}
environments: {}
`},
		{"bad account id", `
naming: {company: helios, project: platform}
environments:
  prd: {accountId: "123", region: eu-west-1}
`},
		{"missing region", `
naming: {company: helios, project: platform}
environments:
  prd: {accountId: "333333333333"}
`},
		{"domains without root", `
naming: {company: helios, project: platform}
environments:
  prd: {accountId: "333333333333", region: eu-west-1}
domains: {marketingCdn: true}
`},
		{"identity center without instance", `
naming: {company: helios, project: platform}
environments:
  prd: {accountId: "333333333333", region: eu-west-1}
identityCenter: {permissionSets: []}
`},
		{"oidc without repos", `
naming: {company: helios, project: platform}
environments:
  prd: {accountId: "333333333333", region: eu-west-1}
githubOidc: {repos: []}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeManifest(t, tt.manifest), nil, nil)
			require.Error(t, err)
			assert.True(t, errs.IsConfiguration(err), "want ConfigurationError, got %v", err)
		})
	}
}

func TestCheckEnvironmentFilter(t *testing.T) {
	m, err := Load(writeManifest(t, sampleManifest), nil, nil)
	require.NoError(t, err)

	assert.NoError(t, m.CheckEnvironmentFilter(""))
	assert.NoError(t, m.CheckEnvironmentFilter("nprd"))
	err = m.CheckEnvironmentFilter("staging")
	require.Error(t, err)
	assert.True(t, errs.IsConfiguration(err))
}

func TestEnabled(t *testing.T) {
	m, err := Load(writeManifest(t, sampleManifest), nil, nil)
	require.NoError(t, err)

	assert.True(t, m.Enabled(ComponentDomains))
	assert.True(t, m.Enabled(ComponentInfrastructure))
	assert.True(t, m.Enabled(ComponentSaasWorkload))
	assert.True(t, m.Enabled(ComponentGithubOidc))
	assert.False(t, m.Enabled(ComponentOrganization))
	assert.False(t, m.Enabled(ComponentIdentityCenter))
}
