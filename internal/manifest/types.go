package manifest

import (
	"gopkg.in/yaml.v3"
)

// MgmtEnvironment is the reserved environment name for the single-account /
// management target.
const MgmtEnvironment = "mgmt"

// CoreBrand is the reserved brand denoting the shared, non-brand-specific
// service. It is synthesized into derived sets even when not enumerated.
const CoreBrand = "core"

// Manifest is the root configuration document. Component sections are
// pointer-typed: present means enabled, absent means disabled.
type Manifest struct {
	Naming       NamingSpec   `yaml:"naming"`
	Environments Environments `yaml:"environments"`

	Organization   *OrganizationSpec   `yaml:"organization,omitempty"`
	IdentityCenter *IdentityCenterSpec `yaml:"identityCenter,omitempty"`
	Domains        *DomainsSpec        `yaml:"domains,omitempty"`
	Infrastructure *InfrastructureSpec `yaml:"infrastructure,omitempty"`
	SaasWorkload   *SaasWorkloadSpec   `yaml:"saasWorkload,omitempty"`
	GithubOidc     *GithubOidcSpec     `yaml:"githubOidc,omitempty"`

	Path string `yaml:"-"`
}

type NamingSpec struct {
	Company string `yaml:"company"`
	Project string `yaml:"project"`
	Owner   string `yaml:"owner,omitempty"`
}

// Target is one deployment target: an account/region pair.
type Target struct {
	AccountID string `yaml:"accountId"`
	Region    string `yaml:"region"`
}

// Environments is an ordered map of environment name to target. Declaration
// order is preserved because "the first declared environment" is the primary
// target fallback when no mgmt entry exists.
type Environments struct {
	names   []string
	targets map[string]Target
}

// UnmarshalYAML decodes a yaml mapping while recording key order.
func (e *Environments) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return &yaml.TypeError{Errors: []string{"environments: expected a mapping"}}
	}
	e.names = nil
	e.targets = make(map[string]Target, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var name string
		if err := value.Content[i].Decode(&name); err != nil {
			return err
		}
		var t Target
		if err := value.Content[i+1].Decode(&t); err != nil {
			return err
		}
		if _, dup := e.targets[name]; !dup {
			e.names = append(e.names, name)
		}
		e.targets[name] = t
	}
	return nil
}

// MarshalYAML emits environments in declaration order.
func (e Environments) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range e.names {
		var k, v yaml.Node
		if err := k.Encode(name); err != nil {
			return nil, err
		}
		if err := v.Encode(e.targets[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &k, &v)
	}
	return node, nil
}

// Names returns environment names in declaration order.
func (e Environments) Names() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

func (e Environments) Len() int { return len(e.names) }

func (e Environments) Get(name string) (Target, bool) {
	t, ok := e.targets[name]
	return t, ok
}

func (e Environments) Has(name string) bool {
	_, ok := e.targets[name]
	return ok
}

// First returns the first declared environment. ok is false when empty.
func (e Environments) First() (string, Target, bool) {
	if len(e.names) == 0 {
		return "", Target{}, false
	}
	return e.names[0], e.targets[e.names[0]], true
}

// MakeEnvironments builds an ordered Environments value, mainly for tests and
// programmatic manifest construction.
func MakeEnvironments(names []string, targets map[string]Target) Environments {
	e := Environments{targets: make(map[string]Target, len(names))}
	for _, n := range names {
		if t, ok := targets[n]; ok {
			e.names = append(e.names, n)
			e.targets[n] = t
		}
	}
	return e
}

// OrganizationSpec describes the organization component.
type OrganizationSpec struct {
	RootID     string   `yaml:"rootId,omitempty"`
	FeatureSet string   `yaml:"featureSet,omitempty"` // default ALL
	Units      []string `yaml:"organizationalUnits,omitempty"`
}

// IdentityCenterSpec describes the SSO / identity directory component.
type IdentityCenterSpec struct {
	InstanceArn    string          `yaml:"instanceArn"`
	PermissionSets []PermissionSet `yaml:"permissionSets,omitempty"`
}

type PermissionSet struct {
	Name            string   `yaml:"name"`
	SessionDuration string   `yaml:"sessionDuration,omitempty"`
	ManagedPolicies []string `yaml:"managedPolicies,omitempty"`
}

// DomainsSpec describes DNS zones and the edge-delivery family.
type DomainsSpec struct {
	Root string `yaml:"root"`
	// MarketingCdn gates the marketing-site distribution family; it is a
	// capability flag nested under the parent section, not a component of
	// its own.
	MarketingCdn bool `yaml:"marketingCdn,omitempty"`
}

// InfrastructureSpec describes the shared per-environment compute plane.
type InfrastructureSpec struct {
	VpcCidr     string `yaml:"vpcCidr,omitempty"`
	MaxAzs      int    `yaml:"maxAzs,omitempty"`
	NatGateways int    `yaml:"natGateways,omitempty"`
	// Alb gates the shared load balancer and the routing family.
	Alb bool `yaml:"alb,omitempty"`
}

// Brand is one product line's compact, flag-based configuration. The
// topology deriver reads these flags, never explicit per-service blocks.
type Brand struct {
	Name          string `yaml:"name"`
	LambdaApi     bool   `yaml:"lambdaApi,omitempty"`
	WebApp        bool   `yaml:"webApp,omitempty"`
	MarketingSite bool   `yaml:"marketingSite,omitempty"`
	Subdomain     string `yaml:"subdomain,omitempty"`
	// Environments optionally restricts the brand to a subset of declared
	// environments. Empty means the brand deploys everywhere.
	Environments []string `yaml:"environments,omitempty"`
}

// SaasWorkloadSpec is the compact brand/workload array plus the flat list of
// declared secret keys the deriver re-keys per brand.
type SaasWorkloadSpec struct {
	Brands      []Brand  `yaml:"brands,omitempty"`
	SecretKeys  []string `yaml:"secretKeys,omitempty"`
	ArtifactDir string   `yaml:"artifactDir,omitempty"`
}

// GithubOidcSpec describes CI/CD trust roles for GitHub Actions.
type GithubOidcSpec struct {
	Repos    []string `yaml:"repos"`
	RoleName string   `yaml:"roleName,omitempty"`
}
