// Package resolve turns a validated manifest plus its derived topology into
// an ordered plan of deployable units. The ordering is an explicit call
// sequence per component family, not a generic graph solver; every unit
// records its upstream units as dependency edges so the execution engine
// enforces ordering even if the physical creation calls are later reordered.
// Resolution is pure: the same manifest always yields the identical unit set.
package resolve

import (
	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/manifest"
	"github.com/plattolabs/stackforge/internal/naming"
	"github.com/plattolabs/stackforge/internal/topology"
)

// Kind identifies the deployable-unit family a unit belongs to.
type Kind string

const (
	KindOrganization   Kind = "organization"
	KindIdentityCenter Kind = "identity-center"
	KindDNSZones       Kind = "dns-zones"
	KindGithubOidc     Kind = "github-oidc"

	KindNetwork Kind = "network"
	KindCluster Kind = "cluster"
	KindData    Kind = "data"
	KindSecrets Kind = "secrets"
	KindCompute Kind = "compute"
	KindRouting Kind = "routing"

	KindWebHosting  Kind = "web"
	KindEdgeCert    Kind = "edge-cert"
	KindEdgeCDN     Kind = "edge-cdn"
	KindEdgeWiring  Kind = "edge-wiring"
	KindEdgeRecords Kind = "edge-records"
)

// CertRegion is where edge certificates must live for CDN consumption.
const CertRegion = "us-east-1"

// Unit is one deployable stack bound to an account/region, with explicit
// upstream edges. Its identity is the logical name.
type Unit struct {
	Name      string             `json:"name"`
	Kind      Kind               `json:"kind"`
	Component manifest.Component `json:"-"`
	Env       string             `json:"env"`
	AccountID string             `json:"accountId"`
	Region    string             `json:"region"`
	DependsOn []string           `json:"dependsOn,omitempty"`
}

// Plan is the ordered unit list for one resolution run.
type Plan struct {
	Units  []Unit
	byName map[string]int
}

// FromUnits rebuilds a plan from a previously serialized unit list, for
// diffing a stored snapshot against a fresh resolution.
func FromUnits(units []Unit) *Plan {
	p := &Plan{byName: map[string]int{}}
	for _, u := range units {
		if !p.has(u.Name) {
			p.byName[u.Name] = len(p.Units)
			p.Units = append(p.Units, u)
		}
	}
	return p
}

// Get returns the unit with the given logical name.
func (p *Plan) Get(name string) (Unit, bool) {
	i, ok := p.byName[name]
	if !ok {
		return Unit{}, false
	}
	return p.Units[i], true
}

// Names returns all logical unit names in creation order.
func (p *Plan) Names() []string {
	out := make([]string, len(p.Units))
	for i, u := range p.Units {
		out[i] = u.Name
	}
	return out
}

func (p *Plan) add(u Unit) error {
	if prev, dup := p.byName[u.Name]; dup {
		other := p.Units[prev]
		if other.AccountID == u.AccountID && other.Region == u.Region {
			return errs.NewTopology(u.Component.String(), "", "deployable unit %q collides with an existing unit in %s/%s", u.Name, u.AccountID, u.Region)
		}
		return errs.NewTopology(u.Component.String(), "", "deployable unit name %q already used by component %s", u.Name, other.Component.String())
	}
	p.byName[u.Name] = len(p.Units)
	p.Units = append(p.Units, u)
	return nil
}

// has reports whether a unit with this name was already planned; used to wire
// optional upstream edges only when the upstream actually exists.
func (p *Plan) has(name string) bool {
	_, ok := p.byName[name]
	return ok
}

func dependsOn(p *Plan, names ...string) []string {
	var deps []string
	for _, n := range names {
		if p.has(n) {
			deps = append(deps, n)
		}
	}
	return deps
}

// Resolve computes the deployable-unit plan for a manifest. envFilter narrows
// multi-environment components to one named environment; single-account
// components always resolve.
func Resolve(m *manifest.Manifest, topo *topology.Topology, envFilter string) (*Plan, error) {
	if err := m.CheckEnvironmentFilter(envFilter); err != nil {
		return nil, err
	}

	p := &Plan{byName: map[string]int{}}

	if err := resolvePrimary(p, m, topo); err != nil {
		return nil, err
	}
	for _, tgt := range topo.Targets(manifest.ComponentInfrastructure, envFilter) {
		if err := resolveEnvironment(p, m, topo, tgt); err != nil {
			return nil, err
		}
	}
	for _, tgt := range topo.Targets(manifest.ComponentInfrastructure, envFilter) {
		if err := resolveEdgeFamily(p, m, topo, tgt); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// resolvePrimary plans the single-account components against the primary
// (mgmt-or-first) target. Absent sections are skipped silently.
func resolvePrimary(p *Plan, m *manifest.Manifest, topo *topology.Topology) error {
	primary := topo.PrimaryTarget()
	ctx, err := naming.New(m.Naming.Company, m.Naming.Project, primary.Env, primary.Region, primary.AccountID)
	if err != nil {
		return err
	}

	if m.Organization != nil {
		if err := p.add(Unit{
			Name:      ctx.StackName(string(KindOrganization)),
			Kind:      KindOrganization,
			Component: manifest.ComponentOrganization,
			Env:       primary.Env, AccountID: primary.AccountID, Region: primary.Region,
		}); err != nil {
			return err
		}
	}
	if m.IdentityCenter != nil {
		if err := p.add(Unit{
			Name:      ctx.StackName(string(KindIdentityCenter)),
			Kind:      KindIdentityCenter,
			Component: manifest.ComponentIdentityCenter,
			Env:       primary.Env, AccountID: primary.AccountID, Region: primary.Region,
			DependsOn: dependsOn(p, ctx.StackName(string(KindOrganization))),
		}); err != nil {
			return err
		}
	}
	if m.Domains != nil {
		if err := p.add(Unit{
			Name:      ctx.StackName(string(KindDNSZones)),
			Kind:      KindDNSZones,
			Component: manifest.ComponentDomains,
			Env:       primary.Env, AccountID: primary.AccountID, Region: primary.Region,
		}); err != nil {
			return err
		}
	}
	if m.GithubOidc != nil {
		if err := p.add(Unit{
			Name:      ctx.StackName(string(KindGithubOidc)),
			Kind:      KindGithubOidc,
			Component: manifest.ComponentGithubOidc,
			Env:       primary.Env, AccountID: primary.AccountID, Region: primary.Region,
		}); err != nil {
			return err
		}
	}
	return nil
}

// resolveEnvironment plans the compute family for one environment target:
// network precedes cluster precedes secret-store precedes compute precedes
// routing.
func resolveEnvironment(p *Plan, m *manifest.Manifest, topo *topology.Topology, tgt topology.EnvTarget) error {
	ctx, err := naming.New(m.Naming.Company, m.Naming.Project, tgt.Env, tgt.Region, tgt.AccountID)
	if err != nil {
		return err
	}

	network := ctx.StackName(string(KindNetwork))
	cluster := ctx.StackName(string(KindCluster))
	data := ctx.StackName(string(KindData))
	secrets := ctx.StackName(string(KindSecrets))
	compute := ctx.StackName(string(KindCompute))
	routing := ctx.StackName(string(KindRouting))

	if m.Infrastructure != nil {
		if err := p.add(Unit{
			Name: network, Kind: KindNetwork, Component: manifest.ComponentInfrastructure,
			Env: tgt.Env, AccountID: tgt.AccountID, Region: tgt.Region,
		}); err != nil {
			return err
		}
		if m.Infrastructure.Alb {
			if err := p.add(Unit{
				Name: cluster, Kind: KindCluster, Component: manifest.ComponentInfrastructure,
				Env: tgt.Env, AccountID: tgt.AccountID, Region: tgt.Region,
				DependsOn: []string{network},
			}); err != nil {
				return err
			}
		}
	}

	if m.SaasWorkload != nil {
		if len(topo.DatabaseBrands()) > 0 {
			if err := p.add(Unit{
				Name: data, Kind: KindData, Component: manifest.ComponentSaasWorkload,
				Env: tgt.Env, AccountID: tgt.AccountID, Region: tgt.Region,
			}); err != nil {
				return err
			}
		}
		if len(topo.SecretRefs()) > 0 {
			if err := p.add(Unit{
				Name: secrets, Kind: KindSecrets, Component: manifest.ComponentSaasWorkload,
				Env: tgt.Env, AccountID: tgt.AccountID, Region: tgt.Region,
				DependsOn: dependsOn(p, cluster, data),
			}); err != nil {
				return err
			}
		}
		if len(topo.APIBrands()) > 0 {
			if err := p.add(Unit{
				Name: compute, Kind: KindCompute, Component: manifest.ComponentSaasWorkload,
				Env: tgt.Env, AccountID: tgt.AccountID, Region: tgt.Region,
				DependsOn: dependsOn(p, network, cluster, data, secrets),
			}); err != nil {
				return err
			}
		}
		if m.Infrastructure != nil && m.Infrastructure.Alb && p.has(compute) {
			if err := p.add(Unit{
				Name: routing, Kind: KindRouting, Component: manifest.ComponentInfrastructure,
				Env: tgt.Env, AccountID: tgt.AccountID, Region: tgt.Region,
				DependsOn: dependsOn(p, cluster, compute),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveEdgeFamily plans the cross-account dns/edge family for one
// environment: zone (separate, single-account) precedes certificate precedes
// cdn precedes records. The routing-to-listener cycle is broken by the
// edge-wiring unit: cluster and routing exist without each other, and wiring
// alone joins them under a certificate.
func resolveEdgeFamily(p *Plan, m *manifest.Manifest, topo *topology.Topology, tgt topology.EnvTarget) error {
	if m.Domains == nil {
		return nil
	}
	ctx, err := naming.New(m.Naming.Company, m.Naming.Project, tgt.Env, tgt.Region, tgt.AccountID)
	if err != nil {
		return err
	}

	primary := topo.PrimaryTarget()
	primaryCtx, err := naming.New(m.Naming.Company, m.Naming.Project, primary.Env, primary.Region, primary.AccountID)
	if err != nil {
		return err
	}
	zones := primaryCtx.StackName(string(KindDNSZones))

	web := ctx.StackName(string(KindWebHosting))
	cert := ctx.StackName(string(KindEdgeCert))
	cdn := ctx.StackName(string(KindEdgeCDN))
	wiring := ctx.StackName(string(KindEdgeWiring))
	records := ctx.StackName(string(KindEdgeRecords))
	cluster := ctx.StackName(string(KindCluster))
	routing := ctx.StackName(string(KindRouting))

	hosted := topo.HostedBrandsIn(tgt.Env)

	if len(hosted) > 0 {
		if err := p.add(Unit{
			Name: web, Kind: KindWebHosting, Component: manifest.ComponentDomains,
			Env: tgt.Env, AccountID: tgt.AccountID, Region: tgt.Region,
		}); err != nil {
			return err
		}
	}

	if len(hosted) > 0 {
		// Certificates for CDN consumption must be requested in us-east-1.
		if err := p.add(Unit{
			Name: cert, Kind: KindEdgeCert, Component: manifest.ComponentDomains,
			Env: tgt.Env, AccountID: tgt.AccountID, Region: CertRegion,
			DependsOn: dependsOn(p, zones),
		}); err != nil {
			return err
		}
	}

	if len(hosted) > 0 {
		// CloudFront consumes the certificate directly, so the distribution
		// unit is pinned to the certificate region. Buckets stay in the env
		// region and are referenced by their deterministic names.
		if err := p.add(Unit{
			Name: cdn, Kind: KindEdgeCDN, Component: manifest.ComponentDomains,
			Env: tgt.Env, AccountID: tgt.AccountID, Region: CertRegion,
			DependsOn: dependsOn(p, web, cert),
		}); err != nil {
			return err
		}
	}

	if p.has(routing) {
		// Wiring consumes the routing target groups and the zone; the
		// listener certificate is its own regional one, since the edge
		// certificate is bound to the cdn region.
		if err := p.add(Unit{
			Name: wiring, Kind: KindEdgeWiring, Component: manifest.ComponentDomains,
			Env: tgt.Env, AccountID: tgt.AccountID, Region: tgt.Region,
			DependsOn: dependsOn(p, cluster, routing, zones),
		}); err != nil {
			return err
		}
	}

	if p.has(cdn) || p.has(wiring) {
		// All records are written in the account that owns the zone. The
		// distribution domain and load-balancer address arrive through their
		// published parameter paths.
		if err := p.add(Unit{
			Name: records, Kind: KindEdgeRecords, Component: manifest.ComponentDomains,
			Env: tgt.Env, AccountID: primary.AccountID, Region: primary.Region,
			DependsOn: dependsOn(p, cdn, wiring, zones),
		}); err != nil {
			return err
		}
	}
	return nil
}
