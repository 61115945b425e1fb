// Package orchestrate executes a resolved plan: it walks the ordered unit
// list, dispatches each unit to its builder with direct handles where the
// linkage mode allows it and published-path lookups where it does not, and
// mirrors the plan's dependency edges onto the emitted stacks. A failure is
// fatal for the rest of its component in that environment; every other
// component continues.
package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-cdk-go/awscdk/v2"

	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/linkage"
	"github.com/plattolabs/stackforge/internal/manifest"
	"github.com/plattolabs/stackforge/internal/naming"
	"github.com/plattolabs/stackforge/internal/resolve"
	"github.com/plattolabs/stackforge/internal/stacks"
	"github.com/plattolabs/stackforge/internal/topology"
)

// Options carries everything one synthesis run needs.
type Options struct {
	Manifest *manifest.Manifest
	Topology *topology.Topology
	Plan     *resolve.Plan
	// Links resolves published parameter paths for edges that cannot use a
	// direct handle. Required whenever the plan contains edge units.
	Links    *linkage.Checker
	Revision string
	Log      *slog.Logger
}

// Result reports what one run produced. Failed maps unit names to the error
// that stopped them, skipped downstream units included.
type Result struct {
	App    awscdk.App
	Built  []string
	Failed map[string]error
}

// Err joins the per-unit failures, nil when everything built.
func (r *Result) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errsList := make([]error, 0, len(r.Failed))
	for _, e := range r.Failed {
		errsList = append(errsList, e)
	}
	return errors.Join(errsList...)
}

type run struct {
	opts    Options
	app     awscdk.App
	primary topology.EnvTarget

	dns      *stacks.DNS
	networks map[string]*stacks.Network
	clusters map[string]*stacks.Cluster
	datas    map[string]*stacks.Data
	secrets  map[string]*stacks.Secrets
	computes map[string]*stacks.Compute
	routings map[string]*stacks.Routing
	certs    map[string]*stacks.Cert
	cdns     map[string]*stacks.Cdn

	cdk    map[string]awscdk.Stack
	failed map[string]error
	scope  *failureScope
}

// Synthesize builds every unit of the plan into one app.
func Synthesize(ctx context.Context, opts Options) (*Result, error) {
	if opts.Manifest == nil || opts.Topology == nil || opts.Plan == nil {
		return nil, errs.NewConfiguration("orchestrate", "manifest, topology, and plan are required")
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	r := &run{
		opts:     opts,
		app:      awscdk.NewApp(nil),
		primary:  opts.Topology.PrimaryTarget(),
		networks: map[string]*stacks.Network{},
		clusters: map[string]*stacks.Cluster{},
		datas:    map[string]*stacks.Data{},
		secrets:  map[string]*stacks.Secrets{},
		computes: map[string]*stacks.Compute{},
		routings: map[string]*stacks.Routing{},
		certs:    map[string]*stacks.Cert{},
		cdns:     map[string]*stacks.Cdn{},
		cdk:      map[string]awscdk.Stack{},
		failed:   map[string]error{},
		scope:    newFailureScope(),
	}

	res := &Result{App: r.app, Failed: r.failed}
	for _, u := range opts.Plan.Units {
		if reason, blocked := r.scope.blocked(u); blocked {
			r.failed[u.Name] = errs.WrapOrchestration(u.Component.String(),
				fmt.Errorf("skipped: %s", reason))
			r.scope.record(u)
			continue
		}
		stack, err := r.build(ctx, u)
		if err != nil {
			wrapped := errs.WrapOrchestration(u.Component.String(), err)
			r.failed[u.Name] = wrapped
			r.scope.record(u)
			opts.Log.Error("unit failed", "unit", u.Name, "kind", u.Kind, "err", err)
			continue
		}
		r.cdk[u.Name] = stack
		for _, dep := range u.DependsOn {
			if target, ok := r.cdk[dep]; ok {
				stack.AddDependency(target, nil)
			}
		}
		res.Built = append(res.Built, u.Name)
		opts.Log.Debug("unit built", "unit", u.Name, "kind", u.Kind, "account", u.AccountID, "region", u.Region)
	}
	return res, nil
}

func (r *run) base(u resolve.Unit) (stacks.Base, error) {
	ctx, err := naming.New(r.opts.Manifest.Naming.Company, r.opts.Manifest.Naming.Project, u.Env, u.Region, u.AccountID)
	if err != nil {
		return stacks.Base{}, err
	}
	return stacks.Base{
		Ctx:         ctx,
		Name:        u.Name,
		Component:   u.Component.String(),
		Fingerprint: u.Fingerprint(),
		Owner:       r.opts.Manifest.Naming.Owner,
		Revision:    r.opts.Revision,
	}, nil
}

// envContext is the naming context for a unit's environment at its home
// region, independent of where the unit itself is pinned. Buckets and other
// physical names derive from it.
func (r *run) envContext(env string) (naming.Context, error) {
	tgt, ok := r.opts.Manifest.Environments.Get(env)
	if !ok {
		return naming.Context{}, errs.NewConfiguration("environments", "environment %s is not declared", env)
	}
	return naming.New(r.opts.Manifest.Naming.Company, r.opts.Manifest.Naming.Project, env, tgt.Region, tgt.AccountID)
}

func (r *run) build(ctx context.Context, u resolve.Unit) (awscdk.Stack, error) {
	base, err := r.base(u)
	if err != nil {
		return nil, err
	}
	m, topo := r.opts.Manifest, r.opts.Topology

	switch u.Kind {
	case resolve.KindOrganization:
		h, err := stacks.BuildOrg(r.app, stacks.OrgProps{
			Base:       base,
			RootID:     m.Organization.RootID,
			FeatureSet: m.Organization.FeatureSet,
			Units:      m.Organization.Units,
		})
		if err != nil {
			return nil, err
		}
		return h.Cdk, nil

	case resolve.KindIdentityCenter:
		h, err := stacks.BuildIdentity(r.app, stacks.IdentityProps{
			Base:           base,
			InstanceArn:    m.IdentityCenter.InstanceArn,
			PermissionSets: m.IdentityCenter.PermissionSets,
		})
		if err != nil {
			return nil, err
		}
		return h.Cdk, nil

	case resolve.KindDNSZones:
		h, err := stacks.BuildDNS(r.app, stacks.DNSProps{Base: base, Root: m.Domains.Root})
		if err != nil {
			return nil, err
		}
		r.dns = h
		return h.Cdk, nil

	case resolve.KindGithubOidc:
		h, err := stacks.BuildOidc(r.app, stacks.OidcProps{
			Base:     base,
			Repos:    m.GithubOidc.Repos,
			RoleName: m.GithubOidc.RoleName,
		})
		if err != nil {
			return nil, err
		}
		return h.Cdk, nil

	case resolve.KindNetwork:
		h, err := stacks.BuildNetwork(r.app, stacks.NetworkProps{
			Base:        base,
			Cidr:        m.Infrastructure.VpcCidr,
			MaxAzs:      m.Infrastructure.MaxAzs,
			NatGateways: m.Infrastructure.NatGateways,
		})
		if err != nil {
			return nil, err
		}
		r.networks[u.Env] = h
		return h.Cdk, nil

	case resolve.KindCluster:
		h, err := stacks.BuildCluster(r.app, stacks.ClusterProps{Base: base, Network: r.networks[u.Env]})
		if err != nil {
			return nil, err
		}
		r.clusters[u.Env] = h
		return h.Cdk, nil

	case resolve.KindData:
		h, err := stacks.BuildData(r.app, stacks.DataProps{Base: base, Brands: r.activeAPIBrands(u.Env)})
		if err != nil {
			return nil, err
		}
		r.datas[u.Env] = h
		return h.Cdk, nil

	case resolve.KindSecrets:
		h, err := stacks.BuildSecrets(r.app, stacks.SecretsProps{Base: base, Refs: topo.SecretRefs()})
		if err != nil {
			return nil, err
		}
		r.secrets[u.Env] = h
		return h.Cdk, nil

	case resolve.KindCompute:
		brands := r.activeAPIBrands(u.Env)
		keys := make(map[string][]string, len(brands))
		for _, b := range brands {
			keys[b] = topo.SecretKeysForBrand(b)
		}
		h, err := stacks.BuildCompute(r.app, stacks.ComputeProps{
			Base:        base,
			Brands:      brands,
			ArtifactDir: m.SaasWorkload.ArtifactDir,
			SecretKeys:  keys,
			Network:     r.networks[u.Env],
			Data:        r.datas[u.Env],
			Secrets:     r.secrets[u.Env],
		})
		if err != nil {
			return nil, err
		}
		r.computes[u.Env] = h
		return h.Cdk, nil

	case resolve.KindRouting:
		h, err := stacks.BuildRouting(r.app, stacks.RoutingProps{
			Base:    base,
			Brands:  r.activeAPIBrands(u.Env),
			Compute: r.computes[u.Env],
		})
		if err != nil {
			return nil, err
		}
		r.routings[u.Env] = h
		return h.Cdk, nil

	case resolve.KindWebHosting:
		h, err := stacks.BuildWeb(r.app, stacks.WebProps{
			Base:   base,
			Brands: topo.HostedBrandsIn(u.Env),
		})
		if err != nil {
			return nil, err
		}
		return h.Cdk, nil

	case resolve.KindEdgeCert:
		return r.buildEdgeCert(ctx, u, base)

	case resolve.KindEdgeCDN:
		return r.buildEdgeCdn(u, base)

	case resolve.KindEdgeWiring:
		return r.buildEdgeWiring(ctx, u, base)

	case resolve.KindEdgeRecords:
		return r.buildEdgeRecords(ctx, u, base)
	}
	return nil, fmt.Errorf("no builder for unit kind %q", u.Kind)
}

// activeAPIBrands narrows the derived API brand set to one environment.
func (r *run) activeAPIBrands(env string) []string {
	var out []string
	for _, b := range r.opts.Topology.APIBrands() {
		if r.opts.Topology.BrandActiveIn(b, env) {
			out = append(out, b)
		}
	}
	return out
}

func (r *run) buildEdgeCert(ctx context.Context, u resolve.Unit, base stacks.Base) (awscdk.Stack, error) {
	m, topo := r.opts.Manifest, r.opts.Topology
	zoneID, zoneName, err := r.zoneAttrs(ctx, topology.EnvTarget{Env: u.Env, AccountID: u.AccountID, Region: u.Region})
	if err != nil {
		return nil, err
	}
	var domains []string
	for _, b := range topo.HostedBrandsIn(u.Env) {
		domains = append(domains, siteHostname(topo.Subdomain(b), u.Env, m.Domains.Root))
	}
	h, err := stacks.BuildCert(r.app, stacks.CertProps{
		Base:     base,
		ZoneID:   zoneID,
		ZoneName: zoneName,
		Domains:  domains,
	})
	if err != nil {
		return nil, err
	}
	r.certs[u.Env] = h
	return h.Cdk, nil
}

func (r *run) buildEdgeCdn(u resolve.Unit, base stacks.Base) (awscdk.Stack, error) {
	m, topo := r.opts.Manifest, r.opts.Topology
	envCtx, err := r.envContext(u.Env)
	if err != nil {
		return nil, err
	}
	var sites []stacks.CdnSite
	for _, b := range topo.HostedBrandsIn(u.Env) {
		sites = append(sites, stacks.CdnSite{
			Brand:        b,
			Hostname:     siteHostname(topo.Subdomain(b), u.Env, m.Domains.Root),
			BucketName:   stacks.WebBucketName(envCtx, b),
			BucketRegion: envCtx.Region,
		})
	}
	h, err := stacks.BuildCdn(r.app, stacks.CdnProps{Base: base, Sites: sites, Cert: r.certs[u.Env]})
	if err != nil {
		return nil, err
	}
	r.cdns[u.Env] = h
	return h.Cdk, nil
}

func (r *run) buildEdgeWiring(ctx context.Context, u resolve.Unit, base stacks.Base) (awscdk.Stack, error) {
	m, topo := r.opts.Manifest, r.opts.Topology
	zoneID, zoneName, err := r.zoneAttrs(ctx, topology.EnvTarget{Env: u.Env, AccountID: u.AccountID, Region: u.Region})
	if err != nil {
		return nil, err
	}
	var rules []stacks.WiringRule
	for _, b := range r.activeAPIBrands(u.Env) {
		rules = append(rules, stacks.WiringRule{
			Brand:    b,
			Hostname: apiHostname(b, topo.Subdomain(b), u.Env, m.Domains.Root),
		})
	}
	h, err := stacks.BuildWiring(r.app, stacks.WiringProps{
		Base:     base,
		ZoneID:   zoneID,
		ZoneName: zoneName,
		Rules:    rules,
		Cluster:  r.clusters[u.Env],
		Routing:  r.routings[u.Env],
	})
	if err != nil {
		return nil, err
	}
	return h.Cdk, nil
}

func (r *run) buildEdgeRecords(ctx context.Context, u resolve.Unit, base stacks.Base) (awscdk.Stack, error) {
	m, topo := r.opts.Manifest, r.opts.Topology
	consumer := topology.EnvTarget{Env: u.Env, AccountID: u.AccountID, Region: u.Region}
	zoneID, zoneName, err := r.zoneAttrs(ctx, consumer)
	if err != nil {
		return nil, err
	}
	envCtx, err := r.envContext(u.Env)
	if err != nil {
		return nil, err
	}
	envTarget := topology.EnvTarget{Env: u.Env, AccountID: envCtx.AccountID, Region: envCtx.Region}

	var entries []stacks.CnameEntry
	if cdn := r.cdns[u.Env]; cdn != nil {
		producer := topology.EnvTarget{Env: u.Env, AccountID: envCtx.AccountID, Region: resolve.CertRegion}
		for _, b := range topo.HostedBrandsIn(u.Env) {
			var domain string
			if linkage.Classify(producer, consumer, true) == linkage.Direct {
				domain = *cdn.Distributions[b].DistributionDomainName()
			} else {
				domain, err = r.lookup(ctx, envCtx.BrandParameterPath(linkage.NamespacePlatform, linkage.ServiceCDN, b, linkage.AttrDomain))
				if err != nil {
					return nil, err
				}
			}
			entries = append(entries, stacks.CnameEntry{
				ID:       "cdn-" + b,
				Hostname: siteHostname(topo.Subdomain(b), u.Env, m.Domains.Root),
				Target:   domain,
			})
		}
	}
	if cluster := r.clusters[u.Env]; cluster != nil && r.routings[u.Env] != nil {
		var albDNS string
		if linkage.Classify(envTarget, consumer, true) == linkage.Direct {
			albDNS = *cluster.Alb.LoadBalancerDnsName()
		} else {
			albDNS, err = r.lookup(ctx, envCtx.ParameterPath(linkage.NamespacePlatform, linkage.ServiceALB, linkage.AttrDNSName))
			if err != nil {
				return nil, err
			}
		}
		for _, b := range r.activeAPIBrands(u.Env) {
			entries = append(entries, stacks.CnameEntry{
				ID:       "api-" + b,
				Hostname: apiHostname(b, topo.Subdomain(b), u.Env, m.Domains.Root),
				Target:   albDNS,
			})
		}
	}

	h, err := stacks.BuildRecords(r.app, stacks.RecordsProps{
		Base:     base,
		ZoneID:   zoneID,
		ZoneName: zoneName,
		Entries:  entries,
	})
	if err != nil {
		return nil, err
	}
	return h.Cdk, nil
}

// zoneAttrs resolves the root zone's id and name for a consumer target:
// through the in-pass handle when the linkage is direct, through the
// published paths otherwise.
func (r *run) zoneAttrs(ctx context.Context, consumer topology.EnvTarget) (string, string, error) {
	if r.dns != nil && linkage.Classify(r.primary, consumer, true) == linkage.Direct {
		return *r.dns.Zone.HostedZoneId(), *r.dns.Zone.ZoneName(), nil
	}
	primaryCtx, err := naming.New(r.opts.Manifest.Naming.Company, r.opts.Manifest.Naming.Project, r.primary.Env, r.primary.Region, r.primary.AccountID)
	if err != nil {
		return "", "", err
	}
	zoneID, err := r.lookup(ctx, primaryCtx.ParameterPath(linkage.NamespacePlatform, linkage.ServiceDNS, linkage.AttrZoneID))
	if err != nil {
		return "", "", err
	}
	zoneName, err := r.lookup(ctx, primaryCtx.ParameterPath(linkage.NamespacePlatform, linkage.ServiceDNS, linkage.AttrZoneName))
	if err != nil {
		return "", "", err
	}
	return zoneID, zoneName, nil
}

func (r *run) lookup(ctx context.Context, path string) (string, error) {
	if r.opts.Links == nil {
		return "", errs.NewConfiguration("orchestrate.links", "a parameter resolver is required for indirect edges")
	}
	v, err := r.opts.Links.Lookup(ctx, path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return v, nil
}
