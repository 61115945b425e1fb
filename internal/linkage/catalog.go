package linkage

import (
	"github.com/plattolabs/stackforge/internal/manifest"
	"github.com/plattolabs/stackforge/internal/naming"
	"github.com/plattolabs/stackforge/internal/topology"
)

// Catalog enumerates every parameter path the current manifest's producers
// will publish. It is the basis for telling "not yet published" apart from
// "no producer will ever publish this".
func Catalog(m *manifest.Manifest, topo *topology.Topology) ([]string, error) {
	var paths []string

	if m.Domains != nil {
		primary := topo.PrimaryTarget()
		ctx, err := naming.New(m.Naming.Company, m.Naming.Project, primary.Env, primary.Region, primary.AccountID)
		if err != nil {
			return nil, err
		}
		paths = append(paths,
			ctx.ParameterPath(NamespacePlatform, ServiceDNS, AttrZoneID),
			ctx.ParameterPath(NamespacePlatform, ServiceDNS, AttrZoneName),
		)
	}

	for _, tgt := range topo.Targets(manifest.ComponentInfrastructure, "") {
		ctx, err := naming.New(m.Naming.Company, m.Naming.Project, tgt.Env, tgt.Region, tgt.AccountID)
		if err != nil {
			return nil, err
		}
		if m.Infrastructure != nil && m.Infrastructure.Alb {
			paths = append(paths,
				ctx.ParameterPath(NamespacePlatform, ServiceALB, AttrDNSName),
				ctx.ParameterPath(NamespacePlatform, ServiceALB, AttrCanonicalZoneID),
			)
		}
		if m.Domains == nil {
			continue
		}
		// The certificate and distributions exist only when the environment
		// hosts at least one site, independent of the infrastructure section.
		hosted := topo.HostedBrandsIn(tgt.Env)
		if len(hosted) == 0 {
			continue
		}
		paths = append(paths, ctx.ParameterPath(NamespacePlatform, ServiceCert, AttrArn))
		for _, brand := range hosted {
			paths = append(paths,
				ctx.BrandParameterPath(NamespacePlatform, ServiceCDN, brand, AttrDomain),
				ctx.BrandParameterPath(NamespacePlatform, ServiceCDN, brand, AttrDistributionID),
			)
		}
	}

	return paths, nil
}
