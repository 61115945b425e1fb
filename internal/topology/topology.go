// Package topology expands the manifest's compact, flag-based brand entries
// into the derived sets the orchestrator needs: capability brand lists,
// per-brand secret maps, and per-component target lists. Derivation is pure
// and recomputed on every resolution run; nothing here is persisted.
package topology

import (
	"strings"

	"github.com/samber/lo"

	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/manifest"
)

// Topology holds the derived sets for one manifest. All accessors return
// copies in deterministic order so repeated derivations are identical.
type Topology struct {
	m *manifest.Manifest

	brands          []string // normalized, declaration order
	apiBrands       []string // core first when non-empty
	webBrands       []string
	marketingBrands []string
	brandEnvs       map[string][]string // brand → restricted env list, empty = all
	secretRefs      map[string]map[string]string
}

// Derive computes the full derived topology. Missing optional sections
// default to empty sets; the only failures are brand collisions after
// normalization and brand entries restricted to undeclared environments.
func Derive(m *manifest.Manifest) (*Topology, error) {
	t := &Topology{
		m:          m,
		brandEnvs:  map[string][]string{},
		secretRefs: map[string]map[string]string{},
	}

	var entries []manifest.Brand
	if m.SaasWorkload != nil {
		entries = m.SaasWorkload.Brands
	}

	seen := map[string]struct{}{}
	for _, b := range entries {
		name := normalizeBrand(b.Name)
		if name == "" {
			return nil, errs.NewTopology(manifest.ComponentSaasWorkload.String(), "", "brand entry with blank name")
		}
		if _, dup := seen[name]; dup {
			return nil, errs.NewTopology(manifest.ComponentSaasWorkload.String(), name, "duplicate brand name after normalization")
		}
		seen[name] = struct{}{}
		t.brands = append(t.brands, name)

		for _, env := range b.Environments {
			if !m.Environments.Has(env) {
				return nil, errs.NewTopology(manifest.ComponentSaasWorkload.String(), name, "restricted to environment %q which is not declared", env)
			}
			t.brandEnvs[name] = append(t.brandEnvs[name], env)
		}

		if b.LambdaApi {
			t.apiBrands = append(t.apiBrands, name)
		}
		if b.WebApp {
			t.webBrands = append(t.webBrands, name)
		}
		if b.MarketingSite {
			t.marketingBrands = append(t.marketingBrands, name)
		}
	}

	// The shared core service rides along whenever any brand needs an API,
	// even if the source array never enumerates it.
	if len(t.apiBrands) > 0 && !lo.Contains(t.apiBrands, manifest.CoreBrand) {
		t.apiBrands = append([]string{manifest.CoreBrand}, t.apiBrands...)
	}

	if m.SaasWorkload != nil {
		t.secretRefs = deriveSecretRefs(m.SaasWorkload.SecretKeys, t.brands)
	}

	return t, nil
}

// APIBrands returns brands needing API compute, the shared core service
// included whenever the set is non-empty.
func (t *Topology) APIBrands() []string {
	return append([]string(nil), t.apiBrands...)
}

// DatabaseBrands returns brands needing a database/table set. A brand needs
// one exactly when it declares an API capability.
func (t *Topology) DatabaseBrands() []string {
	return append([]string(nil), t.apiBrands...)
}

// WebBrands returns brands needing object-storage web hosting; independent of
// API capability.
func (t *Topology) WebBrands() []string {
	return append([]string(nil), t.webBrands...)
}

// MarketingBrands returns brands with a marketing site.
func (t *Topology) MarketingBrands() []string {
	return append([]string(nil), t.marketingBrands...)
}

// Brands returns every declared brand in declaration order (normalized,
// without the synthesized core entry).
func (t *Topology) Brands() []string {
	return append([]string(nil), t.brands...)
}

// BrandActiveIn reports whether a brand deploys to env. Brands without an
// explicit restriction list deploy everywhere; core always does.
func (t *Topology) BrandActiveIn(brand, env string) bool {
	if brand == manifest.CoreBrand {
		return true
	}
	envs := t.brandEnvs[brand]
	if len(envs) == 0 {
		return true
	}
	return lo.Contains(envs, env)
}

// HostedBrands returns the union of web and marketing brands, deduplicated,
// web brands first.
func (t *Topology) HostedBrands() []string {
	return lo.Uniq(append(t.WebBrands(), t.marketingBrands...))
}

// HostedBrandsIn filters the hosted set to one environment, honoring the
// marketingCdn capability flag nested under domains. Both the resolution
// pass and the publish catalog derive the edge family from this list.
func (t *Topology) HostedBrandsIn(env string) []string {
	var out []string
	for _, b := range t.webBrands {
		if t.BrandActiveIn(b, env) {
			out = append(out, b)
		}
	}
	if t.m.Domains != nil && t.m.Domains.MarketingCdn {
		for _, b := range t.marketingBrands {
			if t.BrandActiveIn(b, env) && !lo.Contains(out, b) {
				out = append(out, b)
			}
		}
	}
	return out
}

// Subdomain returns the brand's site label: its declared subdomain when set,
// otherwise the brand name itself.
func (t *Topology) Subdomain(brand string) string {
	if t.m.SaasWorkload != nil {
		for _, b := range t.m.SaasWorkload.Brands {
			if normalizeBrand(b.Name) == brand && b.Subdomain != "" {
				return normalizeBrand(b.Subdomain)
			}
		}
	}
	return brand
}

func normalizeBrand(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
