package topology

import (
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/plattolabs/stackforge/internal/manifest"
)

// Secret keys follow a {prefix}-{brand} convention: a trailing segment that
// names a declared brand re-keys the entry under that brand; anything else is
// scoped to the shared core service.
var secretKeyPattern = regexp2.MustCompile(`^(?<prefix>.+)-(?<brand>[a-z0-9]+)$`, regexp2.None)

func deriveSecretRefs(keys, brands []string) map[string]map[string]string {
	refs := map[string]map[string]string{}
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		prefix, brand := splitSecretKey(key, brands)
		if refs[prefix] == nil {
			refs[prefix] = map[string]string{}
		}
		refs[prefix][brand] = key
	}
	return refs
}

func splitSecretKey(key string, brands []string) (prefix, brand string) {
	m, err := secretKeyPattern.FindStringMatch(key)
	if err == nil && m != nil {
		suffix := m.GroupByName("brand").String()
		for _, b := range brands {
			if b == suffix {
				return m.GroupByName("prefix").String(), suffix
			}
		}
	}
	// No declared-brand suffix: the whole key is the prefix, scoped to core.
	return key, manifest.CoreBrand
}

// SecretRefs returns the derived secret map: prefix → (brand → declared key).
// Unsuffixed keys appear under the core brand.
func (t *Topology) SecretRefs() map[string]map[string]string {
	out := make(map[string]map[string]string, len(t.secretRefs))
	for prefix, byBrand := range t.secretRefs {
		out[prefix] = make(map[string]string, len(byBrand))
		for b, key := range byBrand {
			out[prefix][b] = key
		}
	}
	return out
}

// SecretKeysForBrand returns the declared keys scoped to one brand, sorted.
func (t *Topology) SecretKeysForBrand(brand string) []string {
	var keys []string
	for _, byBrand := range t.secretRefs {
		if key, ok := byBrand[brand]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
