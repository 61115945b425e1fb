package resolve

// Order-independent projections of plan units for stable fingerprinting.
// Dependency order within a unit carries no meaning, so it is sorted before
// hashing.

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

type normalizedUnit struct {
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Account   string   `json:"account"`
	Region    string   `json:"region"`
	DependsOn []string `json:"dependsOn,omitempty"`
}

// Fingerprint returns a stable digest of the unit's identity and edges.
// Builders stamp it onto the emitted stack as a tag so drift between the
// planned and deployed topology is detectable. The normalized shape cannot
// fail to marshal.
func (u Unit) Fingerprint() string {
	deps := append([]string(nil), u.DependsOn...)
	sort.Strings(deps)
	b, _ := json.Marshal(normalizedUnit{
		Name:      u.Name,
		Kind:      string(u.Kind),
		Account:   u.AccountID,
		Region:    u.Region,
		DependsOn: deps,
	})
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Summary returns a one-line account of the plan.
func (p *Plan) Summary() string {
	envs := map[string]struct{}{}
	accounts := map[string]struct{}{}
	for _, u := range p.Units {
		envs[u.Env] = struct{}{}
		accounts[u.AccountID] = struct{}{}
	}
	return fmt.Sprintf("units:%d environments:%d accounts:%d", len(p.Units), len(envs), len(accounts))
}
