package topology

import (
	"github.com/plattolabs/stackforge/internal/manifest"
)

// EnvTarget is one resolved deployment target for a component instance.
type EnvTarget struct {
	Env       string
	AccountID string
	Region    string
}

// PrimaryTarget resolves the single-account target: the mgmt entry when
// present, else the first declared environment in manifest order. Manifest
// validation guarantees at least one entry exists.
func (t *Topology) PrimaryTarget() EnvTarget {
	if tgt, ok := t.m.Environments.Get(manifest.MgmtEnvironment); ok {
		return EnvTarget{Env: manifest.MgmtEnvironment, AccountID: tgt.AccountID, Region: tgt.Region}
	}
	name, tgt, _ := t.m.Environments.First()
	return EnvTarget{Env: name, AccountID: tgt.AccountID, Region: tgt.Region}
}

// Targets resolves the target list for a component. Single-account components
// get exactly one target and ignore the environment filter; multi-environment
// components get every declared environment (mgmt excluded per component
// rule), narrowed by a non-empty filter.
func (t *Topology) Targets(c manifest.Component, envFilter string) []EnvTarget {
	if c.SingleAccount() {
		return []EnvTarget{t.PrimaryTarget()}
	}
	var out []EnvTarget
	for _, name := range t.m.Environments.Names() {
		if name == manifest.MgmtEnvironment && !c.IncludesMgmt() {
			continue
		}
		if envFilter != "" && name != envFilter {
			continue
		}
		tgt, _ := t.m.Environments.Get(name)
		out = append(out, EnvTarget{Env: name, AccountID: tgt.AccountID, Region: tgt.Region})
	}
	return out
}
