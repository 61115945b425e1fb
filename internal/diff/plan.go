// Package diff compares two resolution plans, typically the previous and the
// current manifest revision, and reports which deployable units would be
// created, re-wired, or abandoned.
package diff

import (
	"github.com/plattolabs/stackforge/internal/resolve"
)

type Item struct {
	Kind resolve.Kind
	Name string
}

type Plan struct {
	Creates []Item
	Updates []Item // same name, changed target or dependency edges
	Deletes []Item
}

// Between diffs old against next by logical unit name. Unit fingerprints
// cover account, region, and edges, so an Update means the unit would be
// re-wired in place.
func Between(old, next *resolve.Plan) *Plan {
	out := &Plan{}
	for _, u := range next.Units {
		prev, ok := old.Get(u.Name)
		switch {
		case !ok:
			out.Creates = append(out.Creates, Item{Kind: u.Kind, Name: u.Name})
		case prev.Fingerprint() != u.Fingerprint():
			out.Updates = append(out.Updates, Item{Kind: u.Kind, Name: u.Name})
		}
	}
	for _, u := range old.Units {
		if _, ok := next.Get(u.Name); !ok {
			out.Deletes = append(out.Deletes, Item{Kind: u.Kind, Name: u.Name})
		}
	}
	return out
}

// Empty reports whether the two plans resolve identically.
func (p *Plan) Empty() bool {
	return len(p.Creates) == 0 && len(p.Updates) == 0 && len(p.Deletes) == 0
}
