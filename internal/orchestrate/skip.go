package orchestrate

import "github.com/plattolabs/stackforge/internal/resolve"

// failureScope tracks which units failed and poisons the rest of their
// component within the same environment. A broken component must not keep
// emitting partial stacks, while unrelated components continue.
type failureScope struct {
	units      map[string]struct{}
	components map[string]struct{}
}

func newFailureScope() *failureScope {
	return &failureScope{
		units:      map[string]struct{}{},
		components: map[string]struct{}{},
	}
}

// record marks u as failed, whether it errored or was skipped. Skipped units
// count so their own dependents skip in turn.
func (s *failureScope) record(u resolve.Unit) {
	s.units[u.Name] = struct{}{}
	s.components[componentKey(u)] = struct{}{}
}

// blocked reports why u cannot build: a failed dependency, or an earlier
// failure elsewhere in its component and environment.
func (s *failureScope) blocked(u resolve.Unit) (string, bool) {
	for _, dep := range u.DependsOn {
		if _, failed := s.units[dep]; failed {
			return "upstream unit " + dep + " failed", true
		}
	}
	if _, failed := s.components[componentKey(u)]; failed {
		return "component " + u.Component.String() + " already failed in " + u.Env, true
	}
	return "", false
}

func componentKey(u resolve.Unit) string {
	return u.Component.String() + "/" + u.Env
}
