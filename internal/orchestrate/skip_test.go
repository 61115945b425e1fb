package orchestrate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plattolabs/stackforge/internal/manifest"
	"github.com/plattolabs/stackforge/internal/resolve"
)

func skipUnit(name string, comp manifest.Component, env string, deps ...string) resolve.Unit {
	return resolve.Unit{Name: name, Component: comp, Env: env, DependsOn: deps}
}

func TestFailureScope_dependency(t *testing.T) {
	s := newFailureScope()
	s.record(skipUnit("helios-platform-nprd-network", manifest.ComponentInfrastructure, "nprd"))

	reason, blocked := s.blocked(skipUnit("helios-platform-nprd-cluster", manifest.ComponentInfrastructure, "nprd", "helios-platform-nprd-network"))
	assert.True(t, blocked)
	assert.Contains(t, reason, "helios-platform-nprd-network")

	_, blocked = s.blocked(skipUnit("helios-platform-nprd-data", manifest.ComponentSaasWorkload, "nprd", "helios-platform-nprd-secrets"))
	assert.False(t, blocked)
}

func TestFailureScope_componentScoped(t *testing.T) {
	s := newFailureScope()
	s.record(skipUnit("helios-platform-nprd-web", manifest.ComponentDomains, "nprd"))

	// later domains units in the same environment skip even without a
	// dependency edge onto the failed unit
	reason, blocked := s.blocked(skipUnit("helios-platform-nprd-edge-cert", manifest.ComponentDomains, "nprd", "helios-platform-mgmt-dns-zones"))
	assert.True(t, blocked)
	assert.Contains(t, reason, manifest.ComponentDomains.String())

	// same component in another environment continues
	_, blocked = s.blocked(skipUnit("helios-platform-prd-web", manifest.ComponentDomains, "prd"))
	assert.False(t, blocked)

	// other components in the same environment continue
	_, blocked = s.blocked(skipUnit("helios-platform-nprd-data", manifest.ComponentSaasWorkload, "nprd"))
	assert.False(t, blocked)
}

func TestFailureScope_skipPropagates(t *testing.T) {
	s := newFailureScope()
	s.record(skipUnit("helios-platform-nprd-web", manifest.ComponentDomains, "nprd"))

	cdn := skipUnit("helios-platform-nprd-edge-cdn", manifest.ComponentDomains, "nprd", "helios-platform-nprd-web")
	_, blocked := s.blocked(cdn)
	assert.True(t, blocked)
	s.record(cdn)

	_, blocked = s.blocked(skipUnit("helios-platform-nprd-edge-records", manifest.ComponentDomains, "nprd", "helios-platform-nprd-edge-cdn"))
	assert.True(t, blocked)
}
