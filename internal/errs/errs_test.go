package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaxonomy(t *testing.T) {
	cfg := NewConfiguration("naming.company", "must not be blank")
	topo := NewTopology("saas-workload", "acme", "duplicate brand")
	orch := WrapOrchestration("domains", errors.New("boom"))

	assert.True(t, IsConfiguration(cfg))
	assert.False(t, IsTopology(cfg))
	assert.True(t, IsTopology(topo))
	assert.True(t, IsOrchestration(orch))
	assert.False(t, IsOrchestration(topo))
}

func TestWrapOrchestration_nil(t *testing.T) {
	assert.NoError(t, WrapOrchestration("domains", nil))
}

func TestWrapOrchestration_preservesCause(t *testing.T) {
	cause := NewConfiguration("cert.zone", "unresolved")
	err := WrapOrchestration("domains", fmt.Errorf("build cert: %w", cause))

	assert.True(t, IsOrchestration(err))
	assert.True(t, IsConfiguration(err))

	var oe *OrchestrationError
	assert.True(t, errors.As(err, &oe))
	assert.Equal(t, "domains", oe.Component)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "configuration: naming.company: must not be blank",
		NewConfiguration("naming.company", "must not be blank").Error())
	assert.Equal(t, `topology: saas-workload: brand "acme": duplicate brand name`,
		NewTopology("saas-workload", "acme", "duplicate brand name").Error())
	assert.Equal(t, "topology: saas-workload: no brands",
		NewTopology("saas-workload", "", "no brands").Error())
}
