package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plattolabs/stackforge/internal/manifest"
)

func TestUnitFingerprint_stable(t *testing.T) {
	u := Unit{
		Name: "helios-platform-nprd-network", Kind: KindNetwork,
		Component: manifest.ComponentInfrastructure,
		Env:       "nprd", AccountID: "222222222222", Region: "eu-west-1",
		DependsOn: []string{"a", "b"},
	}
	fp := u.Fingerprint()
	assert.Len(t, fp, 64)
	assert.Equal(t, fp, u.Fingerprint())

	// dependency order carries no meaning
	reordered := u
	reordered.DependsOn = []string{"b", "a"}
	assert.Equal(t, fp, reordered.Fingerprint())

	moved := u
	moved.AccountID = "333333333333"
	assert.NotEqual(t, fp, moved.Fingerprint())
}
