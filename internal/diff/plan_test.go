package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plattolabs/stackforge/internal/resolve"
)

func planOf(units ...resolve.Unit) *resolve.Plan {
	return resolve.FromUnits(units)
}

func TestBetween(t *testing.T) {
	old := planOf(
		resolve.Unit{Name: "helios-platform-nprd-network", Kind: resolve.KindNetwork, AccountID: "222222222222", Region: "eu-west-1"},
		resolve.Unit{Name: "helios-platform-nprd-cluster", Kind: resolve.KindCluster, AccountID: "222222222222", Region: "eu-west-1"},
		resolve.Unit{Name: "helios-platform-nprd-data", Kind: resolve.KindData, AccountID: "222222222222", Region: "eu-west-1"},
	)
	next := planOf(
		resolve.Unit{Name: "helios-platform-nprd-network", Kind: resolve.KindNetwork, AccountID: "222222222222", Region: "eu-west-1"},
		// moved to another account: same name, changed fingerprint
		resolve.Unit{Name: "helios-platform-nprd-cluster", Kind: resolve.KindCluster, AccountID: "444444444444", Region: "eu-west-1"},
		resolve.Unit{Name: "helios-platform-nprd-secrets", Kind: resolve.KindSecrets, AccountID: "222222222222", Region: "eu-west-1"},
	)

	pl := Between(old, next)
	assert.Equal(t, []Item{{Kind: resolve.KindSecrets, Name: "helios-platform-nprd-secrets"}}, pl.Creates)
	assert.Equal(t, []Item{{Kind: resolve.KindCluster, Name: "helios-platform-nprd-cluster"}}, pl.Updates)
	assert.Equal(t, []Item{{Kind: resolve.KindData, Name: "helios-platform-nprd-data"}}, pl.Deletes)
	assert.False(t, pl.Empty())
}

func TestBetween_identicalPlansAreEmpty(t *testing.T) {
	a := planOf(resolve.Unit{Name: "x", Kind: resolve.KindNetwork, AccountID: "1", Region: "r", DependsOn: []string{"b", "a"}})
	b := planOf(resolve.Unit{Name: "x", Kind: resolve.KindNetwork, AccountID: "1", Region: "r", DependsOn: []string{"a", "b"}})

	// dependency order inside a unit carries no meaning
	assert.True(t, Between(a, b).Empty())
}
