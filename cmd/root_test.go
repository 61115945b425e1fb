package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plattolabs/stackforge/internal/config"
)

func TestStoreBackend(t *testing.T) {
	orig := settings
	defer func() { settings = orig }()

	// the environment setting backs the flag when the flag is unset
	settings = config.Settings{StoreBackend: "memory"}
	assert.Equal(t, "memory", storeBackend(""))
	assert.Equal(t, "ssm", storeBackend("ssm"))

	settings = config.Settings{}
	assert.Equal(t, "", storeBackend(""))
}
