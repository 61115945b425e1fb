package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGitShortSHA_outsideWorktree(t *testing.T) {
	assert.Equal(t, "", GitShortSHA(t.TempDir()))
}
