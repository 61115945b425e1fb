package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderString(t *testing.T) {
	e := NewEngine()
	out, err := e.RenderString("t", `region: {{ .env.REGION }}`, map[string]any{
		"env": map[string]string{"REGION": "eu-west-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "region: eu-west-1", out)
}

func TestRenderString_defaultFunc(t *testing.T) {
	e := NewEngine()
	out, err := e.RenderString("t", `{{ .env.MISSING | default "fallback" }}`, map[string]any{
		"env": map[string]string{},
	})
	require.NoError(t, err)
	assert.Equal(t, "fallback", out)
}

func TestRenderString_sprigFuncs(t *testing.T) {
	e := NewEngine()
	out, err := e.RenderString("t", `{{ upper "acme" }}-{{ trunc 3 "platform" }}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "ACME-pla", out)
}

func TestRenderString_badTemplate(t *testing.T) {
	e := NewEngine()
	_, err := e.RenderString("t", `{{ .unclosed`, nil)
	assert.Error(t, err)
}

func TestData(t *testing.T) {
	t.Setenv("STACKFORGE_TEST_VAR", "on")
	d := Data("abc1234")

	envs, ok := d["env"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "on", envs["STACKFORGE_TEST_VAR"])

	git, ok := d["git"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "abc1234", git["shortSha"])
}
