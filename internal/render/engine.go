// Package render runs the manifest's template pass: expressions like
// {{ .env.AWS_PROFILE }} or {{ .git.shortSha }} are expanded before yaml
// parsing, with the sprig function set available.
package render

import (
	"bytes"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

type Engine struct {
	funcs template.FuncMap
}

func NewEngine() *Engine {
	fm := sprig.TxtFuncMap()
	fm["default"] = func(def any, v any) any {
		switch x := v.(type) {
		case nil:
			return def
		case string:
			if x == "" {
				return def
			}
		}
		return v
	}
	return &Engine{funcs: fm}
}

func (e *Engine) RenderString(name, tpl string, data map[string]any) (string, error) {
	t, err := template.New(name).Funcs(e.funcs).Option("missingkey=zero").Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Data builds the standard template context for a manifest render: the
// process environment under .env and the source revision under .git.shortSha.
func Data(revision string) map[string]any {
	envs := map[string]string{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envs[k] = v
		}
	}
	return map[string]any{
		"env": envs,
		"git": map[string]any{"shortSha": revision},
	}
}
