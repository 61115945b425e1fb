package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plattolabs/stackforge/internal/errs"
)

// Renderer is a tiny interface so manifest does not import the render
// package's heavy types (plugged by adapter in cmd).
type Renderer interface {
	RenderString(name, tpl string, data map[string]any) (string, error)
}

var accountIDPattern = regexp.MustCompile(`^\d{12}$`)

// Load reads, template-renders, and unmarshals a manifest file. The render
// data map is exposed to template expressions as {{ .env.FOO }}, {{ .git.shortSha }}
// and so on; pass nil data to skip substitution values.
func Load(path string, r Renderer, data map[string]any) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	text := string(b)
	if r != nil {
		text, err = r.RenderString(abs, text, data)
		if err != nil {
			return nil, fmt.Errorf("render manifest %s: %w", abs, err)
		}
	}

	var m Manifest
	if err = yaml.Unmarshal([]byte(text), &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", abs, err)
	}
	m.Path = abs

	if err = m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks required top-level fields. It runs before any unit is
// created; failures here are always ConfigurationError.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Naming.Company) == "" {
		return errs.NewConfiguration("naming.company", "must not be blank")
	}
	if strings.TrimSpace(m.Naming.Project) == "" {
		return errs.NewConfiguration("naming.project", "must not be blank")
	}
	if m.Environments.Len() == 0 {
		return errs.NewConfiguration("environments", "at least one environment entry is required")
	}
	for _, name := range m.Environments.Names() {
		t, _ := m.Environments.Get(name)
		if !accountIDPattern.MatchString(t.AccountID) {
			return errs.NewConfiguration("environments."+name+".accountId", "must be a 12-digit account id, got %q", t.AccountID)
		}
		if strings.TrimSpace(t.Region) == "" {
			return errs.NewConfiguration("environments."+name+".region", "must not be blank")
		}
	}
	if m.Domains != nil && strings.TrimSpace(m.Domains.Root) == "" {
		return errs.NewConfiguration("domains.root", "must not be blank when domains is enabled")
	}
	if m.IdentityCenter != nil && strings.TrimSpace(m.IdentityCenter.InstanceArn) == "" {
		return errs.NewConfiguration("identityCenter.instanceArn", "must not be blank when identityCenter is enabled")
	}
	if m.GithubOidc != nil && len(m.GithubOidc.Repos) == 0 {
		return errs.NewConfiguration("githubOidc.repos", "at least one repository is required when githubOidc is enabled")
	}
	return nil
}

// CheckEnvironmentFilter validates an optional --env filter against the
// declared environments. An empty filter is always valid.
func (m *Manifest) CheckEnvironmentFilter(env string) error {
	if env == "" {
		return nil
	}
	if !m.Environments.Has(env) {
		return errs.NewConfiguration("env", "environment %q is not declared in the manifest (have %s)", env, strings.Join(m.Environments.Names(), ", "))
	}
	return nil
}
