// Package naming derives deterministic stack names, resource names, parameter
// paths, and export identifiers from a single immutable context value. The
// context is threaded explicitly into every builder call; nothing here is
// ambient or stateful, so repeated resolution runs against the same manifest
// always produce the same names.
package naming

import (
	"strings"

	"github.com/plattolabs/stackforge/internal/errs"
)

// Context carries the identity inputs every derived name is built from.
type Context struct {
	Company     string
	Project     string
	Environment string
	Region      string
	AccountID   string
}

// New validates the required fields and returns an immutable Context.
func New(company, project, environment, region, accountID string) (Context, error) {
	for field, v := range map[string]string{
		"company":     company,
		"project":     project,
		"environment": environment,
		"region":      region,
		"accountId":   accountID,
	} {
		if strings.TrimSpace(v) == "" {
			return Context{}, errs.NewConfiguration(field, "must not be blank")
		}
	}
	return Context{
		Company:     normalize(company),
		Project:     normalize(project),
		Environment: normalize(environment),
		Region:      region,
		AccountID:   accountID,
	}, nil
}

// ForEnvironment returns a copy of the context re-bound to another target.
func (c Context) ForEnvironment(environment, region, accountID string) (Context, error) {
	return New(c.Company, c.Project, environment, region, accountID)
}

// StackName returns the logical deployable-unit name for a component,
// optionally qualified: {company}-{project}-{env}-{component}[-{qualifier}...].
func (c Context) StackName(component string, qualifiers ...string) string {
	parts := append([]string{c.Company, c.Project, c.Environment, normalize(component)}, normalizeAll(qualifiers)...)
	return strings.Join(parts, "-")
}

// ResourceName returns a deterministic physical resource name for a kind,
// e.g. "helios-platform-nprd-table-acme".
func (c Context) ResourceName(kind string, qualifiers ...string) string {
	parts := append([]string{c.Company, c.Project, c.Environment, normalize(kind)}, normalizeAll(qualifiers)...)
	return strings.Join(parts, "-")
}

// ParameterPath returns the external parameter-store path for a published
// attribute: /{company}/{namespace}/{environment}/{service}/{attribute}.
func (c Context) ParameterPath(namespace, service, attribute string) string {
	return "/" + strings.Join([]string{c.Company, normalize(namespace), c.Environment, normalize(service), normalize(attribute)}, "/")
}

// BrandParameterPath inserts a brand segment before the attribute:
// /{company}/{namespace}/{environment}/{service}/{brand}/{attribute}.
// Producer and consumer must build this path from identical inputs; a
// divergent segment fails at lookup time, not at compile time.
func (c Context) BrandParameterPath(namespace, service, brand, attribute string) string {
	return "/" + strings.Join([]string{c.Company, normalize(namespace), c.Environment, normalize(service), normalize(brand), normalize(attribute)}, "/")
}

// ExportName returns a CloudFormation export identifier for a key.
func (c Context) ExportName(key string) string {
	return strings.Join([]string{c.Company, c.Project, c.Environment, normalize(key)}, "-")
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, normalize(s))
	}
	return out
}
