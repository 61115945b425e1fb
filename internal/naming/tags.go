package naming

// Deterministic tag set for ownership and cost attribution.

const (
	TagOwner       = "stackforge.owner"
	TagCompany     = "stackforge.company"
	TagProject     = "stackforge.project"
	TagEnvironment = "stackforge.environment"
	TagComponent   = "stackforge.component"
	TagRevision    = "stackforge.revision"
)

// StandardTags returns the tag set applied to every owned deployable unit.
// Revision may be empty when the manifest is resolved outside a git worktree.
func (c Context) StandardTags(component, owner, revision string) map[string]string {
	tags := map[string]string{
		TagOwner:       "stackforge",
		TagCompany:     c.Company,
		TagProject:     c.Project,
		TagEnvironment: c.Environment,
		TagComponent:   normalize(component),
	}
	if owner != "" {
		tags[TagOwner] = owner
	}
	if revision != "" {
		tags[TagRevision] = revision
	}
	return tags
}
