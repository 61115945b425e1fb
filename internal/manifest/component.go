package manifest

// Component enumerates every manifest section that can produce deployable
// units. The enum is closed: all classification switches below are exhaustive
// so that adding a component forces a decision at each site instead of an
// ad-hoc presence check.
type Component int

const (
	ComponentOrganization Component = iota
	ComponentIdentityCenter
	ComponentDomains
	ComponentInfrastructure
	ComponentSaasWorkload
	ComponentGithubOidc
)

// Components returns all components in orchestration declaration order.
func Components() []Component {
	return []Component{
		ComponentOrganization,
		ComponentIdentityCenter,
		ComponentDomains,
		ComponentInfrastructure,
		ComponentSaasWorkload,
		ComponentGithubOidc,
	}
}

func (c Component) String() string {
	switch c {
	case ComponentOrganization:
		return "organization"
	case ComponentIdentityCenter:
		return "identity-center"
	case ComponentDomains:
		return "domains"
	case ComponentInfrastructure:
		return "infrastructure"
	case ComponentSaasWorkload:
		return "saas-workload"
	case ComponentGithubOidc:
		return "github-oidc"
	}
	return "unknown"
}

// SingleAccount reports whether the component deploys once, to the resolved
// primary/management target, as opposed to once per environment.
func (c Component) SingleAccount() bool {
	switch c {
	case ComponentOrganization, ComponentIdentityCenter, ComponentDomains, ComponentGithubOidc:
		return true
	case ComponentInfrastructure, ComponentSaasWorkload:
		return false
	}
	return false
}

// IncludesMgmt reports whether a multi-environment component also deploys to
// the reserved mgmt environment. The shared compute plane and workloads never
// land in the management account.
func (c Component) IncludesMgmt() bool {
	switch c {
	case ComponentInfrastructure, ComponentSaasWorkload:
		return false
	default:
		return false
	}
}

// Enabled reports whether the component's manifest section is present.
func (m *Manifest) Enabled(c Component) bool {
	switch c {
	case ComponentOrganization:
		return m.Organization != nil
	case ComponentIdentityCenter:
		return m.IdentityCenter != nil
	case ComponentDomains:
		return m.Domains != nil
	case ComponentInfrastructure:
		return m.Infrastructure != nil
	case ComponentSaasWorkload:
		return m.SaasWorkload != nil
	case ComponentGithubOidc:
		return m.GithubOidc != nil
	}
	return false
}
