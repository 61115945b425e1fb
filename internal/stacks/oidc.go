package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
)

const githubOidcIssuer = "token.actions.githubusercontent.com"

// OidcProps configures the CI trust provider and the deploy role its
// workflows assume. Repos are "owner/name" entries; each grants every branch
// and tag of that repository.
type OidcProps struct {
	Base
	Repos    []string
	RoleName string
}

type Oidc struct {
	Stack
	Role awsiam.Role
}

func BuildOidc(scope constructs.Construct, p OidcProps) (*Oidc, error) {
	if len(p.Repos) == 0 {
		return nil, errs.NewConfiguration("githubOidc.repos", "at least one repository is required")
	}
	if p.RoleName == "" {
		p.RoleName = p.Ctx.ResourceName("deploy")
	}
	stack := newStack(scope, p.Base)

	provider := awsiam.NewOpenIdConnectProvider(stack, jsii.String("GithubProvider"), &awsiam.OpenIdConnectProviderProps{
		Url:       jsii.String("https://" + githubOidcIssuer),
		ClientIds: jsii.Strings("sts.amazonaws.com"),
	})

	subs := make([]string, 0, len(p.Repos))
	for _, repo := range p.Repos {
		subs = append(subs, "repo:"+repo+":*")
	}
	principal := awsiam.NewWebIdentityPrincipal(provider.OpenIdConnectProviderArn(), &map[string]interface{}{
		"StringEquals": map[string]interface{}{
			githubOidcIssuer + ":aud": "sts.amazonaws.com",
		},
		"StringLike": map[string]interface{}{
			githubOidcIssuer + ":sub": subs,
		},
	})
	role := awsiam.NewRole(stack, jsii.String("DeployRole"), &awsiam.RoleProps{
		RoleName:           jsii.String(p.RoleName),
		AssumedBy:          principal,
		MaxSessionDuration: awscdk.Duration_Hours(jsii.Number(1)),
	})

	return &Oidc{Stack: Stack{Cdk: stack}, Role: role}, nil
}
