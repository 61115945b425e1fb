package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awssso"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
	"github.com/plattolabs/stackforge/internal/manifest"
)

// IdentityProps configures permission sets against an existing identity
// instance. The instance itself is account-level state the deployer cannot
// create, so its ARN is a required input.
type IdentityProps struct {
	Base
	InstanceArn    string
	PermissionSets []manifest.PermissionSet
}

type Identity struct {
	Stack
}

func BuildIdentity(scope constructs.Construct, p IdentityProps) (*Identity, error) {
	if p.InstanceArn == "" {
		return nil, errs.NewConfiguration("identityCenter.instanceArn", "must not be blank")
	}
	stack := newStack(scope, p.Base)
	for _, ps := range p.PermissionSets {
		props := &awssso.CfnPermissionSetProps{
			InstanceArn: jsii.String(p.InstanceArn),
			Name:        jsii.String(ps.Name),
		}
		if ps.SessionDuration != "" {
			props.SessionDuration = jsii.String(ps.SessionDuration)
		}
		if len(ps.ManagedPolicies) > 0 {
			props.ManagedPolicies = jsii.Strings(ps.ManagedPolicies...)
		}
		awssso.NewCfnPermissionSet(stack, jsii.String("PermissionSet-"+ps.Name), props)
	}
	return &Identity{Stack: Stack{Cdk: stack}}, nil
}
