// Package stacks holds the thin construct-library invocations, one file per
// deployable-unit family. Each builder takes the explicit naming context and
// a closed, validated props struct, creates its constructs, and returns a
// handle exposing the attributes downstream builders consume. The behavior
// of the constructs themselves belongs to the provisioning library and is
// not this package's concern.
package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/naming"
)

// Base carries the identity every builder call needs: the naming context the
// unit was resolved under, its logical name, fingerprint, and tagging inputs.
type Base struct {
	Ctx         naming.Context
	Name        string
	Component   string
	Fingerprint string
	Owner       string
	Revision    string
}

// TagFingerprint labels drift detection between planned and deployed units.
const TagFingerprint = "stackforge.fingerprint"

// Stack is embedded by every builder handle so the orchestrator can reach
// the underlying construct uniformly, for dependency edges in particular.
type Stack struct {
	Cdk awscdk.Stack
}

// newStack creates the unit's stack bound to the context's account/region
// and applies the standard tag set.
func newStack(scope constructs.Construct, b Base) awscdk.Stack {
	stack := awscdk.NewStack(scope, jsii.String(b.Name), &awscdk.StackProps{
		StackName: jsii.String(b.Name),
		Env: &awscdk.Environment{
			Account: jsii.String(b.Ctx.AccountID),
			Region:  jsii.String(b.Ctx.Region),
		},
	})
	for k, v := range b.Ctx.StandardTags(b.Component, b.Owner, b.Revision) {
		awscdk.Tags_Of(stack).Add(jsii.String(k), jsii.String(v), nil)
	}
	if b.Fingerprint != "" {
		awscdk.Tags_Of(stack).Add(jsii.String(TagFingerprint), jsii.String(b.Fingerprint), nil)
	}
	return stack
}
