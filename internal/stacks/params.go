package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/jsii-runtime-go"
)

// publishParam writes one attribute to the external parameter store as part
// of the producing stack's deployment. The path is the cross-boundary
// contract; consumers rebuild it from the same naming inputs out of band,
// since an in-stack lookup cannot cross the account boundary.
func publishParam(stack awscdk.Stack, id, path string, value *string) awsssm.StringParameter {
	return awsssm.NewStringParameter(stack, jsii.String(id), &awsssm.StringParameterProps{
		ParameterName: jsii.String(path),
		StringValue:   value,
	})
}
