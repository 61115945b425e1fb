package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsorganizations"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// OrgProps configures the organization component. When RootID is empty the
// organization itself is created and OUs hang off its root attribute;
// otherwise OUs attach to the existing root.
type OrgProps struct {
	Base
	RootID     string
	FeatureSet string
	Units      []string
}

type Org struct {
	Stack
	OUs map[string]awsorganizations.CfnOrganizationalUnit
}

func BuildOrg(scope constructs.Construct, p OrgProps) (*Org, error) {
	if p.FeatureSet == "" {
		p.FeatureSet = "ALL"
	}
	stack := newStack(scope, p.Base)

	parentID := jsii.String(p.RootID)
	var org awsorganizations.CfnOrganization
	if p.RootID == "" {
		org = awsorganizations.NewCfnOrganization(stack, jsii.String("Organization"), &awsorganizations.CfnOrganizationProps{
			FeatureSet: jsii.String(p.FeatureSet),
		})
		parentID = org.AttrRootId()
	}

	ous := make(map[string]awsorganizations.CfnOrganizationalUnit, len(p.Units))
	for _, unit := range p.Units {
		ou := awsorganizations.NewCfnOrganizationalUnit(stack, jsii.String("Ou-"+unit), &awsorganizations.CfnOrganizationalUnitProps{
			Name:     jsii.String(unit),
			ParentId: parentID,
		})
		if org != nil {
			ou.AddDependency(org)
		}
		ous[unit] = ou
	}
	return &Org{Stack: Stack{Cdk: stack}, OUs: ous}, nil
}
