package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/plattolabs/stackforge/internal/errs"
)

// CnameEntry aliases one hostname to a target that was resolved from a
// published parameter path, typically a distribution domain or a
// load-balancer address from another account.
type CnameEntry struct {
	ID       string
	Hostname string
	Target   string
}

// RecordsProps configures the unit that writes all public records into the
// root zone. It runs in the zone-owning account, never in an environment
// account.
type RecordsProps struct {
	Base
	ZoneID   string
	ZoneName string
	Entries  []CnameEntry
}

type Records struct {
	Stack
	Zone awsroute53.IHostedZone
}

func BuildRecords(scope constructs.Construct, p RecordsProps) (*Records, error) {
	if len(p.Entries) == 0 {
		return nil, errs.NewConfiguration("records.entries", "at least one entry is required")
	}
	if p.ZoneID == "" || p.ZoneName == "" {
		return nil, errs.NewConfiguration("records.zone", "zone-id and zone-name must be resolved")
	}
	stack := newStack(scope, p.Base)
	zone := awsroute53.HostedZone_FromHostedZoneAttributes(stack, jsii.String("Zone"), &awsroute53.HostedZoneAttributes{
		HostedZoneId: jsii.String(p.ZoneID),
		ZoneName:     jsii.String(p.ZoneName),
	})
	for _, e := range p.Entries {
		awsroute53.NewCnameRecord(stack, jsii.String("Record-"+e.ID), &awsroute53.CnameRecordProps{
			Zone:       zone,
			RecordName: jsii.String(e.Hostname),
			DomainName: jsii.String(e.Target),
		})
	}
	return &Records{Stack: Stack{Cdk: stack}, Zone: zone}, nil
}
