// Package linkage decides, for every producer→consumer relationship, whether
// a direct in-process handle can be passed or whether the edge must be
// materialized as a publish/lookup pair over the external parameter store.
// The parameter path is the contract: producer and consumer must derive it
// from the same naming inputs, or the consumer fails at lookup time with a
// not-found; there is no compile-time protection across independent runs.
package linkage

import (
	"github.com/plattolabs/stackforge/internal/topology"
)

// Mode classifies one producer→consumer edge.
type Mode int

const (
	// Direct passes the producer's in-memory handle into the consumer's
	// builder call. Only valid within one orchestration pass, one account,
	// one region.
	Direct Mode = iota
	// Indirect resolves through a published parameter path. Required for
	// cross-account, cross-region, or cross-run consumption.
	Indirect
)

func (m Mode) String() string {
	if m == Direct {
		return "direct"
	}
	return "indirect"
}

// Classify returns the linkage mode for an edge between two targets.
// samePass is false when the consumer synthesizes in a separate run.
func Classify(producer, consumer topology.EnvTarget, samePass bool) Mode {
	if samePass && producer.AccountID == consumer.AccountID && producer.Region == consumer.Region {
		return Direct
	}
	return Indirect
}

// Path namespace/service/attribute vocabulary. Builders publish under these
// and consumers look the identical segments up; both sides import these
// constants rather than spelling strings twice.
const (
	NamespacePlatform = "platform"

	ServiceDNS  = "dns"
	ServiceALB  = "alb"
	ServiceCert = "cert"
	ServiceCDN  = "cdn"

	AttrZoneID          = "zone-id"
	AttrZoneName        = "zone-name"
	AttrDNSName         = "dns-name"
	AttrCanonicalZoneID = "canonical-zone-id"
	AttrArn             = "arn"
	AttrDomain          = "domain"
	AttrDistributionID  = "distribution-id"
)
