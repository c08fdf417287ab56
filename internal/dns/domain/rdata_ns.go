package domain

// NS is the RDATA of an NS record: the domain name of an authoritative
// name server for the owner name.
type NS struct {
	Target string
}

// Type implements RData.
func (NS) Type() RRType { return RRTypeNS }
