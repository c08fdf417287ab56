package domain

// SOA is the RDATA of an SOA record, marking the start of a zone of
// authority.
type SOA struct {
	MName   string
	RName   string
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// Type implements RData.
func (SOA) Type() RRType { return RRTypeSOA }
