package domain

// CNAME is the RDATA of a CNAME record: the canonical name this owner
// name is an alias for.
type CNAME struct {
	Target string
}

// Type implements RData.
func (CNAME) Type() RRType { return RRTypeCNAME }
