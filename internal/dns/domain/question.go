package domain

import (
	"fmt"

	"github.com/nyxdns/recurdns/internal/dns/common/utils"
)

// Question represents a single entry of a DNS message's question section.
// The message-level transaction ID lives on Header, not here: a packet may
// (per the wire format) carry more than one question sharing that ID.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question for application use (e.g. the resolver
// building a query to send upstream) and validates its fields. The wire
// codec does not call Validate when decoding: RFC 1035 places no
// constraint on the type/class values a question may carry, so unknown
// values must decode cleanly and flow through as data.
func NewQuestion(name string, rrtype RRType, class RRClass) (Question, error) {
	q := Question{
		Name:  utils.CanonicalDNSName(name),
		Type:  rrtype,
		Class: class,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks whether the Question fields are suitable for a query this
// resolver will originate. It is never applied to a Question decoded off
// the wire.
func (q Question) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("query name must not be empty")
	}
	if !q.Type.IsValid() {
		return fmt.Errorf("unsupported RRType: %d", q.Type)
	}
	if !q.Class.IsValid() {
		return fmt.Errorf("unsupported RRClass: %d", q.Class)
	}
	return nil
}
