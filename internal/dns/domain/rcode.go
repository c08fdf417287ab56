package domain

import "fmt"

// RCode represents the 4-bit DNS response code carried in the header.
// Only six codes are distinguished by name; every other value in the
// 4-bit range (6-15) is reported as Unknown.
type RCode uint8

// DNS response codes.
const (
	RCodeNoError        RCode = 0 // NoError - no error condition
	RCodeFormatError    RCode = 1 // FormatError - the name server could not interpret the query
	RCodeServerFailure  RCode = 2 // ServerFailure - the name server had an internal failure
	RCodeNameError      RCode = 3 // NameError - the queried domain name does not exist
	RCodeNotImplemented RCode = 4 // NotImplemented - the requested kind of query is not supported
	RCodeRefused        RCode = 5 // Refused - the name server refused the query for policy reasons
)

// IsValid reports whether r fits in the 4-bit RCode wire field.
func (r RCode) IsValid() bool {
	return r <= 15
}

// String returns the textual representation of the RCode. Values outside
// the six named codes are reported as "UNKNOWN(<value>)".
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormatError:
		return "FORMERR"
	case RCodeServerFailure:
		return "SERVFAIL"
	case RCodeNameError:
		return "NXDOMAIN"
	case RCodeNotImplemented:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(r))
	}
}

// ParseRCode converts a string name to an RCode value. Unrecognized names
// return RCodeNoError, mirroring the zero value of the type.
func ParseRCode(s string) RCode {
	switch s {
	case "NOERROR":
		return RCodeNoError
	case "FORMERR":
		return RCodeFormatError
	case "SERVFAIL":
		return RCodeServerFailure
	case "NXDOMAIN":
		return RCodeNameError
	case "NOTIMP":
		return RCodeNotImplemented
	case "REFUSED":
		return RCodeRefused
	default:
		return RCodeNoError
	}
}
