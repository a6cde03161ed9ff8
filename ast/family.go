package ast

import "strings"

// Family selects which grammar and transform rules apply to a field.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyNumber
	FamilyDate
	FamilyLocation
	FamilyString
)

func (f Family) String() string {
	switch f {
	case FamilyNumber:
		return "NUMBER"
	case FamilyDate:
		return "DATE"
	case FamilyLocation:
		return "LOCATION"
	case FamilyString:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// ParseFamily maps a configuration string to a Family. Unrecognized
// strings map to FamilyUnknown, which the facade routes to the
// free-text fallback.
func ParseFamily(s string) Family {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "number", "numeric", "int", "float":
		return FamilyNumber
	case "date", "time", "datetime":
		return FamilyDate
	case "location", "geo", "point":
		return FamilyLocation
	case "string", "text":
		return FamilyString
	default:
		return FamilyUnknown
	}
}
