package engine

import (
	"fmt"
	"strings"
)

// QueryKind names one of the four lookups
type QueryKind string

const (
	KindDate    QueryKind = "date"
	KindUHF     QueryKind = "uhf"
	KindBorough QueryKind = "borough"
	KindZip     QueryKind = "zip"
)

// Kinds lists every query kind in menu order
var Kinds = []QueryKind{KindZip, KindUHF, KindBorough, KindDate}

func (k QueryKind) String() string {
	return string(k)
}

// ParseQueryKind accepts a kind name, case-insensitively
func ParseQueryKind(s string) (QueryKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date":
		return KindDate, nil
	case "uhf":
		return KindUHF, nil
	case "borough":
		return KindBorough, nil
	case "zip", "zipcode":
		return KindZip, nil
	default:
		return "", fmt.Errorf("unknown query kind %q", s)
	}
}
