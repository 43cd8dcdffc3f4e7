package domain

import (
	"fmt"
	"strings"
)

// ListKind identifies one of the four published lists.
type ListKind uint8

const (
	KindDomain ListKind = iota
	KindPackage
	KindObject
	KindCoin
)

// AllKinds lists every ListKind in a stable order.
var AllKinds = []ListKind{KindDomain, KindPackage, KindObject, KindCoin}

// String returns a stable name, also used as the persistence bucket name.
func (k ListKind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	case KindPackage:
		return "package"
	case KindObject:
		return "object"
	case KindCoin:
		return "coin"
	default:
		return fmt.Sprintf("ListKind(%d)", k)
	}
}

// ParseListKind converts a kind name (case-insensitive) into a ListKind.
func ParseListKind(s string) (ListKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "domain":
		return KindDomain, nil
	case "package":
		return KindPackage, nil
	case "object":
		return KindObject, nil
	case "coin":
		return KindCoin, nil
	default:
		return 0, fmt.Errorf("unsupported ListKind: %q", s)
	}
}
