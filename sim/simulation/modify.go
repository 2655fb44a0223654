package simulation

import "fmt"

// ModifyPolicy decides how many cache probes a modify record issues.
type ModifyPolicy int

const (
	// ModifyAsSingleAccess probes the cache once per modify record.
	ModifyAsSingleAccess ModifyPolicy = iota

	// ModifyAsLoadStore probes the cache twice per modify record, once for
	// the load and once for the store.
	ModifyAsLoadStore
)

// ParseModifyPolicy converts "single" or "load-store" to a ModifyPolicy.
func ParseModifyPolicy(s string) (ModifyPolicy, error) {
	switch s {
	case "single":
		return ModifyAsSingleAccess, nil
	case "load-store":
		return ModifyAsLoadStore, nil
	default:
		return 0, fmt.Errorf(
			"unknown modify policy %q, want \"single\" or \"load-store\"", s)
	}
}

func (p ModifyPolicy) String() string {
	switch p {
	case ModifyAsSingleAccess:
		return "single"
	case ModifyAsLoadStore:
		return "load-store"
	default:
		return fmt.Sprintf("ModifyPolicy(%d)", int(p))
	}
}

func (p ModifyPolicy) probes() int {
	if p == ModifyAsLoadStore {
		return 2
	}

	return 1
}
