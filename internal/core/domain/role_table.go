package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RoleTable maps the numeric userType selector from a registration request to
// a store-resident role name. The mapping is deployment configuration, not a
// hardcoded rule: some deployments run the full four-role set, others collapse
// everything into a single role.
type RoleTable map[int]string

// DefaultRoleTable returns the standard four-role mapping.
func DefaultRoleTable() RoleTable {
	return RoleTable{
		1: RoleCustomer,
		2: RoleDriver,
		3: RoleStore,
		4: RoleAdmin,
	}
}

// Resolve maps a selector to its role name. ok is false for selectors the
// table does not know.
func (t RoleTable) Resolve(selector int) (role string, ok bool) {
	role, ok = t[selector]
	return role, ok && role != ""
}

// ParseRoleTable parses a "selector=role" comma-separated list, e.g.
// "1=customer,2=driver,3=store,4=admin". An empty input yields an empty table.
func ParseRoleTable(s string) (RoleTable, error) {
	t := make(RoleTable)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("role table: entry %q is not selector=role", pair)
		}
		selector, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("role table: selector %q is not an integer", k)
		}
		role := strings.TrimSpace(v)
		if role == "" {
			return nil, fmt.Errorf("role table: empty role for selector %d", selector)
		}
		t[selector] = role
	}
	return t, nil
}
