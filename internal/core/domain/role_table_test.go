package domain

import "testing"

func TestDefaultRoleTable(t *testing.T) {
	table := DefaultRoleTable()

	want := map[int]string{1: RoleCustomer, 2: RoleDriver, 3: RoleStore, 4: RoleAdmin}
	for selector, role := range want {
		got, ok := table.Resolve(selector)
		if !ok || got != role {
			t.Errorf("Resolve(%d) = %q, %v; want %q", selector, got, ok, role)
		}
	}

	for _, selector := range []int{0, 5, -1} {
		if _, ok := table.Resolve(selector); ok {
			t.Errorf("Resolve(%d) should not resolve", selector)
		}
	}
}

func TestParseRoleTable(t *testing.T) {
	table, err := ParseRoleTable("1=customer, 2=driver ,3=store,4=admin")
	if err != nil {
		t.Fatalf("ParseRoleTable: %v", err)
	}
	if len(table) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(table))
	}
	if role, ok := table.Resolve(2); !ok || role != "driver" {
		t.Fatalf("Resolve(2) = %q, %v", role, ok)
	}
}

func TestParseRoleTable_SingleRoleVariant(t *testing.T) {
	table, err := ParseRoleTable("1=user")
	if err != nil {
		t.Fatalf("ParseRoleTable: %v", err)
	}
	if role, ok := table.Resolve(1); !ok || role != "user" {
		t.Fatalf("Resolve(1) = %q, %v", role, ok)
	}
	if _, ok := table.Resolve(2); ok {
		t.Fatalf("selector 2 must not resolve in the single-role table")
	}
}

func TestParseRoleTable_Malformed(t *testing.T) {
	for _, input := range []string{"customer", "x=admin", "1="} {
		if _, err := ParseRoleTable(input); err == nil {
			t.Errorf("ParseRoleTable(%q) should fail", input)
		}
	}
}
