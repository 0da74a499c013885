package domain

import "testing"

func TestIsValidRole(t *testing.T) {
	valid := []string{"user", "admin"}
	for _, r := range valid {
		if !IsValidRole(r) {
			t.Fatalf("expected %q to be valid", r)
		}
	}

	invalid := []string{"", "User", "ADMIN", "superuser", "root", " user"}
	for _, r := range invalid {
		if IsValidRole(r) {
			t.Fatalf("expected %q to be invalid", r)
		}
	}
}
