package models

import "testing"

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "VALID", "EXPIRED", "CANCELLED"} {
		if !IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "valid", "DONE", "Pending"} {
		if IsValidStatus(s) {
			t.Errorf("IsValidStatus(%q) = true, want false", s)
		}
	}
}

func TestUserHasRole(t *testing.T) {
	u := &User{Roles: []*Role{{Name: "guard"}, {Name: "accountant"}}}
	if !u.HasRole("guard") {
		t.Error("expected guard role")
	}
	if u.HasRole("admin") {
		t.Error("did not expect admin role")
	}
}

func TestStudentFullName(t *testing.T) {
	s := &Student{FirstName: "Aminata", LastName: "Diallo"}
	if got := s.FullName(); got != "Aminata Diallo" {
		t.Errorf("FullName() = %q", got)
	}
}
