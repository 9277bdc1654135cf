package auth

import "testing"

func TestAdminDirectoryMembership(t *testing.T) {
	directory := NewAdminDirectory("owner@example.com, second@example.com")

	if !directory.IsAdmin("owner@example.com") {
		t.Fatalf("expected listed email to be admin")
	}
	if !directory.IsAdmin("second@example.com") {
		t.Fatalf("expected listed email to be admin")
	}
	if directory.IsAdmin("stranger@example.com") {
		t.Fatalf("expected unlisted email to be rejected")
	}
}

func TestAdminDirectoryIsCaseInsensitive(t *testing.T) {
	directory := NewAdminDirectory("Owner@Example.COM")

	if !directory.IsAdmin("owner@example.com") {
		t.Fatalf("expected lowercase lookup to match")
	}
	if !directory.IsAdmin("OWNER@EXAMPLE.COM") {
		t.Fatalf("expected uppercase lookup to match")
	}
}

func TestAdminDirectoryIgnoresEmptyEntries(t *testing.T) {
	directory := NewAdminDirectory(" , owner@example.com ,, ")

	if directory.Size() != 1 {
		t.Fatalf("expected single entry, got %d", directory.Size())
	}
	if directory.IsAdmin("") {
		t.Fatalf("expected empty email to be rejected")
	}
}

func TestPrincipalRoles(t *testing.T) {
	admin := NewPrincipal("owner@example.com", "Owner", true)
	if !admin.HasRole(RoleUser) || !admin.HasRole(RoleAdmin) {
		t.Fatalf("expected admin principal to hold USER and ADMIN, got %v", admin.Roles)
	}

	visitor := NewPrincipal("visitor@example.com", "Visitor", false)
	if !visitor.HasRole(RoleUser) {
		t.Fatalf("expected visitor principal to hold USER")
	}
	if visitor.HasRole(RoleAdmin) {
		t.Fatalf("expected visitor principal to lack ADMIN")
	}
}
