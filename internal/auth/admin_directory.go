package auth

import "strings"

// AdminDirectory answers whether an email is authorized as an
// administrator. The allow-list is parsed once at construction and never
// reloaded; changing it requires a process restart. The directory is
// immutable and safe to share across concurrent request handlers.
type AdminDirectory struct {
	emails map[string]struct{}
}

// NewAdminDirectory parses a comma-separated email list. Entries are
// trimmed and lowercased; empty entries are ignored.
func NewAdminDirectory(allowList string) *AdminDirectory {
	emails := make(map[string]struct{})
	for _, entry := range strings.Split(allowList, ",") {
		email := strings.ToLower(strings.TrimSpace(entry))
		if email == "" {
			continue
		}
		emails[email] = struct{}{}
	}
	return &AdminDirectory{emails: emails}
}

// IsAdmin performs a case-insensitive membership test.
func (d *AdminDirectory) IsAdmin(email string) bool {
	_, ok := d.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Size reports how many distinct emails the allow-list holds.
func (d *AdminDirectory) Size() int {
	return len(d.emails)
}
