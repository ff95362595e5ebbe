package identity

import "testing"

func TestParse(t *testing.T) {
	for _, s := range []string{"Admin", "Client", "Stylist"} {
		role, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", s, err)
		}
		if string(role) != s {
			t.Errorf("Parse(%q) = %q", s, role)
		}
	}

	for _, s := range []string{"", "admin", "Owner", "client "} {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q) should fail", s)
		}
	}
}
