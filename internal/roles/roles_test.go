package roles

import "testing"

func TestParse(t *testing.T) {
	for _, s := range []string{"AFFILIATE", "ANALYST", "ADMIN"} {
		r, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", s, err)
		}
		if r.String() != s {
			t.Fatalf("Parse(%q) = %q", s, r)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, s := range []string{"", "affiliate", "ROLE_ADMIN", "SUPERUSER"} {
		if _, err := Parse(s); err == nil {
			t.Fatalf("Parse(%q) should fail", s)
		}
	}
}

func TestPrivileged(t *testing.T) {
	if Affiliate.Privileged() {
		t.Fatal("AFFILIATE must not be privileged")
	}
	if !Analyst.Privileged() || !Admin.Privileged() {
		t.Fatal("ANALYST and ADMIN must be privileged")
	}
}
