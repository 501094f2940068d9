package domain

import "testing"

func TestEmergencyNumberFor(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"US", "911"},
		{"IN", "112"},
		{"GB", "999"},
		{"AU", "000"},
		{"CA", "911"},
		{"EU", "112"},
		{"gb", "999"},
		{" in ", "112"},
		{"FR", DefaultEmergencyNumber},
		{"", DefaultEmergencyNumber},
		{"ZZZ", DefaultEmergencyNumber},
	}

	for _, tc := range cases {
		if got := EmergencyNumberFor(tc.code); got != tc.want {
			t.Errorf("EmergencyNumberFor(%q) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestKnownCountry(t *testing.T) {
	if !KnownCountry("au") {
		t.Fatalf("expected AU to be known")
	}
	if KnownCountry("BR") {
		t.Fatalf("expected BR to be unknown")
	}
}

func TestDialURI(t *testing.T) {
	if got := DialURI("112"); got != "tel:112" {
		t.Fatalf("DialURI = %q, want tel:112", got)
	}
}
