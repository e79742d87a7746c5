package domain

import (
	"testing"
	"time"
)

func TestNormalizeInviteCode(t *testing.T) {
	if got := NormalizeInviteCode("  hv-00ab12cd "); got != "HV-00AB12CD" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
}

func TestInviteCode_Status(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name   string
		invite InviteCode
		want   InviteStatus
	}{
		{"unused unexpired", InviteCode{ExpiresAt: &future}, InviteActive},
		{"unused no expiry", InviteCode{}, InviteActive},
		{"expired unused", InviteCode{ExpiresAt: &past}, InviteExpired},
		{"used wins over expired", InviteCode{Used: true, ExpiresAt: &past}, InviteUsed},
		{"used unexpired", InviteCode{Used: true, ExpiresAt: &future}, InviteUsed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.invite.Status(now); got != tc.want {
				t.Fatalf("status = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInviteCode_UsableFor(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	valid := InviteCode{Code: "HV-00000001", Role: RoleDeveloper}
	if !valid.UsableFor(RoleDeveloper, now) {
		t.Fatalf("expected unused developer code to be usable")
	}
	if valid.UsableFor(RoleAdmin, now) {
		t.Fatalf("code for DEVELOPER must not authorize ADMIN")
	}

	used := InviteCode{Code: "HV-00000002", Role: RoleDeveloper, Used: true}
	if used.UsableFor(RoleDeveloper, now) {
		t.Fatalf("used code must not be usable")
	}

	expired := InviteCode{Code: "HV-00000003", Role: RoleDeveloper, ExpiresAt: &past}
	if expired.UsableFor(RoleDeveloper, now) {
		t.Fatalf("expired code must not be usable")
	}
}
