package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidInviteCode = errors.New("invalid invite code")
var ErrInviteCodeUsed = errors.New("invite code already used")
var ErrInviteNotFound = errors.New("invite code not found")

// InviteStatus is the derived display state of an invite code.
type InviteStatus string

const (
	InviteActive  InviteStatus = "active"
	InviteUsed    InviteStatus = "used"
	InviteExpired InviteStatus = "expired"
)

// InviteCode is a single-use authorization token gating DEVELOPER and ADMIN
// signups. A code transitions unused→used exactly once, at the moment a
// signup is committed. Verification never reserves a code: two signups can
// both see a code as valid and only the first consumption wins.
type InviteCode struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Role      string     `json:"role"`
	Used      bool       `json:"used"`
	UsedBy    string     `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at"` // nil = never expires
	CreatedBy string     `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NormalizeInviteCode upper-cases and trims a user-entered code. Codes are
// case-insensitive on input but stored and compared uppercase.
func NormalizeInviteCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ExpiredAt reports whether the code is past its expiry at the given instant.
// Codes with no expiry never expire.
func (ic *InviteCode) ExpiredAt(now time.Time) bool {
	return ic.ExpiresAt != nil && now.After(*ic.ExpiresAt)
}

// Status derives the display state. Used wins over expired: a consumed code
// is reported as used regardless of its expiry.
func (ic *InviteCode) Status(now time.Time) InviteStatus {
	if ic.Used {
		return InviteUsed
	}
	if ic.ExpiredAt(now) {
		return InviteExpired
	}
	return InviteActive
}

// UsableFor reports whether the code can authorize a new signup for role at
// the given instant. Expired-but-unused codes remain listable yet are invalid
// for signup.
func (ic *InviteCode) UsableFor(role string, now time.Time) bool {
	return !ic.Used && !ic.ExpiredAt(now) && ic.Role == role
}
