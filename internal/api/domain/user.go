package domain

import "time"

const (
	RoleUser  = "user"
	RoleOwner = "owner"
)

// User is an account record. HashedPassword is a salted PBKDF2 digest in
// "<hex-salt>:<hex-digest>" form, never the plaintext secret.
type User struct {
	ID             int64
	Username       string
	Email          string
	HashedPassword string
	Role           string // "user" or "owner"
	IsActive       bool
	IsSuperuser    bool
	IsAdmin        bool
	ProfilePicture *string
	ThemePref      string
	DeletedAt      *time.Time // non-nil marks the record soft-deleted
	DeletedBy      *int64     // acting owner's id, audit only
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Deleted reports whether the record is soft-deleted.
func (u User) Deleted() bool { return u.DeletedAt != nil }

// DeletedUser is a soft-deleted record joined with the deleter's username.
// DeletedByUsername is empty when the deleter was itself hard-deleted since.
type DeletedUser struct {
	User

	DeletedByUsername string
}

// Permissions is the access set resolved once per request from the user's
// role and flags. Handlers consult this instead of re-checking booleans.
type Permissions struct {
	Owner     bool // account lifecycle management
	Admin     bool // data-management surface
	Superuser bool // carried for coarser checks, implies nothing extra here
}

// ResolvePermissions derives the permission set for a user. A user may hold
// role=owner with IsAdmin=false; the combination is permitted and each gate
// checks only its own bit.
func ResolvePermissions(u User) Permissions {
	return Permissions{
		Owner:     u.Role == RoleOwner,
		Admin:     u.IsAdmin,
		Superuser: u.IsSuperuser,
	}
}

// CanAccessUser reports whether a principal may read the given user record:
// their own, or any record when they hold the admin flag.
func (p Permissions) CanAccessUser(selfID, targetID int64) bool {
	return selfID == targetID || p.Admin
}
