// Package entity defines the core business entities for the domain layer.
package entity

// SystemOwnerID is the owner id stored for system-owned records. It is
// reserved and never accepted as a user id.
const SystemOwnerID = "system"

// IsReservedUserID reports whether id would be read back as the system owner.
func IsReservedUserID(id string) bool {
	return id == SystemOwnerID
}

// Owner identifies who owns a record: a specific user or the system.
// System-owned records are shared with every user and cannot be changed by them.
type Owner struct {
	userID string
	system bool
}

// UserOwner returns an Owner for the given user ID.
func UserOwner(userID string) Owner {
	return Owner{userID: userID}
}

// SystemOwner returns the Owner used for shared, system-provided records.
func SystemOwner() Owner {
	return Owner{system: true}
}

// IsSystem reports whether the record is system-owned.
func (o Owner) IsSystem() bool {
	return o.system
}

// UserID returns the owning user's ID, or "" for system-owned records.
func (o Owner) UserID() string {
	if o.system {
		return ""
	}
	return o.userID
}

// IsUser reports whether the record belongs to the given user.
func (o Owner) IsUser(userID string) bool {
	return !o.system && userID != "" && o.userID == userID
}

// String returns a printable form of the owner for logs.
func (o Owner) String() string {
	if o.system {
		return "system"
	}
	return "user:" + o.userID
}
