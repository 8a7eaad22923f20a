package models

// Role is the account tier stored on a user.
type Role string

const (
	RoleFoodie Role = "Foodie"
	RoleChef   Role = "Chef"
	RoleAdmin  Role = "Admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFoodie, RoleChef, RoleAdmin:
		return true
	}
	return false
}

// Capability is a single permission granted by a role.
type Capability uint8

const (
	// CapPublish allows creating recipes.
	CapPublish Capability = 1 << iota
	// CapModerate allows acting on content owned by others and the admin surface.
	CapModerate
)

// Capabilities is the closed set of permissions resolved for a request.
type Capabilities uint8

// Has reports whether every capability in want is present.
func (c Capabilities) Has(want Capability) bool {
	return Capability(c)&want == want
}

// Capabilities resolves the permission set for the role. Unknown roles get nothing.
func (r Role) Capabilities() Capabilities {
	switch r {
	case RoleAdmin:
		return Capabilities(CapPublish | CapModerate)
	case RoleChef:
		return Capabilities(CapPublish)
	default:
		return 0
	}
}

// CanActOn reports whether a caller may mutate a resource owned by ownerID.
func (c Capabilities) CanActOn(callerID, ownerID uint) bool {
	return callerID == ownerID || c.Has(CapModerate)
}
