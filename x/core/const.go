package core

// Role is the account role tag. The single-letter values are what the
// users table has always stored.
type Role string

const (
	RoleMaster  Role = "M"
	RoleTrainer Role = "T"
)

// Placement is the party/box state of a pokemon.
type Placement string

const (
	PlacementParty Placement = "U"
	PlacementBox   Placement = "D"
)

const (
	RequesterIdCtxKey   = "pc-requesterId"
	RequesterRoleCtxKey = "pc-requesterRole"
)

// PartyLimit is the maximum number of pokemons a trainer may keep in
// the active party at once.
const PartyLimit = 6
