package domain

// Tab is a top-level view of the workshop.
type Tab int

const (
	TabChat Tab = iota
	TabRecipes
)

// String returns a human-readable tab name.
func (t Tab) String() string {
	switch t {
	case TabChat:
		return "chat"
	case TabRecipes:
		return "recipes"
	default:
		return "unknown"
	}
}

// NavState is the ephemeral navigation state. Every combination of fields
// is legal except VideoLoaded without AboutOpen, which the navigator never
// produces.
type NavState struct {
	ActiveTab   Tab
	AboutOpen   bool
	VideoLoaded bool
}
