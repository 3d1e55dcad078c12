// Package taxonomy implements the HFACS category registry for Talon.
// The registry is loaded once at startup, validated, and treated as
// immutable shared state for the rest of the process lifetime.
package taxonomy

import "encoding/json"

// Level identifies one of the four HFACS hierarchy tiers.
type Level int

// HFACS hierarchy levels, ordered from proximate to systemic causes.
const (
	LevelUnsafeActs     Level = 1
	LevelPreconditions  Level = 2
	LevelSupervision    Level = 3
	LevelOrganizational Level = 4
)

// Levels lists the hierarchy tiers in ascending order.
func Levels() []Level {
	return []Level{
		LevelUnsafeActs,
		LevelPreconditions,
		LevelSupervision,
		LevelOrganizational,
	}
}

// Valid reports whether the level is within the HFACS hierarchy.
func (l Level) Valid() bool {
	return l >= LevelUnsafeActs && l <= LevelOrganizational
}

func (l Level) String() string {
	switch l {
	case LevelUnsafeActs:
		return "Unsafe Acts"
	case LevelPreconditions:
		return "Preconditions"
	case LevelSupervision:
		return "Supervision/Leadership"
	case LevelOrganizational:
		return "Organizational Influences"
	default:
		return "Unknown"
	}
}

// MarshalJSON renders the level as its numeric tier.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(l))
}

// Category is one leaf of the HFACS taxonomy.
type Category struct {
	Code  string `json:"code" toml:"code"`
	Name  string `json:"name" toml:"name"`
	Level Level  `json:"level" toml:"level"`
	Group string `json:"group,omitempty" toml:"group"`
}

// Exclusion declares two categories as logically exclusive: both marked
// present in the same case is flagged by the consistency layer.
type Exclusion struct {
	First  string `json:"first" toml:"first"`
	Second string `json:"second" toml:"second"`
}
