package model

// Profile identifies a Factur-X conformance level. Each level is a strict
// superset of the previous one: Minimum ⊂ BasicWL ⊂ Basic ⊂ EN16931.
type Profile int

const (
	ProfileMinimum Profile = iota
	ProfileBasicWL
	ProfileBasic
	ProfileEN16931
)

var profileNames = map[Profile]string{
	ProfileMinimum: "MINIMUM",
	ProfileBasicWL: "BASIC WL",
	ProfileBasic:   "BASIC",
	ProfileEN16931: "EN 16931/COMFORT",
}

func (p Profile) String() string {
	if name, ok := profileNames[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// AtLeast reports whether p includes all requirements of o.
func (p Profile) AtLeast(o Profile) bool {
	return p >= o
}
