package dsl

// Tier is a table's behavioral category: how it is populated, not what its
// schema looks like. Tiers carry no behavior of their own here, only a name
// and a per-dialect wrapper fragment, so a plain enumeration plus a lookup
// table replaces the original class hierarchy.
type Tier string

const (
	Manual   Tier = "Manual"
	Lookup   Tier = "Lookup"
	Imported Tier = "Imported"
	Computed Tier = "Computed"
	Part     Tier = "Part"
)

const tierFormat = "Manual | Lookup | Imported | Computed | Part"

// baseClass maps a tier to the base-type token both declaration dialects
// reference in their class header.
var baseClass = map[Tier]string{
	Manual:   "dj.Manual",
	Lookup:   "dj.Lookup",
	Imported: "dj.Imported",
	Computed: "dj.Computed",
	Part:     "dj.Part",
}

// ParseTier maps a tier name to its Tier. The empty string defaults to
// Manual; anything else outside the five recognized names is an error.
func ParseTier(name string) (Tier, error) {
	if name == "" {
		return Manual, nil
	}
	t := Tier(name)
	if _, ok := baseClass[t]; !ok {
		return "", parseErr(UnknownTier, tierFormat, name)
	}
	return t, nil
}

// BaseClass returns the dialect base-type token for the tier.
func (t Tier) BaseClass() string { return baseClass[t] }
