package stores

// Store describes one external object store that filepath@<name> types
// point at. The grammar only needs the name; the rest is deployment
// metadata surfaced through the API.
type Store struct {
	Name     string `yaml:"name"`
	Protocol string `yaml:"protocol"` // "file" | "s3"
	Location string `yaml:"location"`
	StageDir string `yaml:"stage_dir,omitempty"`
}

// Catalog is the set of configured stores keyed by name.
type Catalog map[string]Store

// Has reports whether a store with the given name is configured.
func (c Catalog) Has(name string) bool {
	_, ok := c[name]
	return ok
}
