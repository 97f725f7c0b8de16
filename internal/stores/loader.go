package stores

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadCatalog reads every store description from the yaml files in dir.
// A missing directory is an empty catalog, not an error: most deployments
// have no external stores at all.
func LoadCatalog(dir string) (Catalog, error) {
	result := make(Catalog)

	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, err
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(file.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}
		var st Store
		if err := yaml.Unmarshal(data, &st); err != nil {
			return nil, err
		}
		// Store name falls back to the file name.
		if st.Name == "" {
			st.Name = strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		}
		result[st.Name] = st
	}

	return result, nil
}
