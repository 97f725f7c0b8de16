package api

import "strings"

// normalizeName resolves a table name to its stored spelling. Exact match
// first, then a case-insensitive match when it is unambiguous. Caller
// holds at least a read lock.
func (s *Storage) normalizeName(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if _, ok := s.Tables[name]; ok {
		return name, true
	}

	nl := strings.ToLower(name)
	var found string
	for stored := range s.Tables {
		if strings.ToLower(stored) == nl {
			if found != "" {
				// ambiguous
				return "", false
			}
			found = stored
		}
	}
	if found != "" {
		return found, true
	}
	return "", false
}
