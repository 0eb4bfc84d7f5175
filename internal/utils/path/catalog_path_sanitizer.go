package pathutils

import (
	"path/filepath"
	"strings"
)

// CatalogPathSanitizer normalizes the action catalog paths gathered from flags and configuration.
type CatalogPathSanitizer struct {
	homeExpander *HomeExpander
}

// NewCatalogPathSanitizer constructs a CatalogPathSanitizer using the operating system home lookup.
func NewCatalogPathSanitizer() *CatalogPathSanitizer {
	return NewCatalogPathSanitizerWithExpander(nil)
}

// NewCatalogPathSanitizerWithExpander constructs a CatalogPathSanitizer using the provided expander.
func NewCatalogPathSanitizerWithExpander(homeExpander *HomeExpander) *CatalogPathSanitizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &CatalogPathSanitizer{homeExpander: homeExpander}
}

// Sanitize trims, expands, and cleans every candidate, dropping blanks and
// duplicates while keeping the first occurrence order.
func (sanitizer *CatalogPathSanitizer) Sanitize(candidatePaths ...[]string) []string {
	expander := NewHomeExpander()
	if sanitizer != nil && sanitizer.homeExpander != nil {
		expander = sanitizer.homeExpander
	}

	seenPaths := make(map[string]struct{})
	sanitizedPaths := make([]string, 0)
	for _, candidateGroup := range candidatePaths {
		for _, candidatePath := range candidateGroup {
			trimmedPath := strings.TrimSpace(candidatePath)
			if len(trimmedPath) == 0 {
				continue
			}

			cleanedPath := filepath.Clean(expander.Expand(trimmedPath))
			if _, seen := seenPaths[cleanedPath]; seen {
				continue
			}
			seenPaths[cleanedPath] = struct{}{}
			sanitizedPaths = append(sanitizedPaths, cleanedPath)
		}
	}
	return sanitizedPaths
}
