package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const homeDirectoryShortcutConstant = "~"

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander replaces a leading home shortcut with the resolved home directory.
type HomeExpander struct {
	provider    HomeDirectoryProvider
	resolveOnce sync.Once
	resolved    string
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(nil)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provider: provider}
}

// Expand returns candidatePath with "~" or "~/" replaced by the home directory.
// Paths such as "~other" are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, homeDirectoryShortcutConstant) {
		return candidatePath
	}

	remainder := strings.TrimPrefix(candidatePath, homeDirectoryShortcutConstant)
	if len(remainder) > 0 && remainder[0] != '/' && remainder[0] != os.PathSeparator {
		return candidatePath
	}

	homeDirectory := expander.homeDirectory()
	if len(homeDirectory) == 0 {
		return candidatePath
	}
	return filepath.Join(homeDirectory, remainder)
}

func (expander *HomeExpander) homeDirectory() string {
	expander.resolveOnce.Do(func() {
		homeDirectory, providerError := expander.provider()
		if providerError == nil {
			expander.resolved = homeDirectory
		}
	})
	return expander.resolved
}
