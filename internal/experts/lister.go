package experts

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Lister enumerates experts under a base directory according to a fixed
// match rule. It holds no mutable state, so a single Lister is safe for
// concurrent use; every call re-reads the filesystem.
type Lister struct {
	rule MatchRule
}

// NewLister creates a lister applying the given match rule.
func NewLister(rule MatchRule) *Lister {
	return &Lister{rule: rule}
}

// Rule returns the match rule this lister applies.
func (l *Lister) Rule() MatchRule {
	return l.rule
}

// List enumerates the experts under path. The result reflects the
// directory contents at the moment of the call and is sorted by name.
// Failures are *Error values carrying a Kind and the offending path.
func (l *Lister) List(path string) ([]Expert, error) {
	return l.list(path, false)
}

// ListDetailed is List plus optional metadata: registry fields for the
// registry rule, expert.md frontmatter for directory experts.
func (l *Lister) ListDetailed(path string) ([]Expert, error) {
	return l.list(path, true)
}

func (l *Lister) list(path string, detailed bool) ([]Expert, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, newError(KindInvalidArgument, "path must not be empty", path, nil)
	}

	base := expandPath(trimmed)
	info, err := os.Stat(base)
	if err != nil {
		return nil, classifyAccessError(base, err)
	}
	if !info.IsDir() {
		return nil, newError(KindNotADirectory, "not a directory", base, nil)
	}

	if l.rule.kind == matchRegistry {
		return listRegistry(base, detailed)
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, classifyAccessError(base, err)
	}

	result := []Expert{}
	for _, entry := range entries {
		if !l.rule.matches(entry) {
			continue
		}
		expert := Expert{
			Name:   l.rule.identifier(entry.Name()),
			Source: SourceFile,
		}
		if entry.IsDir() {
			expert.Source = SourceDirectory
			if detailed {
				applyDirMetadata(&expert, filepath.Join(base, entry.Name()))
			}
		}
		result = append(result, expert)
	}

	slices.SortFunc(result, func(a, b Expert) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

// expandPath expands a leading "~/" to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
