package experts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ruleKind identifies which matching convention a MatchRule applies.
type ruleKind int

const (
	matchDirs ruleKind = iota
	matchFiles
	matchRegistry
)

// MatchRule is the convention that decides which entries under the base
// path count as experts. The assistant does not document one, so the rule
// is configuration rather than a built-in assumption.
//
// Supported rules:
//
//	"dirs"        each immediate subdirectory is an expert (default)
//	"files:<ext>" each immediate regular file with the given extension is
//	              an expert, identified by its name without the extension
//	"registry"    experts are the entries of <base>/experts.json
//
// Hidden entries (names starting with '.') never match.
type MatchRule struct {
	kind ruleKind
	ext  string
}

// DefaultMatchRule matches immediate subdirectories.
func DefaultMatchRule() MatchRule {
	return MatchRule{kind: matchDirs}
}

// ParseMatchRule parses a rule string as accepted by the --match flag and
// the match_rule config key. The empty string selects the default rule.
func ParseMatchRule(s string) (MatchRule, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "dirs":
		return MatchRule{kind: matchDirs}, nil
	case s == "registry":
		return MatchRule{kind: matchRegistry}, nil
	case strings.HasPrefix(s, "files:"):
		ext := strings.TrimPrefix(s, "files:")
		if ext == "" || ext == "." {
			return MatchRule{}, fmt.Errorf("match rule %q is missing an extension", s)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return MatchRule{kind: matchFiles, ext: strings.ToLower(ext)}, nil
	default:
		return MatchRule{}, fmt.Errorf("unknown match rule %q (want \"dirs\", \"files:<ext>\" or \"registry\")", s)
	}
}

func (r MatchRule) String() string {
	switch r.kind {
	case matchFiles:
		return "files:" + r.ext
	case matchRegistry:
		return "registry"
	default:
		return "dirs"
	}
}

// matches reports whether a directory entry denotes an expert under this
// rule. Only meaningful for the dirs and files rules; the registry rule
// never inspects directory entries.
func (r MatchRule) matches(entry os.DirEntry) bool {
	name := entry.Name()
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch r.kind {
	case matchDirs:
		return entry.IsDir()
	case matchFiles:
		return entry.Type().IsRegular() && strings.ToLower(filepath.Ext(name)) == r.ext
	default:
		return false
	}
}

// identifier derives the expert name for a matched entry.
func (r MatchRule) identifier(entryName string) string {
	if r.kind == matchFiles {
		return strings.TrimSuffix(entryName, filepath.Ext(entryName))
	}
	return entryName
}
