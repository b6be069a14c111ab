package experts

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

// Test helper functions

// createTempDirStructure creates a temporary directory with the given
// structure. Keys ending in "/" become directories, everything else a
// file with the value as content.
func createTempDirStructure(t *testing.T, structure map[string]string) string {
	t.Helper()

	tempDir := t.TempDir()

	for path, content := range structure {
		fullPath := filepath.Join(tempDir, path)

		if strings.HasSuffix(path, "/") {
			if err := os.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", path, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create parent dirs for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file %s: %v", path, err)
		}
	}

	return tempDir
}

func mustRule(t *testing.T, s string) MatchRule {
	t.Helper()
	rule, err := ParseMatchRule(s)
	if err != nil {
		t.Fatalf("ParseMatchRule(%q) failed: %v", s, err)
	}
	return rule
}

// Unit tests

func TestParseMatchRule(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"", "dirs", false},
		{"dirs", "dirs", false},
		{"registry", "registry", false},
		{"files:.md", "files:.md", false},
		{"files:md", "files:.md", false},
		{"files:.JSON", "files:.json", false},
		{"  dirs  ", "dirs", false},

		{"files:", "", true},
		{"files:.", "", true},
		{"symlinks", "", true},
		{"dir", "", true},
	}

	for _, tt := range tests {
		rule, err := ParseMatchRule(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseMatchRule(%q) expected error, got %q", tt.input, rule)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMatchRule(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if rule.String() != tt.expected {
			t.Errorf("ParseMatchRule(%q) = %q, want %q", tt.input, rule, tt.expected)
		}
	}
}

func TestListDirsRule(t *testing.T) {
	// The assistant/experts scenario: two expert directories plus a stray
	// file that does not match the convention.
	dir := createTempDirStructure(t, map[string]string{
		"legal_expert/": "",
		"tax_expert/":   "",
		"readme.txt":    "not an expert",
	})

	lister := NewLister(DefaultMatchRule())
	list, err := lister.List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	expected := []string{"legal_expert", "tax_expert"}
	if !reflect.DeepEqual(Names(list), expected) {
		t.Errorf("List = %v, want %v", Names(list), expected)
	}
	for _, e := range list {
		if e.Source != SourceDirectory {
			t.Errorf("expert %q has source %q, want %q", e.Name, e.Source, SourceDirectory)
		}
	}
}

func TestListSkipsHiddenEntries(t *testing.T) {
	dir := createTempDirStructure(t, map[string]string{
		"visible/":        "",
		".hidden/":        "",
		".config/sub.txt": "",
	})

	list, err := NewLister(DefaultMatchRule()).List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !reflect.DeepEqual(Names(list), []string{"visible"}) {
		t.Errorf("List = %v, want [visible]", Names(list))
	}
}

func TestListFilesRule(t *testing.T) {
	dir := createTempDirStructure(t, map[string]string{
		"tax.expert":    "",
		"legal.expert":  "",
		"LEGACY.EXPERT": "",
		"notes.txt":     "",
		"subdir/":       "",
	})

	list, err := NewLister(mustRule(t, "files:.expert")).List(dir)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	expected := []string{"LEGACY", "legal", "tax"}
	if !reflect.DeepEqual(Names(list), expected) {
		t.Errorf("List = %v, want %v", Names(list), expected)
	}
}

func TestListEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	list, err := NewLister(DefaultMatchRule()).List(dir)
	if err != nil {
		t.Fatalf("List on empty directory failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List on empty directory = %v, want empty", list)
	}
}

func TestListEmptyPath(t *testing.T) {
	for _, path := range []string{"", "   "} {
		_, err := NewLister(DefaultMatchRule()).List(path)
		if !IsKind(err, KindInvalidArgument) {
			t.Errorf("List(%q) error = %v, want kind %s", path, err, KindInvalidArgument)
		}
	}
}

func TestListNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := NewLister(DefaultMatchRule()).List(missing)
	if !IsKind(err, KindNotFound) {
		t.Fatalf("List error = %v, want kind %s", err, KindNotFound)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q does not name the offending path %q", err, missing)
	}
}

func TestListNotADirectory(t *testing.T) {
	dir := createTempDirStructure(t, map[string]string{
		"plain.txt": "file, not a directory",
	})

	_, err := NewLister(DefaultMatchRule()).List(filepath.Join(dir, "plain.txt"))
	if !IsKind(err, KindNotADirectory) {
		t.Fatalf("List error = %v, want kind %s", err, KindNotADirectory)
	}
}

func TestListPermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod-based permission test not applicable on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks do not apply")
	}

	dir := createTempDirStructure(t, map[string]string{
		"locked/expert_a/": "",
	})
	locked := filepath.Join(dir, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("Failed to chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	_, err := NewLister(DefaultMatchRule()).List(locked)
	if !IsKind(err, KindPermissionDenied) {
		t.Fatalf("List error = %v, want kind %s", err, KindPermissionDenied)
	}
}

func TestListIsIdempotent(t *testing.T) {
	dir := createTempDirStructure(t, map[string]string{
		"alpha/": "",
		"beta/":  "",
	})

	lister := NewLister(DefaultMatchRule())
	first, err := lister.List(dir)
	if err != nil {
		t.Fatalf("first List failed: %v", err)
	}
	second, err := lister.List(dir)
	if err != nil {
		t.Fatalf("second List failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("consecutive List calls differ: %v vs %v", first, second)
	}
}

func TestListDetailedReadsFrontmatter(t *testing.T) {
	dir := createTempDirStructure(t, map[string]string{
		"tax_expert/expert.md":    "---\ndescription: Tax questions\nstate: enabled\n---\n# Tax\n",
		"bare_expert/":            "",
		"broken_expert/expert.md": "---\ndescription: [unterminated\n",
	})

	list, err := NewLister(DefaultMatchRule()).ListDetailed(dir)
	if err != nil {
		t.Fatalf("ListDetailed failed: %v", err)
	}

	byName := map[string]Expert{}
	for _, e := range list {
		byName[e.Name] = e
	}

	if got := byName["tax_expert"]; got.Description != "Tax questions" || got.State != "enabled" {
		t.Errorf("tax_expert metadata = %+v, want description and state from frontmatter", got)
	}
	if got := byName["bare_expert"]; got.Description != "" {
		t.Errorf("bare_expert unexpectedly has metadata: %+v", got)
	}
	// Malformed frontmatter is skipped, never an error.
	if _, ok := byName["broken_expert"]; !ok {
		t.Errorf("broken_expert missing from listing: %v", Names(list))
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/experts", filepath.Join(home, "experts")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~elsewhere", "~elsewhere"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
