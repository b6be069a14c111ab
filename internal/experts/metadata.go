package experts

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/adrg/frontmatter"
)

// MetadataFileName is the optional descriptor inside an expert directory.
const MetadataFileName = "expert.md"

// expertFrontmatter is the YAML frontmatter accepted in an expert.md.
// A description is required for the metadata to be used at all; files
// without it are treated as ordinary content.
type expertFrontmatter struct {
	Description string `yaml:"description"`
	State       string `yaml:"state,omitempty"`
}

// applyDirMetadata enriches a directory expert with frontmatter from its
// expert.md, when present and well-formed. Missing or malformed metadata
// is not an error; the expert simply stays name-only.
func applyDirMetadata(expert *Expert, dir string) {
	content, err := os.ReadFile(filepath.Join(dir, MetadataFileName))
	if err != nil {
		return
	}

	var matter expertFrontmatter
	if _, err := frontmatter.Parse(bytes.NewReader(content), &matter); err != nil {
		return
	}
	if matter.Description == "" {
		return
	}

	expert.Description = matter.Description
	expert.State = matter.State
}
