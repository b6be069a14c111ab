// Package experts enumerates the experts available in a VerifAI Assistant
// data directory.
//
// The assistant's directory layout is external state owned by another
// application; this package only reads it. Which directory entries count
// as experts is an explicit matching rule (see MatchRule) rather than a
// hard-coded convention, since the assistant does not document one.
package experts

// Expert is a single expert as seen in the assistant directory.
//
// Only Name is always populated. The remaining fields are metadata that
// may be available depending on where the expert came from: registry
// entries carry the fields of experts.json, directory entries may carry
// frontmatter from an expert.md inside the directory.
type Expert struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	ID          string `json:"id,omitempty"`
	Type        string `json:"type,omitempty"`
	State       string `json:"state,omitempty"`
	Description string `json:"description,omitempty"`
	Prompt      string `json:"prompt,omitempty"`
}

// Expert sources.
const (
	SourceDirectory = "directory"
	SourceFile      = "file"
	SourceRegistry  = "registry"
)

// Names returns just the identifiers of the given experts, preserving order.
func Names(list []Expert) []string {
	names := make([]string, len(list))
	for i, e := range list {
		names[i] = e.Name
	}
	return names
}
