package experts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// RegistryFileName is the expert registry the VerifAI Assistant maintains
// in its data directory.
const RegistryFileName = "experts.json"

// registryEntry mirrors one element of experts.json. The assistant writes
// more fields (triggerApps among them); only the ones surfaced to callers
// are decoded.
type registryEntry struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	State  string `json:"state"`
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// listRegistry lists the experts recorded in <base>/experts.json.
// Entries without a name fall back to their ID as identifier.
func listRegistry(base string, detailed bool) ([]Expert, error) {
	registryPath := filepath.Join(base, RegistryFileName)

	data, err := os.ReadFile(registryPath)
	if err != nil {
		return nil, classifyAccessError(registryPath, err)
	}

	var entries []registryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, newError(KindInternal, "malformed registry", registryPath, err)
	}

	result := []Expert{}
	for _, entry := range entries {
		name := entry.Name
		if name == "" {
			name = entry.ID
		}
		if name == "" {
			continue
		}
		expert := Expert{Name: name, Source: SourceRegistry}
		if detailed {
			expert.ID = entry.ID
			expert.Type = entry.Type
			expert.State = entry.State
			expert.Prompt = entry.Prompt
		}
		result = append(result, expert)
	}

	slices.SortFunc(result, func(a, b Expert) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}
