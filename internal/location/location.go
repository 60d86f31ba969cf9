// Package location resolves where the knowledge base lives on disk.
//
// A directory containing .knowledge/ marks a project-local knowledge
// base: the database and documents both live under that directory. When
// no project marker is found in the working directory, the global base
// under ~/.knowledge-rag/data is used instead.
package location

import (
	"fmt"
	"os"
	"path/filepath"
)

// Type distinguishes project-local from global knowledge bases.
type Type string

const (
	// TypeProject is a knowledge base rooted in a project's .knowledge/ dir.
	TypeProject Type = "project"

	// TypeGlobal is the per-user knowledge base under the home directory.
	TypeGlobal Type = "global"
)

// Location describes a resolved knowledge base.
type Location struct {
	// Type reports whether this is a project or global base.
	Type Type

	// DBPath is the SQLite database file path.
	DBPath string

	// DocsDir is the default directory to index documents from.
	DocsDir string
}

// Resolve determines the knowledge base for the given working directory.
// If cwd contains a .knowledge/ directory the base is project-local;
// otherwise it falls back to the global base under the user's home.
func Resolve(cwd string) (*Location, error) {
	marker := filepath.Join(cwd, ".knowledge")
	if info, err := os.Stat(marker); err == nil && info.IsDir() {
		return &Location{
			Type:    TypeProject,
			DBPath:  filepath.Join(marker, "knowledge.db"),
			DocsDir: marker,
		}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}

	dataDir := filepath.Join(home, ".knowledge-rag", "data")
	return &Location{
		Type:    TypeGlobal,
		DBPath:  filepath.Join(dataDir, "knowledge.db"),
		DocsDir: dataDir,
	}, nil
}
