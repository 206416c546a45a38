package resolver

import (
	"path/filepath"
	"strings"
)

// Folder is the root directory of an open project.
type Folder struct {
	// Path is the local file system path.
	Path string
	// Name is the display name for the folder.
	Name string
}

// FolderLookup finds the workspace folder containing a document.
type FolderLookup interface {
	DocumentWorkspaceFolder(doc Document) (Folder, bool)
}

// Workspace is a set of folder roots.
type Workspace struct {
	folders []Folder
}

// NewWorkspace returns a Workspace rooted at the given directories.
// Relative roots are made absolute against the working directory.
func NewWorkspace(roots ...string) *Workspace {
	w := &Workspace{folders: make([]Folder, 0, len(roots))}
	for _, root := range roots {
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = filepath.Clean(root)
		}
		w.folders = append(w.folders, Folder{Path: abs, Name: filepath.Base(abs)})
	}
	return w
}

// Folders returns the workspace folders.
func (w *Workspace) Folders() []Folder {
	result := make([]Folder, len(w.folders))
	copy(result, w.folders)
	return result
}

// DocumentWorkspaceFolder returns the deepest folder containing doc.
// A relative document path is resolved against the working directory.
func (w *Workspace) DocumentWorkspaceFolder(doc Document) (Folder, bool) {
	if doc.Path == "" {
		return Folder{}, false
	}
	path, err := filepath.Abs(doc.Path)
	if err != nil {
		path = filepath.Clean(doc.Path)
	}

	var best Folder
	found := false
	for _, f := range w.folders {
		if !isSubPath(f.Path, path) {
			continue
		}
		if !found || len(f.Path) > len(best.Path) {
			best = f
			found = true
		}
	}
	return best, found
}

// isSubPath checks if child is parent or lies beneath it.
func isSubPath(parent, child string) bool {
	parent = filepath.Clean(parent)
	if child == parent {
		return true
	}
	if !strings.HasSuffix(parent, string(filepath.Separator)) {
		parent += string(filepath.Separator)
	}
	return strings.HasPrefix(child, parent)
}
