package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ProjectDirName marks a directory holding project-local reminders, the way
// .git marks a repository: a course folder can keep its own collection.
const ProjectDirName = ".edvora"

// ErrNoProject is returned when no ProjectDirName exists above a directory.
var ErrNoProject = errors.New("no .edvora directory found")

// FindRoot returns the nearest directory at or above startDir that contains
// a ProjectDirName directory.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for prev := ""; dir != prev; prev, dir = dir, filepath.Dir(dir) {
		info, err := os.Stat(filepath.Join(dir, ProjectDirName))
		if err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", ErrNoProject
}

// ProjectDataDir returns the project-local data directory governing
// startDir, if there is one.
func ProjectDataDir(startDir string) (string, bool) {
	root, err := FindRoot(startDir)
	if err != nil {
		return "", false
	}
	return filepath.Join(root, ProjectDirName), true
}
