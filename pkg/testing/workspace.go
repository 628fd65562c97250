package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/mod/modfile"
)

var (
	workspaceMu   sync.Mutex
	workspacePath string
)

// ModuleRoot returns the root directory of the enclosing Go module,
// found by walking up from the working directory to the nearest go.mod.
// The result is memoized; every later caller gets the first answer.
func ModuleRoot() (string, error) {
	workspaceMu.Lock()
	defer workspaceMu.Unlock()
	if workspacePath != "" {
		return workspacePath, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		modPath := filepath.Join(dir, "go.mod")
		data, err := os.ReadFile(modPath)
		if err == nil {
			mod, err := modfile.ParseLax(modPath, data, nil)
			if err != nil {
				return "", fmt.Errorf("parsing %s: %w", modPath, err)
			}
			if mod.Module == nil || mod.Module.Mod.Path == "" {
				return "", fmt.Errorf("%s declares no module path", modPath)
			}
			workspacePath = dir
			return dir, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod above %s", dir)
		}
		dir = parent
	}
}
