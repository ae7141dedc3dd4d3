package config

import (
	"os"
	"path/filepath"
)

// Load resolves cfgName and unmarshals the file into out.
//
// Resolution order:
//  1. an absolute path is used as-is;
//  2. a relative path is joined with the working directory;
//  3. otherwise the relative path is searched upward from the working
//     directory, so binaries can run from any subdirectory of the repo.
func Load(cfgName string, out any) {
	if cfgName == "" {
		panic("config: empty config name")
	}

	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if filepath.IsAbs(cfgName) {
		load(cfgName, out)
		return
	}
	if candidate := filepath.Join(curDir, cfgName); fileExist(candidate) {
		load(candidate, out)
		return
	}

	load(findUpward(curDir, cfgName), out)
}

func findUpward(startDir, relPath string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, relPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + relPath + " from: " + startDir)
		}
		dir = parent
	}
}
