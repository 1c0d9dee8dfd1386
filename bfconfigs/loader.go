package bfconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/bf/cmds"
	"github.com/reusee/bf/configs"
	"github.com/reusee/bf/logs"
)

//go:embed schema.cue
var schema string

var configFileFlag = cmds.Collect[string]("-config", "use this config file; may be repeated")

var filenames = []string{
	"bf.cue",
	".bf.cue",
}

// ConfigPaths lists existing config files: the working directory first,
// then the user config dir, then /etc.
type ConfigPaths []string

func (Module) ConfigPaths() ConfigPaths {
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	paths := append(ConfigPaths(nil), *configFileFlag...)
	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return paths
}

func (Module) ConfigsLoader(
	paths ConfigPaths,
	logger logs.Logger,
) configs.Loader {
	if len(paths) > 0 {
		logger.Info("config files", "paths", []string(paths))
	}
	return configs.NewLoader(paths, schema)
}
