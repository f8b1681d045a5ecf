package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// reads a json5 configuration file. if a sibling file named
// <name>.local.<ext> exists it is merged on top of the base file,
// local values taking priority. returns os.ErrNotExist when neither
// file is present.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	base, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(base) > 0 {
		err = json5.Unmarshal(base, &out)
		if err != nil {
			return out, fmt.Errorf("parse %s: %w", name, err)
		}
		found = true
	}

	localPath := localVariant(name)
	local, err := os.ReadFile(localPath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(local) > 0 {
		var override T
		err = json5.Unmarshal(local, &override)
		if err != nil {
			return out, fmt.Errorf("parse %s: %w", localPath, err)
		}
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Info("merging config with local overrides", "local", localPath)
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

func localVariant(name string) string {
	dir := filepath.Dir(name)
	base := filepath.Base(name)

	dot := strings.LastIndexByte(base, '.')
	if dot < 0 {
		return filepath.Join(dir, base+".local")
	}
	return filepath.Join(dir, fmt.Sprintf("%s.local.%s", base[:dot], base[dot+1:]))
}

// ReadConfig, except it walks up from the working directory until it
// finds a configuration file matching the name.
func ReadRecursively[T any](name string) (T, error) {
	var out T

	current, err := os.Getwd()
	if err != nil {
		return out, err
	}

	for {
		config, err := ReadConfig[T](filepath.Join(current, name))
		if os.IsNotExist(err) {
			parent := filepath.Dir(current)
			if parent == current {
				return out, os.ErrNotExist
			}
			current = parent
			continue
		}
		if err != nil {
			return out, err
		}
		return config, nil
	}
}
