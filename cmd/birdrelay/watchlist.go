package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type watchListFile struct {
	Handles []string `yaml:"handles"`
}

// loadWatchList reads the YAML watch-list file. An unreadable file or an
// empty handle list is a configuration error; there is nothing sensible to
// relay without one.
func loadWatchList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading watch list: %w", err)
	}
	var wl watchListFile
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parsing watch list %s: %w", path, err)
	}
	if len(wl.Handles) == 0 {
		return nil, fmt.Errorf("watch list %s contains no handles", path)
	}
	return wl.Handles, nil
}
