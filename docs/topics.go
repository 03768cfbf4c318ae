// Package docs embeds the help topics served by `carworth topic`.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.md
var topics embed.FS

// Topic returns the markdown content of one help topic.
func Topic(name string) (string, error) {
	content, err := topics.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, try `carworth topic` for the list", name)
	}
	return string(content), nil
}

// Index returns the readme that lists every topic.
func Index() string {
	content, err := topics.ReadFile("readme.md")
	if err != nil {
		return ""
	}
	return string(content)
}

// List returns every topic name, sorted. The readme is the index, not a
// topic, so it is excluded.
func List() ([]string, error) {
	var names []string
	err := fs.WalkDir(topics, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if name == "readme" {
			return nil
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// All returns every topic concatenated, for `carworth topic '*'`.
func All() (string, error) {
	names, err := List()
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
