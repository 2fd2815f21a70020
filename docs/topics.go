// Package docs holds the documentation topics shown by 'pgm topic'.
package docs

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Topic returns the content of a documentation topic. The topic "*" is all of them.
func Topic(topic string) (string, error) {
	if topic == "*" {
		topics, err := AllTopics()
		if err != nil {
			return "", err
		}
		return Topics(topics...)
	}

	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// Topics returns the content of multiple documentation topics concatenated together.
func Topics(topics ...string) (string, error) {
	var b bytes.Buffer
	for _, topic := range topics {
		content, err := Topic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		if topic != "*" {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// AllTopics returns the sorted list of available topics, the readme excepted.
func AllTopics() ([]string, error) {
	var topics []string
	err := fs.WalkDir(docs, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if base == "readme" {
			return nil
		}
		topics = append(topics, base)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(topics)
	return topics, nil
}
