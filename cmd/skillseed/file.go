package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
)

type skillEntry struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

func readSkillsFile(path string) ([]course.Tag, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skills file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseSkillsYAML(raw)
	default:
		return parseSkillsText(raw), nil
	}
}

func parseSkillsYAML(raw []byte) ([]course.Tag, error) {
	var entries []skillEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse skills yaml: %w", err)
	}
	out := make([]course.Tag, 0, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("parse skills yaml: entry %d has no name", i)
		}
		out = append(out, course.Tag{Name: name, ID: strings.TrimSpace(e.ID)})
	}
	return out, nil
}

func parseSkillsText(raw []byte) []course.Tag {
	var out []course.Tag
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, course.Tag{Name: line})
	}
	return out
}
