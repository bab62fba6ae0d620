package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestReadSkillsText(t *testing.T) {
	p := writeFile(t, "skills.txt", "# catalog\nScience\n\n  Physics  \n")
	got, err := readSkillsFile(p)
	require.NoError(t, err)
	assert.Equal(t, []course.Tag{{Name: "Science"}, {Name: "Physics"}}, got)
}

func TestReadSkillsYAML(t *testing.T) {
	p := writeFile(t, "skills.yaml", "- name: Science\n  id: s-1\n- name: Physics\n")
	got, err := readSkillsFile(p)
	require.NoError(t, err)
	assert.Equal(t, []course.Tag{{Name: "Science", ID: "s-1"}, {Name: "Physics"}}, got)
}

func TestReadSkillsYAMLRejectsNamelessEntry(t *testing.T) {
	p := writeFile(t, "skills.yml", "- id: s-1\n")
	_, err := readSkillsFile(p)
	assert.Error(t, err)
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"seed", "search"}, names)

	seed, _, err := root.Find([]string{"seed"})
	require.NoError(t, err)
	assert.NotNil(t, seed.Flags().Lookup("batch-size"))
}
