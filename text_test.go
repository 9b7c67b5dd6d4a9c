package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daebeom/macfolio/internal/terminal"
)

func TestFilterProjects(t *testing.T) {
	assert.Equal(t, Projects, FilterProjects(""))
	assert.Equal(t, Projects, FilterProjects(CategoryAll))

	web := FilterProjects("Web")
	require.Len(t, web, 2)
	for _, p := range web {
		assert.Equal(t, "Web", p.Category)
	}
	assert.Empty(t, FilterProjects("Game"))
}

func TestFindSkillCategory(t *testing.T) {
	assert.Equal(t, "Storage", FindSkillCategory("storage").Name)
	assert.Equal(t, SkillCategories[0], FindSkillCategory("nope"))
}

func TestDockOrder(t *testing.T) {
	ids := make([]string, 0, len(Apps))
	for _, a := range Apps {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"terminal", "safari", "finder", "settings", "contacts"}, ids)

	_, ok := findApp("finder")
	assert.True(t, ok)
	_, ok = findApp("mail")
	assert.False(t, ok)
}

func TestScriptCommandPrintsYAML(t *testing.T) {
	t.Setenv("MACFOLIO_TERMINAL_SCRIPT", "")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"script"})
	require.NoError(t, root.Execute())

	script, err := terminal.ParseScript(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, terminal.DefaultScript(), script)
}

func TestReplayCommandPlain(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"replay", "--plain", "--char-interval", "1us"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "$ whoami\n")
	assert.Contains(t, out.String(), "1000+ GitHub contributions")
}

func TestReplayCommandRejectsBadInterval(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"replay", "--plain", "--char-interval", "0s"})
	assert.Error(t, root.Execute())
}
