package course

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundaryWords(t *testing.T) {
	first, last := BoundaryWords("  Photosynthesis converts light, water and CO2 into sugar. ")
	assert.Equal(t, "Photosynthesis", first)
	assert.Equal(t, "sugar", last)

	first, last = BoundaryWords("")
	assert.Empty(t, first)
	assert.Empty(t, last)

	first, last = BoundaryWords("... ok")
	assert.Equal(t, "...", first)
	assert.Equal(t, "ok", last)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 4, WordCount("one two\nthree\tfour"))
}

func TestDedupeTags(t *testing.T) {
	in := []Tag{{Name: "Algebra"}, {Name: "algebra "}, {Name: ""}, {Name: "Geometry", ID: "g"}}
	out := DedupeTags(in)
	require.Len(t, out, 2)
	assert.Equal(t, "Algebra", out[0].Name)
	assert.Equal(t, "g", out[1].ID)
}

func TestSubsetOfKeepsCallerRecords(t *testing.T) {
	allowed := []Tag{{Name: "Fractions", ID: "f-1"}, {Name: "Decimals", ID: "d-1"}}
	got := SubsetOf([]Tag{{Name: "fractions"}, {Name: "Calculus"}, {Name: "Fractions"}}, allowed)
	require.Len(t, got, 1)
	assert.Equal(t, Tag{Name: "Fractions", ID: "f-1"}, got[0])
}

func TestCloneTagsDoesNotAlias(t *testing.T) {
	src := []Tag{{Name: "a"}}
	c := CloneTags(src)
	c[0].QuestionID = "q"
	assert.Empty(t, src[0].QuestionID)
	assert.NotNil(t, CloneTags(nil))
}

func TestLevelsCatalog(t *testing.T) {
	levels := Levels()
	require.Len(t, levels, 6)
	assert.Equal(t, "Very Easy", levels[0].Name)
	assert.Equal(t, "9526FA09-C4FC-49C6-B396-309E6BB772EA", levels[5].ID)

	l, ok := LevelByName("very difficult")
	require.True(t, ok)
	assert.Equal(t, "D33AEAA9-9F05-4D71-AF2D-17514B2E7A4C", l.ID)
}

func TestSnapLevel(t *testing.T) {
	assert.Equal(t, "Easy", SnapLevel(Level{ID: "e8946491-061b-48c6-9a43-c43184c73e8c", Name: "whatever"}).Name)
	assert.Equal(t, "E591A6CA-ED9D-41C7-BADB-FA8527B6EE94", SnapLevel(Level{Name: "Difficult"}).ID)
	assert.Equal(t, "Moderate", SnapLevel(Level{Name: "unheard of"}).Name)
}

func TestContentUnitFlattensParagraph(t *testing.T) {
	u := ContentUnit{
		VideoID:   "v1",
		Paragraph: Paragraph{ID: "p1", Text: "hello world", Language: "English"},
	}
	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "p1", m["paragraph_id"])
	assert.Equal(t, "hello world", m["paragraph"])
	assert.Contains(t, m, "simplifications")
}

func TestProcessVideoRequestLanguageDefault(t *testing.T) {
	assert.Equal(t, "English", ProcessVideoRequest{}.LanguageOrDefault())
	assert.Equal(t, "Arabic", ProcessVideoRequest{Language: "Arabic"}.LanguageOrDefault())
}

func TestRenameTagsKeepsIDs(t *testing.T) {
	src := []Tag{{Name: "Science", ID: "s-1"}, {Name: "Math"}}
	renames := TagRenames(src, []string{"Sciences", "Mathématiques"})

	out := RenameTags([]Tag{{Name: " science ", QuestionID: "q1"}, {Name: "History", QuestionID: "q1"}}, renames)
	assert.Equal(t, []Tag{{Name: "Sciences", QuestionID: "q1"}, {Name: "History", QuestionID: "q1"}}, out)
	assert.Equal(t, []Tag{}, RenameTags(nil, renames))
}

func TestContentPartOfCarriesTagNames(t *testing.T) {
	part := ContentPartOf(ContentUnit{Paragraph: Paragraph{
		Text:   "Water boils.",
		Skills: []Tag{{Name: "Science", ID: "s-1"}},
	}})
	raw, err := json.Marshal(part)
	require.NoError(t, err)
	assert.JSONEq(t, `{"paragraph":"Water boils.","simplify1":"","simplify2":"","simplify3":"",
		"related_objectives":[],"related_skills":[{"name":"Science"}]}`, string(raw))
}
