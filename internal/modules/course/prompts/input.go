package prompts

// Input is a superset of all fields any course prompt needs.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Segmentation
	Transcript     string
	MaxWords       int
	LevelsJSON     string
	ObjectivesJSON string
	SkillsJSON     string
	// Simplification + quiz
	ParagraphText string
	Language      string
	QuizSize      int
	// Translation: the typed sub-record serialized as JSON
	PayloadJSON    string
	TargetLanguage string
}
