package course

// Tag is a named skill or objective. ID is set when the tag was resolved from the skills
// store; QuestionID is set by the quiz identity rewrite to link the tag to its question.
type Tag struct {
	Name       string `json:"name"`
	ID         string `json:"id,omitempty"`
	QuestionID string `json:"question_id,omitempty"`
}

// Level is one entry of the paragraph level catalog.
type Level struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Paragraph struct {
	ID         string `json:"paragraph_id"`
	Text       string `json:"paragraph"`
	Level      Level  `json:"paragraph_level"`
	Objectives []Tag  `json:"objective"`
	Skills     []Tag  `json:"skills"`
	Language   string `json:"language"`
	StartWord  string `json:"start_word"`
	EndWord    string `json:"end_word"`
}

type Simplification struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	FirstWord string `json:"first_word"`
	LastWord  string `json:"last_word"`
}

// SimplificationTriple holds three rewrites of one paragraph, each longer and simpler
// than the one before.
type SimplificationTriple struct {
	Basic    Simplification `json:"simplify1"`
	Detailed Simplification `json:"simplify2"`
	Simplest Simplification `json:"simplify3"`
}

// ContentUnit is one paragraph with its simplifications and quiz. It is the unit of
// fan-out and of translation. Paragraph fields are flattened on the wire.
type ContentUnit struct {
	VideoID string `json:"video_id,omitempty"`
	Paragraph
	Simplifications SimplificationTriple `json:"simplifications"`
	Quiz            []QuizQuestion       `json:"quiz"`
}

// ProcessVideoRequest is the input to the processing pipeline.
type ProcessVideoRequest struct {
	VideoID    string `json:"video_id,omitempty"`
	Video      string `json:"video"`
	Objectives []Tag  `json:"objective"`
	Skills     []Tag  `json:"skills"`
	Language   string `json:"language"`
}

const DefaultLanguage = "English"

func (r ProcessVideoRequest) LanguageOrDefault() string {
	if r.Language == "" {
		return DefaultLanguage
	}
	return r.Language
}
