package prompts

type PromptName string

const (
	PromptSegmentParagraphs  PromptName = "segment_paragraphs"
	PromptSimplifyParagraph  PromptName = "simplify_paragraph"
	PromptGenerateQuiz       PromptName = "generate_quiz"
	PromptTranslateContent   PromptName = "translate_content"
	PromptTranslateQuiz      PromptName = "translate_quiz"
	PromptTranslateChapterMD PromptName = "translate_chapter_meta"
)
