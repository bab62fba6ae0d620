package prompts

import "fmt"

// RegisterAll registers every course prompt. Build calls it once on first use.
func RegisterAll() {
	RegisterSpec(Spec{
		Name:       PromptSegmentParagraphs,
		Version:    1,
		SchemaName: "paragraph_segmentation",
		Schema:     SegmentSchema,
		System: `
You process video scripts for an online course. You receive a script together with its
learning objectives, its skills and a fixed list of paragraph levels.

Tasks:
1. Split the script into coherent, meaningful paragraphs guided by semantic structure and length.
2. Assign to each paragraph the objectives from the provided list that it directly supports.
3. Assign to each paragraph the skills from the provided list that it exercises.
4. Assign exactly one paragraph level from the provided list.
5. No paragraph may exceed {{.MaxWords}} words.

Rules:
- When a paragraph would exceed {{.MaxWords}} words, split it into smaller self-contained chunks.
- Preserve the original wording and punctuation exactly. Do not rephrase, reword or add text.
- Every chunk must be understandable on its own.
- If the whole script is under {{.MaxWords}} words or too short to chunk, return it unchanged as one paragraph.
- Only use objective and skill names from the provided lists, spelled exactly as given.`,
		User: `
##Script:
{{.Transcript}}

##Objectives:
{{.ObjectivesJSON}}

##Skills:
{{.SkillsJSON}}

##Paragraph levels:
{{.LevelsJSON}}`,
		Validators: []Validator{
			RequireNonEmpty("Transcript", func(in Input) string { return in.Transcript }),
			RequirePositive("MaxWords", func(in Input) int { return in.MaxWords }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptSimplifyParagraph,
		Version:    1,
		SchemaName: "paragraph_simplification",
		Schema:     SimplifySchema,
		System: `
You rewrite one course paragraph at three levels of simplicity.

Never add anything that is not already in the paragraph. Every version explains only what is
already there, in simpler and clearer ways. If the paragraph is official course content such as
the introduction to a training course, return it unchanged in all three versions.

First pick 3 to 5 important words or phrases from the paragraph. Each version explains them.

simplify1 (basic): for a reader with basic knowledge. Rephrase into 2 to 4 points, give each
important term a simple explanation with one example and add at least one detail per point.
At least 20% longer than the paragraph.

simplify2 (detailed): for a reader who needs clarity. Very simple words. Explain each important
term with two examples or comparisons and say why it matters or how it works. At least 50%
longer than the paragraph and longer than simplify1.

simplify3 (simplest): for a child or beginner. Friendly language ("Imagine..."), a comparison with
at least two examples per important term, a small story or extra context. 80 to 100% longer than
the paragraph and the longest version.

Check before answering: paragraph < simplify1 < simplify2 < simplify3 in length.`,
		User: `
##Script:
{{.ParagraphText}}

##Answer in {{.Language}} language.`,
		Validators: []Validator{
			RequireNonEmpty("ParagraphText", func(in Input) string { return in.ParagraphText }),
			RequireNonEmpty("Language", func(in Input) string { return in.Language }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptGenerateQuiz,
		Version:    1,
		SchemaName: "quiz_generation",
		Schema:     QuizSchema,
		System: `
You write assessment questions based strictly and only on the given course content.

Tasks:
- Create exactly {{.QuizSize}} independent questions, multiple_choice or true_false.
- Half of them are original questions and half are alternative framings of the same facts.
- For each question also give one or two alternative_questions: independently gradable framings
  of the same fact with their own options and correct answer.
- Each question has a clear factual answer. Focus on facts, figures and key ideas.
- Give every question a question_level from 1 (easiest) to 6 (hardest).
- Set post_assessment to true on every question.
- correct_answer must exactly match one of the options.
- Tag each question with the one most relevant skill from the provided skills list, and the
  objectives it assesses from the provided objectives list.
- For true_false questions do not begin with "True or False"; ask the question directly.

Never reference the source. Do not write phrases like "according to the text",
"as mentioned in the video", "from the script" or "based on the passage". Every question
must read as a standalone factual question.`,
		User: `
##Script:
{{.ParagraphText}}

##Skills:
{{.SkillsJSON}}

##Objectives:
{{.ObjectivesJSON}}

##Answer in {{.Language}} language.`,
		Validators: []Validator{
			RequireNonEmpty("ParagraphText", func(in Input) string { return in.ParagraphText }),
			RequirePositive("QuizSize", func(in Input) int { return in.QuizSize }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptTranslateContent,
		Version:    2,
		SchemaName: "content_translation",
		Schema:     TranslateContentSchema,
		System: translationSystem(`
Your task is to translate the course paragraph, its three simplified versions and the names of
its related objectives and skills into {{.TargetLanguage}}.
Keep the number and order of related_objectives and related_skills.`),
		User: `{{.PayloadJSON}}`,
		Validators: []Validator{
			RequireNonEmpty("PayloadJSON", func(in Input) string { return in.PayloadJSON }),
			RequireNonEmpty("TargetLanguage", func(in Input) string { return in.TargetLanguage }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptTranslateQuiz,
		Version:    1,
		SchemaName: "quiz_translation",
		Schema:     TranslateQuizSchema,
		System: translationSystem(`
Your task is to translate the quiz questions, options and answers into {{.TargetLanguage}}.
Keep every question_id and answer_id exactly as given. Keep the number and order of questions,
alternative questions, options and answers. An answer text and the option it matches must
translate to the same string.`),
		User: `{{.PayloadJSON}}`,
		Validators: []Validator{
			RequireNonEmpty("PayloadJSON", func(in Input) string { return in.PayloadJSON }),
			RequireNonEmpty("TargetLanguage", func(in Input) string { return in.TargetLanguage }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptTranslateChapterMD,
		Version:    1,
		SchemaName: "chapter_translation",
		Schema:     TranslateChapterSchema,
		System: translationSystem(`
Your task is to translate the chapter metadata (chapter and video names and descriptions) into {{.TargetLanguage}}.
Keep ids exactly as given and keep null descriptions null.`),
		User: `{{.PayloadJSON}}`,
		Validators: []Validator{
			RequireNonEmpty("PayloadJSON", func(in Input) string { return in.PayloadJSON }),
			RequireNonEmpty("TargetLanguage", func(in Input) string { return in.TargetLanguage }),
		},
	})
}

func translationSystem(task string) string {
	return `
You translate educational content.` + task + `

Translate only natural-language text:
- Do not modify the structure, order or formatting.
- Do not change the meaning or context.
- Do not add or remove any content.
- Do not translate IDs, UUIDs, field names or any non-textual values.`
}

// TranslateTextSystem is the instruction for single-string plain-text translation.
func TranslateTextSystem(language string) string {
	return fmt.Sprintf("Translate the following text to %s.", language)
}
