package prompts

import (
	"sort"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
)

func StringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func StringOrNullSchema() map[string]any {
	return map[string]any{"type": []any{"string", "null"}}
}

func StringArraySchema() map[string]any {
	return map[string]any{"type": "array", "items": StringSchema()}
}

func IntRangeSchema(min, max int) map[string]any {
	return map[string]any{"type": "integer", "minimum": min, "maximum": max}
}

func BoolSchema() map[string]any {
	return map[string]any{"type": "boolean"}
}

func EnumSchema(values ...string) map[string]any {
	arr := make([]any, 0, len(values))
	for _, v := range values {
		arr = append(arr, v)
	}
	return map[string]any{"type": "string", "enum": arr}
}

func ArraySchema(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

// ObjectSchema builds a strict object: every property is required and no others are
// allowed.
func ObjectSchema(properties map[string]any) map[string]any {
	req := make([]string, 0, len(properties))
	for k := range properties {
		req = append(req, k)
	}
	sort.Strings(req)
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             req,
		"additionalProperties": false,
	}
}

func namedTagSchema() map[string]any {
	return ObjectSchema(map[string]any{"name": StringSchema()})
}

func SegmentSchema() map[string]any {
	paragraph := ObjectSchema(map[string]any{
		"paragraph": StringSchema(),
		"paragraph_level": ObjectSchema(map[string]any{
			"id":   StringSchema(),
			"name": EnumSchema(course.LevelNames()...),
		}),
		"related_objectives": ArraySchema(namedTagSchema()),
		"related_skills":     ArraySchema(namedTagSchema()),
	})
	return ObjectSchema(map[string]any{
		"paragraphs": ArraySchema(paragraph),
	})
}

func SimplifySchema() map[string]any {
	return ObjectSchema(map[string]any{
		"simplify1": StringSchema(),
		"simplify2": StringSchema(),
		"simplify3": StringSchema(),
	})
}

func questionTypeSchema() map[string]any {
	return EnumSchema(string(course.QuestionMultipleChoice), string(course.QuestionTrueFalse))
}

func alternativeQuestionSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"question":        StringSchema(),
		"question_type":   questionTypeSchema(),
		"post_assessment": BoolSchema(),
		"question_level":  IntRangeSchema(course.MinQuestionLevel, course.MaxQuestionLevel),
		"options":         StringArraySchema(),
		"correct_answer":  StringSchema(),
	})
}

func QuizSchema() map[string]any {
	question := ObjectSchema(map[string]any{
		"question":              StringSchema(),
		"question_type":         questionTypeSchema(),
		"post_assessment":       BoolSchema(),
		"question_level":        IntRangeSchema(course.MinQuestionLevel, course.MaxQuestionLevel),
		"options":               StringArraySchema(),
		"correct_answer":        StringSchema(),
		"related_skills":        ArraySchema(namedTagSchema()),
		"related_objectives":    ArraySchema(namedTagSchema()),
		"alternative_questions": ArraySchema(alternativeQuestionSchema()),
	})
	return ObjectSchema(map[string]any{
		"quiz": ArraySchema(question),
	})
}

func TranslateContentSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"paragraph":          StringSchema(),
		"simplify1":          StringSchema(),
		"simplify2":          StringSchema(),
		"simplify3":          StringSchema(),
		"related_objectives": ArraySchema(namedTagSchema()),
		"related_skills":     ArraySchema(namedTagSchema()),
	})
}

func translatableAnswerSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"answer_id": StringSchema(),
		"text":      StringSchema(),
	})
}

func TranslateQuizSchema() map[string]any {
	alt := ObjectSchema(map[string]any{
		"question_id": StringSchema(),
		"question":    StringSchema(),
		"options":     StringArraySchema(),
		"answers":     ArraySchema(translatableAnswerSchema()),
	})
	question := ObjectSchema(map[string]any{
		"question_id":           StringSchema(),
		"question":              StringSchema(),
		"options":               StringArraySchema(),
		"answers":               ArraySchema(translatableAnswerSchema()),
		"alternative_questions": ArraySchema(alt),
	})
	return ObjectSchema(map[string]any{
		"questions": ArraySchema(question),
	})
}

func TranslateChapterSchema() map[string]any {
	video := ObjectSchema(map[string]any{
		"id":          StringSchema(),
		"name":        StringSchema(),
		"description": StringOrNullSchema(),
	})
	return ObjectSchema(map[string]any{
		"id":          StringSchema(),
		"name":        StringSchema(),
		"description": StringOrNullSchema(),
		"videos":      ArraySchema(video),
	})
}
