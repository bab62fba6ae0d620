// Package export renders quizzes as spreadsheet workbooks and reads edited ones back.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yungbote/aicourse-backend/internal/domain/course"
	"github.com/yungbote/aicourse-backend/internal/platform/apierr"
)

const (
	SheetName   = "Quiz_Data"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	listSep       = " | "
	maxColumnWide = 50
)

var Header = []string{
	"Question_ID",
	"Question",
	"Question_Type",
	"Post_Assessment",
	"Question_Level",
	"Options",
	"Correct_Answer",
	"Related_Skills",
	"Related_Objectives",
	"Alternative_Questions",
}

// Workbook writes one row per question. List cells are joined with " | "; alternative
// questions are listed by their text.
func Workbook(quiz []course.QuizQuestion) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, apierr.Backend("export quiz", err)
	}
	widths := make([]int, len(Header))
	put := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if n := len(fmt.Sprint(v)); n > widths[col] {
			widths[col] = n
		}
		return f.SetCellValue(SheetName, cell, v)
	}

	for i, h := range Header {
		if err := put(i, 1, h); err != nil {
			return nil, apierr.Backend("export quiz", err)
		}
	}
	for i, q := range quiz {
		for col, v := range row(i, q) {
			if err := put(col, i+2, v); err != nil {
				return nil, apierr.Backend("export quiz", err)
			}
		}
	}
	for col, w := range widths {
		name, _ := excelize.ColumnNumberToName(col + 1)
		if err := f.SetColWidth(SheetName, name, name, float64(min(w+2, maxColumnWide))); err != nil {
			return nil, apierr.Backend("export quiz", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apierr.Backend("export quiz", err)
	}
	return buf.Bytes(), nil
}

func row(i int, q course.QuizQuestion) []any {
	id := q.QuestionID
	if id == "" {
		id = strconv.Itoa(i + 1)
	}
	alts := make([]string, 0, len(q.AlternativeQuestions))
	for _, a := range q.AlternativeQuestions {
		alts = append(alts, a.QuestionText)
	}
	return []any{
		id,
		q.QuestionText,
		string(q.Type),
		q.PostAssessment,
		q.Level,
		strings.Join(q.Options, listSep),
		q.CorrectAnswer,
		strings.Join(course.TagNames(q.RelatedSkills), listSep),
		strings.Join(course.TagNames(q.RelatedObjectives), listSep),
		strings.Join(alts, listSep),
	}
}

// Read parses a workbook produced by Workbook, possibly edited by hand, back into
// questions. Identifiers other than Question_ID are not carried by the sheet, and
// alternatives come back as text-only entries.
func Read(r io.Reader) ([]course.QuizQuestion, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apierr.Validation("read quiz workbook", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apierr.Validationf("read quiz workbook", "workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apierr.Validation("read quiz workbook", err)
	}
	if len(rows) == 0 {
		return []course.QuizQuestion{}, nil
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	for _, h := range Header {
		if _, ok := cols[h]; !ok {
			return nil, apierr.Validationf("read quiz workbook", "missing column %q", h)
		}
	}

	out := make([]course.QuizQuestion, 0, len(rows)-1)
	for n, r := range rows[1:] {
		cell := func(name string) string {
			if i := cols[name]; i < len(r) {
				return strings.TrimSpace(r[i])
			}
			return ""
		}
		if cell("Question") == "" {
			continue
		}
		level, err := strconv.Atoi(cell("Question_Level"))
		if err != nil {
			return nil, apierr.Validationf("read quiz workbook", "row %d: bad Question_Level %q", n+2, cell("Question_Level"))
		}
		q := course.QuizQuestion{
			QuestionID:        cell("Question_ID"),
			QuestionText:      cell("Question"),
			Type:              course.QuestionType(cell("Question_Type")),
			PostAssessment:    parseBoolLoose(cell("Post_Assessment")),
			Level:             level,
			Options:           splitList(cell("Options")),
			CorrectAnswer:     cell("Correct_Answer"),
			RelatedSkills:     tagsOf(splitList(cell("Related_Skills"))),
			RelatedObjectives: tagsOf(splitList(cell("Related_Objectives"))),
		}
		for _, alt := range splitList(cell("Alternative_Questions")) {
			q.AlternativeQuestions = append(q.AlternativeQuestions, course.AlternativeQuestion{QuestionText: alt})
		}
		out = append(out, q)
	}
	return out, nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, strings.TrimSpace(listSep))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func tagsOf(names []string) []course.Tag {
	out := make([]course.Tag, 0, len(names))
	for _, n := range names {
		out = append(out, course.Tag{Name: n})
	}
	return out
}

func parseBoolLoose(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
