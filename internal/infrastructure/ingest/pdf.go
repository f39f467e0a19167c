package ingest

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	pageNumberRe = regexp.MustCompile(`(?m)^\s*\d+\s*$`)
	headerRe     = regexp.MustCompile(`(?m)^(CÔNG BÁO|DỰ THẢO|Luật số).*?\n`)
	signatureRe  = regexp.MustCompile(`(?s)Ký bởi:.*?\+07:00`)
	multiBlankRe = regexp.MustCompile(`\n{3,}`)
)

// ExtractText pulls the plain text out of a PDF gazette file.
func ExtractText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(b); err != nil {
		return "", fmt.Errorf("read pdf text %s: %w", path, err)
	}
	return buf.String(), nil
}

// CleanText strips gazette noise: standalone page numbers, running
// headers, and digital signature blocks. Broken lines are rejoined so
// article bodies read as continuous sentences.
func CleanText(text string) string {
	text = signatureRe.ReplaceAllString(text, "")
	text = pageNumberRe.ReplaceAllString(text, "")
	text = headerRe.ReplaceAllString(text, "")
	text = joinBrokenLines(text)
	text = multiBlankRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// joinBrokenLines merges a line into the previous one when the previous
// line does not end a sentence and the next one does not start a new
// structural unit. PDF extraction breaks lines at the page width, not at
// sentence boundaries.
func joinBrokenLines(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		if len(out) > 0 && out[len(out)-1] != "" && !endsSentence(out[len(out)-1]) && !startsStructuralUnit(trimmed) {
			out[len(out)-1] += " " + trimmed
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}

func endsSentence(line string) bool {
	for _, suffix := range []string{".", ":", ";", "?", "!"} {
		if strings.HasSuffix(line, suffix) {
			return true
		}
	}
	return false
}

func startsStructuralUnit(line string) bool {
	return chapterHeadRe.MatchString(line) ||
		sectionHeadRe.MatchString(line) ||
		articleHeadRe.MatchString(line) ||
		clauseHeadRe.MatchString(line)
}
