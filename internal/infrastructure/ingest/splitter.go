package ingest

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lawbotvn/lawbot/internal/core/domain"
)

var (
	// Structural boundaries of Vietnamese legal texts. Articles are the
	// retrieval unit; chapter and section headings only set metadata. Line
	// anchoring keeps a heading at offset 0 as a boundary too.
	boundaryRe = regexp.MustCompile(`(?m)^(?:Chương\s+[IVXLCDM\d]+|Mục\s+\d+|Điều\s+\d+)`)

	chapterHeadRe = regexp.MustCompile(`^Chương\s+([IVXLCDM\d]+)`)
	sectionHeadRe = regexp.MustCompile(`^Mục\s+(\d+)`)
	articleHeadRe = regexp.MustCompile(`^Điều\s+(\d+)\s*\.?\s*(.*)`)
	clauseHeadRe  = regexp.MustCompile(`^\d+\.\s`)

	decreeFileRe   = regexp.MustCompile(`nghi-dinh-(\d+)-(\d{4})`)
	lawFileRe      = regexp.MustCompile(`luat.*?(\d{4})`)
	circularFileRe = regexp.MustCompile(`thong-tu-(\d+)-(\d{4})`)
)

// SplitLawDocument segments cleaned legal text into one passage per
// article. Chapter and section headings carry over onto the articles that
// follow them; a new chapter resets the current section.
func SplitLawDocument(text, sourceFile string) []domain.Passage {
	docType, docNumber := extractDocumentDetails(sourceFile)

	segments := splitOnBoundaries(text)

	var passages []domain.Passage
	var chapter, section string
	for _, segment := range segments {
		head := strings.SplitN(segment, "\n", 2)[0]

		if m := chapterHeadRe.FindStringSubmatch(head); m != nil {
			chapter = headingLine(segment)
			section = ""
			continue
		}
		if m := sectionHeadRe.FindStringSubmatch(head); m != nil {
			section = headingLine(segment)
			continue
		}
		m := articleHeadRe.FindStringSubmatch(head)
		if m == nil {
			continue
		}

		passages = append(passages, domain.Passage{
			Content: strings.TrimSpace(segment),
			PassageMetadata: domain.PassageMetadata{
				SourceFile:     sourceFile,
				DocumentType:   docType,
				DocumentNumber: docNumber,
				Chapter:        chapter,
				Section:        section,
				ArticleTitle:   strings.TrimSpace(m[2]),
				ArticleNumber:  m[1],
			},
		})
	}
	return passages
}

// splitOnBoundaries cuts the text before each structural heading, keeping
// the heading with the segment it opens.
func splitOnBoundaries(text string) []string {
	matches := boundaryRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var segments []string
	for i, m := range matches {
		start := m[0]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		segment := strings.TrimSpace(text[start:end])
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// headingLine folds a heading and its title line into one string, e.g.
// "Chương II QUY TẮC GIAO THÔNG ĐƯỜNG BỘ".
func headingLine(segment string) string {
	lines := strings.SplitN(segment, "\n", 3)
	head := strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		if title := strings.TrimSpace(lines[1]); title != "" {
			return head + " " + title
		}
	}
	return head
}

// extractDocumentDetails derives the document type and number from the
// source filename, which follows the thuvienphapluat slug convention.
func extractDocumentDetails(sourceFile string) (domain.DocumentType, string) {
	name := strings.ToLower(filepath.Base(sourceFile))

	if m := decreeFileRe.FindStringSubmatch(name); m != nil {
		return domain.DocumentTypeDecree, fmt.Sprintf("%s/%s/NĐ-CP", m[1], m[2])
	}
	if m := circularFileRe.FindStringSubmatch(name); m != nil {
		return domain.DocumentTypeCircular, fmt.Sprintf("%s/%s/TT-BGTVT", m[1], m[2])
	}
	if m := lawFileRe.FindStringSubmatch(name); m != nil {
		return domain.DocumentTypeLaw, "Luật năm " + m[1]
	}
	return domain.DocumentTypeOther, "Không xác định"
}
