package usecase

import (
	"regexp"
	"strings"

	"github.com/lawbotvn/lawbot/internal/core/domain"
)

var (
	documentRe = regexp.MustCompile(`(?i)(luật|nghị\s*định|thông\s*tư)\s*(?:số\s*)?(\d+(?:/\d{4})?(?:/[\p{L}\d-]+)?)`)
	articleRe  = regexp.MustCompile(`(?i)(?:điều|article)\s+(\d+)`)
)

// ExtractFilter pulls document and article references out of a question so
// semantic search can be narrowed to the cited text. Questions without
// explicit references yield a zero filter and search stays unfiltered.
func ExtractFilter(question string) domain.RetrievalFilter {
	var filter domain.RetrievalFilter

	if m := documentRe.FindStringSubmatch(question); m != nil {
		keyword := strings.ToLower(strings.Join(strings.Fields(m[1]), " "))
		switch keyword {
		case "luật":
			filter.DocumentType = domain.DocumentTypeLaw
		case "nghị định":
			filter.DocumentType = domain.DocumentTypeDecree
		case "thông tư":
			filter.DocumentType = domain.DocumentTypeCircular
		}
		filter.DocumentNumberPart = m[2]
	}

	if m := articleRe.FindStringSubmatch(question); m != nil {
		filter.ArticleNumber = m[1]
	}

	return filter
}
