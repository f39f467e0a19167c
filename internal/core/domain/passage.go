package domain

// DocumentType classifies the legal instrument a passage belongs to.
type DocumentType string

const (
	DocumentTypeLaw      DocumentType = "Luật"
	DocumentTypeDecree   DocumentType = "Nghị định"
	DocumentTypeCircular DocumentType = "Thông tư"
	DocumentTypeOther    DocumentType = "Văn bản khác"
)

// PassageMetadata is the closed set of structural fields attached to every
// passage. Optional fields stay empty rather than absent.
type PassageMetadata struct {
	SourceFile     string       `json:"source_file"`
	DocumentType   DocumentType `json:"document_type"`
	DocumentNumber string       `json:"document_number"`
	Chapter        string       `json:"chapter,omitempty"`
	Section        string       `json:"section,omitempty"`
	ArticleTitle   string       `json:"article_title"`
	ArticleNumber  string       `json:"article_number"`
}

// Passage is one citable unit of statute text. Created once during offline
// ingestion, read-only at query time.
type Passage struct {
	Content string `json:"content"`
	PassageMetadata
}

func (p Passage) Metadata() PassageMetadata {
	return p.PassageMetadata
}
