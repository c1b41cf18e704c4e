package dto

const (
	DocumentFormatPlain    = "plain"
	DocumentFormatMarkdown = "markdown"
)

// CopyDocumentRequest content is either Lexical editor JSON or plain text.
type CopyDocumentRequest struct {
	Content string `json:"content" validate:"required"`
	Format  string `json:"format" validate:"omitempty,oneof=plain markdown"`
}

type CopyDocumentResponse struct {
	Text   string `json:"text"`
	Format string `json:"format"`
}
