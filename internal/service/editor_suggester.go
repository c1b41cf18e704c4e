package service

import (
	"context"
	"strings"

	"chameleon-be/pkg/editor"
	"chameleon-be/pkg/writing"
)

// EditorSuggester serves websocket editor sessions in-process, sharing the
// cache and model with the HTTP endpoint.
type EditorSuggester struct {
	autocomplete IAutocompleteService
}

func NewEditorSuggester(autocomplete IAutocompleteService) *EditorSuggester {
	return &EditorSuggester{autocomplete: autocomplete}
}

func (s *EditorSuggester) Suggest(ctx context.Context, req editor.Request) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", &InputError{Message: msgEmptyText}
	}
	p, err := writing.NormalizeParams(req.Tone, req.Purpose, req.Genre, req.Structure, req.Context)
	if err != nil {
		return "", &InputError{Message: err.Error()}
	}
	return s.autocomplete.Suggest(ctx, text, p)
}

var _ editor.Suggester = (*EditorSuggester)(nil)
