package service

import (
	"context"
	"errors"

	"chameleon-be/internal/dto"
	"chameleon-be/internal/pkg/logger"
	"chameleon-be/pkg/lexical"
)

// ErrAuthRequired is returned when a copy is attempted without a session.
var ErrAuthRequired = errors.New("authentication required")

type IDocumentService interface {
	Copy(ctx context.Context, user *dto.UserDTO, req *dto.CopyDocumentRequest) (*dto.CopyDocumentResponse, error)
}

type documentService struct {
	logger logger.ILogger
}

func NewDocumentService(log logger.ILogger) IDocumentService {
	return &documentService{logger: log}
}

// Copy renders the document for the clipboard. Only signed-in users may copy.
func (s *documentService) Copy(ctx context.Context, user *dto.UserDTO, req *dto.CopyDocumentRequest) (*dto.CopyDocumentResponse, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}

	format := req.Format
	if format == "" {
		format = dto.DocumentFormatPlain
	}

	text := lexical.Export(req.Content, format)

	s.logger.Info("DocumentService", "Document copied", map[string]interface{}{
		"user_id": user.Id,
		"format":  format,
		"length":  len(text),
	})

	return &dto.CopyDocumentResponse{Text: text, Format: format}, nil
}
