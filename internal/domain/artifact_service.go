package domain

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/ports"
)

const DocxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type artifactService struct {
	client ports.S3Client
	now    func() time.Time
	log    *zap.SugaredLogger
}

func NewArtifactService(client ports.S3Client, log *zap.SugaredLogger) ports.ArtifactService {
	return &artifactService{client: client, now: time.Now, log: log}
}

// ObjectKey is filled/<session>/<date>/<uuid>-<file>.
func (s *artifactService) ObjectKey(sessionID, filename string) string {
	date := s.now().Format("2006-01-02")
	clean := filepath.Base(filename)
	return fmt.Sprintf("filled/%s/%s/%s-%s", sessionID, date, uuid.NewString(), clean)
}

func (s *artifactService) SaveFilled(ctx context.Context, sessionID, filename string, data []byte) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("sessionID required")
	}

	key := s.ObjectKey(sessionID, filename)
	url, err := s.client.PutObject(ctx, key, bytes.NewReader(data), int64(len(data)), DocxContentType)
	if err != nil {
		s.log.Warnw("[artifact] upload fail", "session", sessionID, "key", key, "error", err)
		return "", err
	}

	s.log.Infow("[artifact] uploaded", "session", sessionID, "key", key, "bytes", len(data))
	return url, nil
}
