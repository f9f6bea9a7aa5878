package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"afisha/internal/config"
	"afisha/internal/ids"
	"afisha/internal/storage"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrMissingFile         = errors.New("missing file")
)

type UploadService struct {
	store   storage.PosterStore
	allowed map[string]struct{}
	log     zerolog.Logger
}

func NewUploadService(store storage.PosterStore, cfg config.UploadConfig, log zerolog.Logger) *UploadService {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
	}

	return &UploadService{
		store:   store,
		allowed: allowed,
		log:     log,
	}
}

// Accept validates the filename against the extension allow-list, writes the
// bytes through the poster store and returns the public reference. Stored
// names get a ksuid prefix so a re-upload of the same filename never
// clobbers an earlier poster.
func (s *UploadService) Accept(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	ext, ok := s.allowedExtension(filename)
	if !ok {
		return "", ErrUnsupportedFileType
	}

	name := fmt.Sprintf("%s_%s", ids.New(), sanitizeFilename(filename))

	contentType := mime.TypeByExtension("." + ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ref, err := s.store.Save(ctx, name, r, size, contentType)
	if err != nil {
		return "", fmt.Errorf("store poster: %w", err)
	}

	s.log.Debug().Str("name", name).Str("ref", ref).Msg("poster stored")
	return ref, nil
}

func (s *UploadService) allowedExtension(filename string) (string, bool) {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return "", false
	}
	ext := strings.ToLower(filename[idx+1:])
	_, ok := s.allowed[ext]
	return ext, ok
}

// sanitizeFilename strips any path components and reduces the base name to a
// safe character set.
func sanitizeFilename(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
