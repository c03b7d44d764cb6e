package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jobfinder/internal/common"
)

const MaxResumeSize = 5 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ResumeStore saves uploaded resumes to disk under <baseDir>/resumes and
// returns the public URL path they are served from.
type ResumeStore struct {
	baseDir string
}

func NewResumeStore(baseDir string) (*ResumeStore, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("storage base dir is required")
	}
	if err := os.MkdirAll(filepath.Join(baseDir, "resumes"), 0o755); err != nil {
		return nil, fmt.Errorf("create resumes dir: %w", err)
	}
	return &ResumeStore{baseDir: baseDir}, nil
}

// BaseDir is the directory served under /uploads.
func (s *ResumeStore) BaseDir() string {
	return s.baseDir
}

func (s *ResumeStore) Save(ownerID common.UUID, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !allowedExtensions[ext] {
		return "", common.NewValidationError("only pdf, doc, or docx resumes are allowed", map[string]string{"resume": "unsupported file type"})
	}
	name := fmt.Sprintf("%s-%d%s", ownerID, time.Now().UnixNano(), ext)
	target := filepath.Join(s.baseDir, "resumes", name)

	out, err := os.Create(target)
	if err != nil {
		return "", common.NewError(common.CodeInternal, "failed to store resume", err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.LimitReader(r, MaxResumeSize+1))
	if err != nil {
		_ = os.Remove(target)
		return "", common.NewError(common.CodeInternal, "failed to store resume", err)
	}
	if written > MaxResumeSize {
		_ = os.Remove(target)
		return "", common.NewValidationError("resume exceeds the 5MB limit", map[string]string{"resume": "file too large"})
	}
	return "/uploads/resumes/" + name, nil
}
