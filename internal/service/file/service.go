package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/storage"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/validator"
)

const workbookRoot = "biometric"

var workbookContentTypes = map[string]string{
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type FileService interface {
	// UploadWorkbook stores a time-clock export under the company's folder and
	// returns its storage key.
	UploadWorkbook(ctx context.Context, companyID string, file io.Reader, filename string) (string, error)

	// ReadWorkbook loads a stored export, refusing files above the upload limit.
	ReadWorkbook(ctx context.Context, path string) ([]byte, error)

	// DeleteWorkbook removes a stored export.
	DeleteWorkbook(ctx context.Context, path string) error

	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// PurgeExpiredUploads removes workbooks stored more than retention ago.
	PurgeExpiredUploads(ctx context.Context, retention time.Duration) (int, error)
}

type fileServiceImpl struct {
	storage       storage.FileStorage
	maxUploadSize int64
	now           func() time.Time
}

func NewFileService(storage storage.FileStorage, maxUploadSize int64) FileService {
	return &fileServiceImpl{
		storage:       storage,
		maxUploadSize: maxUploadSize,
		now:           time.Now,
	}
}

// UploadWorkbook implements FileService.
func (s *fileServiceImpl) UploadWorkbook(ctx context.Context, companyID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := workbookContentTypes[ext]
	if !ok {
		return "", biometric.ErrInvalidFileType
	}

	data, err := ReadLimited(file, s.maxUploadSize)
	if err != nil {
		return "", err
	}

	// biometric/{companyID}/{date}-{uuid}.xlsx
	newFilename := fmt.Sprintf("%s-%s%s", s.now().Format("20060102"), uuid.New().String(), ext)
	path := WorkbookPrefix(companyID) + newFilename

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(data), path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload workbook: %w", err)
	}

	return uploadedPath, nil
}

// ReadWorkbook implements FileService.
func (s *fileServiceImpl) ReadWorkbook(ctx context.Context, path string) ([]byte, error) {
	if !validator.IsValidStoredPath(path) {
		return nil, biometric.ErrStoredFileMissing
	}

	rc, err := s.storage.Download(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) || errors.Is(err, storage.ErrInvalidPath) {
			return nil, biometric.ErrStoredFileMissing
		}
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer rc.Close()

	return ReadLimited(rc, s.maxUploadSize)
}

// DeleteWorkbook implements FileService.
func (s *fileServiceImpl) DeleteWorkbook(ctx context.Context, path string) error {
	if !validator.IsValidStoredPath(path) {
		return biometric.ErrStoredFileMissing
	}

	exists, err := s.storage.Exists(ctx, path)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPath) {
			return biometric.ErrStoredFileMissing
		}
		return fmt.Errorf("failed to check workbook: %w", err)
	}
	if !exists {
		return biometric.ErrStoredFileMissing
	}

	if err := s.storage.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete workbook: %w", err)
	}
	return nil
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

func (s *fileServiceImpl) PurgeExpiredUploads(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, nil
	}
	removed, err := s.storage.PurgeOlderThan(ctx, workbookRoot, s.now().Add(-retention))
	if err != nil {
		return removed, fmt.Errorf("failed to purge expired uploads: %w", err)
	}
	return removed, nil
}

// WorkbookContentType returns the MIME type of an export by its extension.
func WorkbookContentType(filename string) string {
	if contentType, ok := workbookContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return contentType
	}
	return "application/octet-stream"
}

// WorkbookPrefix is the storage folder holding a company's uploads.
func WorkbookPrefix(companyID string) string {
	return workbookRoot + "/" + companyID + "/"
}

// ReadLimited reads r fully, failing with ErrFileTooLarge past limit bytes.
// A non-positive limit disables the check.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, biometric.ErrFileTooLarge
	}
	return data, nil
}
