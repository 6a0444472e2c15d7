package file

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/domain/biometric"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, limit int64) FileService {
	t.Helper()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)
	return NewFileService(local, limit)
}

func TestUploadAndReadWorkbook(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 1024)

	path, err := svc.UploadWorkbook(ctx, "company-1", strings.NewReader("PK fake workbook"), "Marzo.XLSX")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "biometric/company-1/"))
	assert.True(t, strings.HasSuffix(path, ".xlsx"))

	data, err := svc.ReadWorkbook(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "PK fake workbook", string(data))

	url, err := svc.GetFileURL(ctx, path, 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/uploads/"+path, url)

	require.NoError(t, svc.DeleteWorkbook(ctx, path))
	_, err = svc.ReadWorkbook(ctx, path)
	assert.ErrorIs(t, err, biometric.ErrStoredFileMissing)

	assert.ErrorIs(t, svc.DeleteWorkbook(ctx, path), biometric.ErrStoredFileMissing, "already deleted")
	assert.ErrorIs(t, svc.DeleteWorkbook(ctx, "../secrets.xlsx"), biometric.ErrStoredFileMissing)
}

func TestWorkbookContentType(t *testing.T) {
	assert.Equal(t, "application/vnd.ms-excel", WorkbookContentType("biometric/c/a.XLS"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", WorkbookContentType("a.xlsx"))
	assert.Equal(t, "application/octet-stream", WorkbookContentType("a.bin"))
}

func TestUploadWorkbook_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 4)

	_, err := svc.UploadWorkbook(ctx, "company-1", strings.NewReader("x"), "export.pdf")
	assert.ErrorIs(t, err, biometric.ErrInvalidFileType)

	_, err = svc.UploadWorkbook(ctx, "company-1", strings.NewReader("too large"), "export.xls")
	assert.ErrorIs(t, err, biometric.ErrFileTooLarge)
}

func TestReadWorkbook_InvalidPath(t *testing.T) {
	svc := newTestService(t, 0)
	_, err := svc.ReadWorkbook(context.Background(), "../secrets.xlsx")
	assert.ErrorIs(t, err, biometric.ErrStoredFileMissing)
}

func TestReadLimited(t *testing.T) {
	data, err := ReadLimited(strings.NewReader("abcd"), 4)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(data))

	_, err = ReadLimited(strings.NewReader("abcde"), 4)
	assert.ErrorIs(t, err, biometric.ErrFileTooLarge)

	data, err = ReadLimited(strings.NewReader("abcde"), 0)
	require.NoError(t, err)
	assert.Len(t, data, 5)
}

func TestPurgeExpiredUploads(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 0)

	path, err := svc.UploadWorkbook(ctx, "company-1", strings.NewReader("PK"), "a.xlsx")
	require.NoError(t, err)

	removed, err := svc.PurgeExpiredUploads(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, removed, "zero retention keeps everything")

	removed, err = svc.PurgeExpiredUploads(ctx, time.Hour)
	require.NoError(t, err)
	assert.Zero(t, removed, "fresh uploads are kept")

	svc.(*fileServiceImpl).now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	removed, err = svc.PurgeExpiredUploads(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = svc.ReadWorkbook(ctx, path)
	assert.ErrorIs(t, err, biometric.ErrStoredFileMissing)
}
