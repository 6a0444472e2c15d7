package cron

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/pkg/storage"
	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRetentionJob(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	local, err := storage.NewLocalStorage(base, "")
	require.NoError(t, err)
	fileService := file.NewFileService(local, 0)

	stale, err := fileService.UploadWorkbook(ctx, "company-1", strings.NewReader("PK"), "old.xlsx")
	require.NoError(t, err)
	kept, err := fileService.UploadWorkbook(ctx, "company-1", strings.NewReader("PK"), "new.xlsx")
	require.NoError(t, err)

	past := time.Now().Add(-72 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(base, stale), past, past))

	job := UploadRetentionJob(fileService, 24*time.Hour, time.Hour)
	assert.Equal(t, "upload_retention", job.Name)
	assert.Equal(t, 30*time.Minute, job.Timeout)
	require.NoError(t, job.Fn(ctx))

	ok, err := local.Exists(ctx, stale)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = local.Exists(ctx, kept)
	require.NoError(t, err)
	assert.True(t, ok)
}
