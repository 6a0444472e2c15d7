package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/herramientasmarketing03-crypto/remix-of-attendance-hub-complete-sub000/internal/service/file"
)

// UploadRetentionJob deletes stored workbooks older than retention.
func UploadRetentionJob(fileService file.FileService, retention, interval time.Duration) Job {
	return Job{
		Name:     "upload_retention",
		Interval: interval,
		Timeout:  interval / 2,
		Fn: func(ctx context.Context) error {
			removed, err := fileService.PurgeExpiredUploads(ctx, retention)
			if err != nil {
				return err
			}
			if removed > 0 {
				slog.Info("Expired uploads removed", "count", removed, "retention", retention)
			}
			return nil
		},
	}
}
