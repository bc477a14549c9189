package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/terraincognita07/habitfeed/internal/legacy"
	"github.com/terraincognita07/habitfeed/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunImportLegacy copies the legacy database at sourcePath into target and prints a summary.
func RunImportLegacy(ctx context.Context, sourcePath string, photoDir string, target *gorm.DB, photos services.PhotoStore, logger *zap.Logger, out io.Writer) error {
	source, err := legacy.OpenSource(sourcePath)
	if err != nil {
		return err
	}
	if sqlDB, err := source.DB(); err == nil {
		defer sqlDB.Close()
	}

	report, err := legacy.NewImporter(source, target, photos, photoDir, logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("import legacy data: %w", err)
	}

	fmt.Fprintf(out, "Imported %d users, %d habits, %d subscriptions, %d news, %d comments (%d links), %d photos\n",
		report.Users, report.Habits, report.Subscriptions, report.News, report.Comments, report.CommentLinks, report.Photos)
	if report.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d rows or references, see the log for details\n", report.Skipped)
	}
	return nil
}
