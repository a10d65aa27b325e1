package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Ning0612/apkrepack/internal/domain"
	"github.com/Ning0612/apkrepack/internal/progress"
)

// Writer is the built-in archiver
//
// Unlike the external archivers it consumes the assembly plan
// entry-by-entry, so STORE/DEFLATE decisions and entry order are
// exactly what the policy computed.
type Writer struct {
	reporter progress.Reporter
}

// NewWriter creates a built-in ZIP archiver
// reporter may be nil
func NewWriter(reporter progress.Reporter) *Writer {
	if reporter == nil {
		reporter = progress.NullReporter{}
	}
	return &Writer{reporter: reporter}
}

// Archive implements the tool.Archiver interface
func (w *Writer) Archive(ctx context.Context, plan *domain.PackPlan, outputPath string) error {
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}

	zw := zip.NewWriter(out)
	w.reporter.SetTotal(plan.Stats.TotalFiles, plan.Stats.TotalBytes)

	for _, entry := range plan.Entries {
		select {
		case <-ctx.Done():
			zw.Close()
			out.Close()
			os.Remove(outputPath)
			return ctx.Err()
		default:
		}

		if err := w.writeEntry(zw, entry); err != nil {
			w.reporter.Error(err)
			zw.Close()
			out.Close()
			os.Remove(outputPath)
			return fmt.Errorf("writing %s: %w", entry.ArchiveName, err)
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return out.Close()
}

// writeEntry copies one file into the archive with its planned method
func (w *Writer) writeEntry(zw *zip.Writer, entry domain.FileEntry) error {
	src, err := os.Open(entry.SourcePath)
	if err != nil {
		return err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return err
	}

	header := &zip.FileHeader{
		Name:     entry.ArchiveName,
		Modified: info.ModTime(),
	}
	header.SetMode(info.Mode().Perm())

	switch entry.Method {
	case domain.Store:
		header.Method = zip.Store
	default:
		header.Method = zip.Deflate
	}

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	w.reporter.Start(entry.ArchiveName, info.Size())
	if _, err := io.Copy(progress.NewWriter(dst, w.reporter), src); err != nil {
		return err
	}
	w.reporter.Complete()
	return nil
}
