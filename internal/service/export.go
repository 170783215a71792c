package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"docdesk/internal/domain"
	"docdesk/internal/metrics"
	"docdesk/internal/port"
	"docdesk/internal/xlsxexport"
)

// ExportResult describes a written export.
type ExportResult struct {
	Filename string
	Key      string
	Location string
	Size     int64
	// Detailed is the number of documents that got their own sheet.
	Detailed int
	Count    int
}

// ExportDocument writes a single-sheet workbook for doc to the export sink.
func (s *deskService) ExportDocument(ctx context.Context, doc *domain.Document) (*ExportResult, error) {
	if doc == nil {
		s.notify(domain.SeverityWarning, "Please generate a document first")
		return nil, domain.ErrNoCurrentDocument
	}
	started := time.Now()
	now := s.settings.Now()

	f, err := s.exporter.ExportOne(doc, now)
	if err != nil {
		return nil, s.exportFailed("ExportDocument", "export_one", doc.Kind, "Error creating Excel file", err)
	}
	filename := xlsxexport.BuildFilename(doc.Kind, doc.DocumentNo, now)
	res, err := s.write(ctx, f, xlsxexport.ObjectKey(s.settings.ExportKeyPrefix, doc.CompanyName, filename))
	if err != nil {
		return nil, s.exportFailed("ExportDocument", "export_one", doc.Kind, "Error creating Excel file", err)
	}
	res.Filename = filename
	res.Count, res.Detailed = 1, 1

	s.metrics.ObserveExport("one", started)
	s.metrics.Observe("export_one", doc.Kind, metrics.OutcomeOK)
	s.notify(domain.SeveritySuccess, "Excel file downloaded successfully!")
	return res, nil
}

// ExportAll writes the whole collection of kind as a summary workbook.
func (s *deskService) ExportAll(ctx context.Context, kind domain.DocumentKind) (*ExportResult, error) {
	if err := checkKind("ExportAll", kind); err != nil {
		return nil, err
	}
	docs, err := s.docRepo.All(ctx, kind)
	if err != nil {
		return nil, s.exportFailed("ExportAll", "export_all", kind, "Error exporting data to Excel", err)
	}
	if len(docs) == 0 {
		s.notify(domain.SeverityWarning, "No %ss to export", kind)
		return nil, domain.ErrNothingToExport
	}
	started := time.Now()
	now := s.settings.Now()

	f, err := s.exporter.ExportAll(kind, docs, now)
	if err != nil {
		return nil, s.exportFailed("ExportAll", "export_all", kind, "Error exporting data to Excel", err)
	}
	filename := xlsxexport.BuildBulkFilename(kind, now)
	res, err := s.write(ctx, f, xlsxexport.ObjectKey(s.settings.ExportKeyPrefix, string(kind)+"s", filename))
	if err != nil {
		return nil, s.exportFailed("ExportAll", "export_all", kind, "Error exporting data to Excel", err)
	}
	res.Filename = filename
	res.Count = len(docs)
	res.Detailed = s.exporter.DetailCount(len(docs))

	s.metrics.ObserveExport("all", started)
	s.metrics.Observe("export_all", kind, metrics.OutcomeOK)
	s.notify(domain.SeveritySuccess, "Exported %d %ss to Excel successfully!", len(docs), kind)
	return res, nil
}

// write serializes f, closes it and uploads the bytes under key. A failed
// upload is followed by a delete of key.
func (s *deskService) write(ctx context.Context, f *excelize.File, key string) (*ExportResult, error) {
	data, err := xlsxexport.Bytes(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w: %v", domain.ErrExport, cerr)
	}
	if err != nil {
		return nil, err
	}

	out, err := s.sink.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: xlsxexport.ContentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		// An interrupted upload may leave a partial object behind.
		if derr := s.sink.Delete(ctx, key); derr != nil {
			s.log.Warn("deskService.write: removing partial upload failed", zap.String("key", key), zap.Error(derr))
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrExport, err)
	}
	return &ExportResult{Key: key, Location: out.Location, Size: int64(len(data))}, nil
}

func (s *deskService) exportFailed(op, metric string, kind domain.DocumentKind, message string, err error) error {
	s.metrics.Observe(metric, kind, metrics.OutcomeError)
	s.log.Error("deskService."+op+": export failed", zap.String("kind", string(kind)), zap.Error(err))
	s.notify(domain.SeverityError, "%s", message)
	if !errors.Is(err, domain.ErrExport) && !errors.Is(err, domain.ErrStorage) {
		err = fmt.Errorf("%w: %v", domain.ErrExport, err)
	}
	return fmt.Errorf("deskService.%s: %w", op, err)
}

// Print renders doc as a PDF for printing.
func (s *deskService) Print(doc *domain.Document) ([]byte, error) {
	if doc == nil {
		s.notify(domain.SeverityWarning, "Please generate a document first")
		return nil, domain.ErrNoCurrentDocument
	}
	out, err := s.printer.Print(doc)
	if err != nil {
		s.log.Error("deskService.Print: rendering failed", zap.String("document_no", doc.DocumentNo), zap.Error(err))
		s.notify(domain.SeverityError, "Error preparing document for print")
		return nil, fmt.Errorf("deskService.Print: %w", err)
	}
	return out, nil
}
