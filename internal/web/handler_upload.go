package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/vbonduro/shoplist/internal/domain"
)

// Multipart parts above this size spill to temporary files.
const multipartMemory = 8 << 20

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte("\xD0\xCF\x11\xE0\xA1\xB1\x1A\xE1")
)

// spreadsheetKind checks that the upload's content agrees with its extension
// and returns the extension. XLSX files are zip archives and XLS files are
// OLE2 compound documents; CSV must sniff as text.
func spreadsheetKind(filename string, data []byte) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return ext, bytes.HasPrefix(data, zipMagic)
	case ".xls":
		return ext, bytes.HasPrefix(data, oleMagic)
	case ".csv", ".txt":
		if len(data) == 0 {
			return ext, false
		}
		return ext, strings.HasPrefix(http.DetectContentType(data), "text/")
	default:
		return "", false
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, err)
			return
		}
		s.writeError(w, r, fmt.Errorf("failed to parse form: %v: %w", err, domain.ErrInvalidInput))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, fmt.Errorf("file is required: %w", domain.ErrInvalidInput))
		return
	}
	defer closeWithLog(file, "upload file", s.logger)

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	if _, ok := spreadsheetKind(header.Filename, data); !ok {
		s.writeError(w, r, fmt.Errorf("unsupported spreadsheet %q: %w", header.Filename, domain.ErrInvalidInput))
		return
	}

	sum, err := s.importer.Import(r.Context(), owner(r), bytes.NewReader(data), header.Filename)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.importer.Export(r.Context(), owner(r), &buf); err != nil {
		s.writeError(w, r, err)
		return
	}

	name := fmt.Sprintf("shopping-list-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("write export failed", "error", err)
	}
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
