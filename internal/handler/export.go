package handler

import (
	"net/http"
	"strconv"
)

// GetPreview handles GET /preview: the formatted read-only rendering of
// the current document, as plain text.
func (s *Server) GetPreview(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	preview, err := s.trips.Preview(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(preview))
}

// GetExport handles GET /export: the current document rendered to a
// paginated A4 PDF. The service saves the document before capturing, so
// the downloaded file always matches the persisted preview.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	id, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	pdf, filename, err := s.trips.Export(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
