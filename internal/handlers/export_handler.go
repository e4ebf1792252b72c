package handlers

import (
	"fmt"
	"net/http"

	"fishplant-backend/internal/services"
	"fishplant-backend/internal/timeutil"
)

type ExportHandler struct {
	Service *services.ExportService
}

func NewExportHandler(s *services.ExportService) *ExportHandler {
	return &ExportHandler{Service: s}
}

func (h *ExportHandler) MonthCSV(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = timeutil.ThisMonth()
	}

	data, err := h.Service.MonthCSV(r.Context(), month)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="records_%s.csv"`, month))
	w.Write(data)
}

func (h *ExportHandler) MonthPDF(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = timeutil.ThisMonth()
	}

	data, err := h.Service.MonthPDF(r.Context(), month)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="records_%s.pdf"`, month))
	w.Write(data)
}
