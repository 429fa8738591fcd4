package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rgehrsitz/ngtax/internal/compare"
	"github.com/rgehrsitz/ngtax/internal/config"
	"github.com/rgehrsitz/ngtax/internal/domain"
	"github.com/rgehrsitz/ngtax/internal/output"
	"github.com/rgehrsitz/ngtax/internal/store"
)

const (
	maxBodyBytes = 1 << 20
	defaultLimit = 20
	maxLimit     = 100
	pdfFilename  = "nigeria_pit_comparison.pdf"
)

//go:embed templates/index.html.tmpl
var indexSource string

var indexTemplate = template.Must(template.New("index").Parse(indexSource))

// CompareHandler serves comparison pages and the JSON API
type CompareHandler struct {
	svc *compare.Service
}

func NewCompareHandler(svc *compare.Service) *CompareHandler {
	return &CompareHandler{svc: svc}
}

// compareRequest is the JSON body of POST /api/compare
type compareRequest struct {
	Label string `json:"label,omitempty"`
	domain.TaxInputs
}

// Index handles GET /
func (h *CompareHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		slog.Error("failed to render form", "error", err)
	}
}

// InputsFromForm reads the HTML form fields. Amounts are parsed leniently.
func InputsFromForm(r *http.Request) domain.TaxInputs {
	get := func(name string) string { return r.PostFormValue(name) }
	return domain.TaxInputs{
		AnnualIncome:                config.ParseAmount(get("annual_income")),
		PensionMonthly:              config.ParseAmount(get("pension")),
		VoluntaryPensionMonthly:     config.ParseAmount(get("voluntary_pension")),
		HealthMonthly:               config.ParseAmount(get("health")),
		LifeInsuranceMonthly:        config.ParseAmount(get("life_insurance")),
		RentAnnual:                  config.ParseAmount(get("rent_annual")),
		NHFAnnual:                   config.ParseAmount(get("nhf_annual")),
		NHISAnnual:                  config.ParseAmount(get("nhis_annual")),
		OwnerOccupierInterestAnnual: config.ParseAmount(get("interest_owner_annual")),
	}
}

// CompareForm handles POST / and POST /compare and renders the result page
func (h *CompareHandler) CompareForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.CompareAndSave(r.Context(), r.PostFormValue("label"), InputsFromForm(r))
	if err != nil {
		slog.Error("failed to compare", "error", err)
		http.Error(w, "failed to compute comparison", http.StatusInternalServerError)
		return
	}

	formatter := output.HTMLFormatter{}
	if rec.ID != "" {
		formatter.PDFLink = "/api/records/" + rec.ID + "/pdf"
	}
	page, err := formatter.Format(rec.Result)
	if err != nil {
		slog.Error("failed to render result", "error", err)
		http.Error(w, "failed to render result", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// DownloadPDF handles POST /download_pdf: the same form, rendered as PDF
func (h *CompareHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Compare(r.Context(), InputsFromForm(r))
	if err != nil {
		slog.Error("failed to compare", "error", err)
		http.Error(w, "failed to compute comparison", http.StatusInternalServerError)
		return
	}
	writePDF(w, &result)
}

// CompareAPI handles POST /api/compare
func (h *CompareHandler) CompareAPI(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			ErrorResponse(w, http.StatusBadRequest, "request body is required")
			return
		}
		ErrorResponse(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := config.NewInputParser().ValidateInputs(&req.TaxInputs); err != nil {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.svc.CompareAndSave(r.Context(), req.Label, req.TaxInputs)
	if err != nil {
		slog.Error("failed to compare", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "failed to compute comparison")
		return
	}

	if rec.ID != "" {
		w.Header().Set("Location", "/api/records/"+rec.ID)
		w.Header().Set("X-Record-ID", rec.ID)
	}
	JSONResponse(w, http.StatusOK, rec.Result)
}

// ListRecords handles GET /api/records
func (h *CompareHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			ErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	records, err := h.svc.History(r.Context(), limit)
	if err != nil {
		h.recordError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, records)
}

// GetRecord handles GET /api/records/{id}
func (h *CompareHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Record(r.Context(), r.PathValue("id"))
	if err != nil {
		h.recordError(w, err)
		return
	}
	JSONResponse(w, http.StatusOK, rec)
}

// RecordPDF handles GET /api/records/{id}/pdf
func (h *CompareHandler) RecordPDF(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.Record(r.Context(), r.PathValue("id"))
	if err != nil {
		h.recordError(w, err)
		return
	}
	writePDF(w, rec.Result)
}

func (h *CompareHandler) recordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		ErrorResponse(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, compare.ErrNoStore):
		ErrorResponse(w, http.StatusNotImplemented, err.Error())
	default:
		slog.Error("failed to load records", "error", err)
		ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

func writePDF(w http.ResponseWriter, result *domain.ComparisonResult) {
	data, err := output.PDFFormatter{}.Format(result)
	if err != nil {
		slog.Error("failed to render PDF", "error", err)
		http.Error(w, "failed to render PDF", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdfFilename+`"`)
	w.Write(data)
}
