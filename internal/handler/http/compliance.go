package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prolyhq/payroll-backend-go/internal/domain/compliance"
	"github.com/prolyhq/payroll-backend-go/internal/handler/http/response"
)

// maxRateTableUploadBytes caps multipart parsing for rate table uploads.
const maxRateTableUploadBytes = 10 << 20

type ComplianceHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
}

type complianceHandlerImpl struct {
	complianceService compliance.ComplianceService
}

func NewComplianceHandler(complianceService compliance.ComplianceService) ComplianceHandler {
	return &complianceHandlerImpl{complianceService: complianceService}
}

func (h *complianceHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxRateTableUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Rate table file is required", nil)
		return
	}
	defer file.Close()

	req := compliance.UploadRateTableRequest{
		Type:          r.FormValue("type"),
		Name:          r.FormValue("name"),
		EffectiveFrom: r.FormValue("effective_from"),
	}

	result, err := h.complianceService.Upload(r.Context(), req, header.Filename, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Rate table uploaded", result)
}

func (h *complianceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	typ := chi.URLParam(r, "type")

	result, err := h.complianceService.History(r.Context(), typ)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *complianceHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	grossPay := r.URL.Query().Get("gross_pay")
	asOf := r.URL.Query().Get("as_of")

	result, err := h.complianceService.Preview(r.Context(), grossPay, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
