package consult

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/sb-tools/merchant-lens/pkg/adapters"
	"github.com/sb-tools/merchant-lens/pkg/models/api"
	"github.com/sb-tools/merchant-lens/pkg/models/domain"
	"github.com/sb-tools/merchant-lens/pkg/services/consult"
	"github.com/sb-tools/merchant-lens/pkg/services/intent"
	"github.com/sb-tools/merchant-lens/pkg/services/report"
	"github.com/sb-tools/merchant-lens/pkg/store/dataset"
)

type Handler struct {
	consultant consult.Consultant
}

func NewHandler(consultant consult.Consultant) *Handler {
	return &Handler{
		consultant: consultant,
	}
}

func (h *Handler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.ConsultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	consultation, err := h.consultant.Consult(ctx, req.Question, req.WithNarrative)
	if err != nil {
		writeConsultError(w, logger, err)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapConsultationDomainToApi(consultation)); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode consultation")
	}
}

func (h *Handler) GetMerchant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "merchant")

	merchant, err := h.consultant.MerchantInfo(ctx, id)
	if err != nil {
		writeConsultError(w, logger, err)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapMerchantDomainToApi(merchant)); err != nil {
		logger.Error().
			Err(err).
			Str("merchant", id).
			Msg("failed to encode merchant")
	}
}

func (h *Handler) GetMerchantReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "merchant")

	tag := domain.IntentCustomerPersona
	if v := r.URL.Query().Get("intent"); v != "" {
		tag = domain.Intent(v)
		if !tag.Valid() {
			http.Error(w, "unknown intent: "+v, http.StatusBadRequest)
			return
		}
	}

	sections, err := h.consultant.MerchantReport(ctx, id, tag)
	if err != nil {
		writeConsultError(w, logger, err)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapSectionsDomainToApi(sections)); err != nil {
		logger.Error().
			Err(err).
			Str("merchant", id).
			Msg("failed to encode report")
	}
}

func (h *Handler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	id := chi.URLParam(r, "merchant")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	consultations, err := h.consultant.History(ctx, id, limit)
	if err != nil {
		writeConsultError(w, logger, err)
		return
	}

	response := make([]api.Consultation, 0, len(consultations))
	for _, c := range consultations {
		response = append(response, adapters.MapConsultationDomainToApi(c))
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().
			Err(err).
			Str("merchant", id).
			Msg("failed to encode consultations")
	}
}

// writeConsultError maps pipeline errors onto HTTP statuses: a question
// without a merchant id is the caller's fault, an unknown merchant is a
// missing resource, everything else is internal.
func writeConsultError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var assembly *report.AssemblyError

	switch {
	case errors.Is(err, intent.ErrNoMerchantID):
		http.Error(w, "merchant id not found in question", http.StatusBadRequest)
	case errors.Is(err, dataset.ErrMerchantNotFound):
		http.Error(w, "merchant not found", http.StatusNotFound)
	case errors.As(err, &assembly):
		logger.Error().Err(err).Msg("report assembly failed")
		http.Error(w, "failed to assemble report", http.StatusInternalServerError)
	default:
		logger.Error().Err(err).Msg("consultation failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
