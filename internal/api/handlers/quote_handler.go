package handlers

import (
	"net/http"

	"github.com/Bukassi600104/ultraclean/backend/internal/application/services"
	"github.com/Bukassi600104/ultraclean/backend/internal/domain/entities"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
)

// QuoteHandler serves the instant price calculator
type QuoteHandler struct {
	metrics *observability.Metrics
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(metrics *observability.Metrics) *QuoteHandler {
	return &QuoteHandler{metrics: metrics}
}

type quoteResponse struct {
	Price   entities.QuoteResult `json:"price"`
	Status  entities.QuoteStatus `json:"status"`
	Display string               `json:"display"`
}

// CalculateQuote handles POST /api/quotes
func (h *QuoteHandler) CalculateQuote(w http.ResponseWriter, r *http.Request) {
	var selection entities.QuoteSelection
	if err := decodeJSON(w, r, &selection); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result := services.CalculateQuote(selection)
	services.RecordQuoteOutcome(r.Context(), h.metrics, selection, result)

	respondWithJSON(w, http.StatusOK, quoteResponse{
		Price:   result,
		Status:  result.Status(),
		Display: result.Display(),
	})
}

// GetOptions handles GET /api/quotes/options
func (h *QuoteHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, services.QuoteOptions())
}
