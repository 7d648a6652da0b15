package controllers

import (
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/threecat/bonus-service/internal/dtos"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/services"
	"github.com/threecat/bonus-service/internal/utils"
)

const maxOrderUploadBytes = 32 << 20

type OrderController struct {
	pipeline *services.PipelineService
}

func NewOrderController(pipeline *services.PipelineService) *OrderController {
	return &OrderController{pipeline: pipeline}
}

// POST /api/v1/orders/upload
//
// Accepts the POS order export either as a multipart "file" part or as
// a raw text/csv body.
func (c *OrderController) UploadOrdersHandler(w http.ResponseWriter, r *http.Request) {
	reader, closeFn, err := orderUploadReader(r)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Could not read order export upload", nil, err)
		return
	}
	defer closeFn()

	accepted, dropped, err := c.pipeline.IngestOrders(r.Context(), reader)
	if err != nil {
		if errors.Is(err, utils.ErrNoOrderData) {
			utils.RespondErrorWithCode(w, http.StatusUnprocessableEntity, utils.ErrCodeNoData, "No valid order rows found in the upload", map[string]int{"dropped": dropped})
			return
		}
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to ingest order export", nil, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.OrderUploadResponse{
		Accepted: accepted,
		Dropped:  dropped,
		Totals:   totalsToDTO(c.pipeline.OrderTotals()),
	})
}

// GET /api/v1/orders/summary
func (c *OrderController) GetOrderSummaryHandler(w http.ResponseWriter, r *http.Request) {
	accepted, dropped := c.pipeline.OrderCounts()
	utils.RespondWithJSON(w, http.StatusOK, dtos.OrderSummaryResponse{
		Accepted: accepted,
		Dropped:  dropped,
		Totals:   totalsToDTO(c.pipeline.OrderTotals()),
	})
}

func orderUploadReader(r *http.Request) (io.Reader, func(), error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxOrderUploadBytes); err != nil {
			return nil, func() {}, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, func() {}, err
		}
		return file, func() { _ = file.Close() }, nil
	}
	return http.MaxBytesReader(nil, r.Body, maxOrderUploadBytes), func() {}, nil
}

func totalsToDTO(totals models.ShiftBucketTotals) []dtos.ShiftDrinkCountDTO {
	out := make([]dtos.ShiftDrinkCountDTO, 0, len(totals))
	for date, counts := range totals {
		out = append(out, dtos.ShiftDrinkCountDTO{Date: date, Morning: counts.Morning, Night: counts.Night})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
