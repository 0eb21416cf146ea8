package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sahiljoster32/stock-monitor-backend/internal/domain/dto"
	"github.com/sahiljoster32/stock-monitor-backend/internal/marketdata"
	"github.com/sahiljoster32/stock-monitor-backend/internal/middleware"
	"github.com/sahiljoster32/stock-monitor-backend/internal/service"
	"github.com/sahiljoster32/stock-monitor-backend/internal/storage"
)

// WatchListHandler serves symbols data for authenticated users.
//
// Responsibilities:
//   - Validate the symbols body before any market-data call is made
//   - Translate the aggregation into the 200 body, or the 429 quota note
//   - Map upstream failures to 502 and everything else to 500
type WatchListHandler struct {
	svc        service.WatchListService
	maxSymbols int
}

// NewWatchListHandler constructs a WatchListHandler. maxSymbols bounds one request.
func NewWatchListHandler(svc service.WatchListService, maxSymbols int) *WatchListHandler {
	return &WatchListHandler{svc: svc, maxSymbols: maxSymbols}
}

// FetchSymbolsData handles POST /api/v1/watch-list/symbols-data.
//
// FetchSymbolsData godoc
// @Summary      Fetch symbols data
// @Description  Returns the latest prices and candlestick series of each symbol and saves the symbols that had data as the user's watch list.
// @Description  Unknown symbols are left out. When the market-data quota is exhausted only a note is returned and the watch list is not changed.
// @Tags         watch-list
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      dto.SymbolsRequest           true  "Symbols to fetch"
// @Success      200   {object}  dto.SymbolsDataResponse      "Success"
// @Failure      400   {object}  dto.ErrorResponse            "Validation failed"
// @Failure      401   {object}  dto.ErrorResponse            "Unauthenticated"
// @Failure      429   {object}  dto.QuotaExceededResponse    "Market-data quota exhausted"
// @Failure      502   {object}  dto.ErrorResponse            "Market-data provider unreachable"
// @Failure      500   {object}  dto.ErrorResponse            "Internal Error"
// @Router       /api/v1/watch-list/symbols-data [post]
func (h *WatchListHandler) FetchSymbolsData(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.AbortWithError(c, http.StatusUnauthorized, "Authentication credentials were not provided.", nil)
		return
	}

	var req dto.SymbolsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(bindingErrors(err)))
		return
	}
	if h.maxSymbols > 0 && len(req.Symbols) > h.maxSymbols {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(map[string][]string{
			nonFieldErrors: {fmt.Sprintf("Only limit of %d symbols is allowed due to free subscription of `alpha avantage`.", h.maxSymbols)},
		}))
		return
	}

	agg, err := h.svc.FetchSymbolsData(c.Request.Context(), userID, req.Symbols)
	switch {
	case errors.Is(err, marketdata.ErrTransport):
		middleware.AbortWithError(c, http.StatusBadGateway, "market-data provider unavailable", err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch symbols data", err)
		return
	}

	if agg.RateLimited {
		c.JSON(http.StatusTooManyRequests, dto.QuotaExceededResponse{Note: agg.Note})
		return
	}

	c.JSON(http.StatusOK, dto.SymbolsDataResponse{
		Symbols:              agg.Symbols,
		Values:               agg.Values,
		LatestPrices:         agg.LatestPrices,
		CandleStickGraphData: agg.CandleStickGraphData,
	})
}

// GetWatchList handles GET /api/v1/watch-list.
//
// GetWatchList godoc
// @Summary      Get the saved watch list
// @Tags         watch-list
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  dto.WatchListResponse  "Success"
// @Failure      401  {object}  dto.ErrorResponse      "Unauthenticated"
// @Failure      404  {object}  dto.ErrorResponse      "Not Found"
// @Failure      500  {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/watch-list [get]
func (h *WatchListHandler) GetWatchList(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		middleware.AbortWithError(c, http.StatusUnauthorized, "Authentication credentials were not provided.", nil)
		return
	}

	symbols, err := h.svc.GetSymbols(c.Request.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("watch list not found", nil))
		return
	}
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to load watch list", err)
		return
	}
	c.JSON(http.StatusOK, dto.WatchListResponse{Symbols: symbols})
}
