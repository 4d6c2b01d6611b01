package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "crypto-dashboard-service/internal/docs"
	"crypto-dashboard-service/internal/logger"
	"crypto-dashboard-service/internal/model"
	"crypto-dashboard-service/internal/prefs"
	"crypto-dashboard-service/internal/timerange"
)

// DashboardService defines the service operations the handler needs.
type DashboardService interface {
	UpdateDashboard(ctx context.Context, query model.RangeQuery) (*model.Dashboard, error)
	Current() *model.Dashboard
}

// Options carries the handler's collaborators and defaults.
type Options struct {
	Service     DashboardService
	Resolver    *timerange.Resolver
	Themes      prefs.ThemeStore
	WSHandler   http.HandlerFunc
	DefaultCoin string
	DefaultDays int
}

// DashboardHandler handles HTTP requests for the dashboard API.
type DashboardHandler struct {
	service     DashboardService
	resolver    *timerange.Resolver
	themes      prefs.ThemeStore
	wsHandler   http.HandlerFunc
	defaultCoin string
	defaultDays int
}

// errorResponse is the JSON error body surfaced to the user.
type errorResponse struct {
	Error string `json:"error"`
}

// coinInfo is one entry of the coin list response.
type coinInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// coinsResponse lists the coins the dashboard can display.
type coinsResponse struct {
	Coins []coinInfo `json:"coins"`
}

// themeResponse carries the persisted theme preference.
type themeResponse struct {
	Theme string `json:"theme"`
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(opts Options) *DashboardHandler {
	return &DashboardHandler{
		service:     opts.Service,
		resolver:    opts.Resolver,
		themes:      opts.Themes,
		wsHandler:   opts.WSHandler,
		defaultCoin: opts.DefaultCoin,
		defaultDays: opts.DefaultDays,
	}
}

// HandleDashboard handles GET /api/v1/dashboard.
//
// @Summary      Update and return the dashboard
// @Description  Resolves the requested range (preset day count or explicit dates), fetches the price series (cache first) and returns summary, chart and table payloads.
// @Tags         dashboard
// @Produce      json
// @Param        coin  query  string  false  "Coin identifier (default from configuration)"
// @Param        days  query  int     false  "Preset range: number of days ending now"
// @Param        from  query  string  false  "Custom range start date (YYYY-MM-DD)"
// @Param        to    query  string  false  "Custom range end date (YYYY-MM-DD), fully included"
// @Success      200  {object}  model.Dashboard
// @Failure      400  {object}  handler.errorResponse
// @Failure      404  {object}  handler.errorResponse
// @Failure      502  {object}  handler.errorResponse
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query, err := h.resolveQuery(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	dashboard, err := h.service.UpdateDashboard(ctx, query)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, dashboard)
}

// HandleCurrentDashboard handles GET /api/v1/dashboard/current.
//
// @Summary      Return the last committed dashboard
// @Description  Returns the most recent successful dashboard snapshot. Failed or empty updates never clear it.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  model.Dashboard
// @Failure      404  {object}  handler.errorResponse
// @Router       /api/v1/dashboard/current [get]
func (h *DashboardHandler) HandleCurrentDashboard(w http.ResponseWriter, r *http.Request) {
	current := h.service.Current()
	if current == nil {
		h.writeError(w, http.StatusNotFound, "no dashboard has been rendered yet")
		return
	}
	h.writeJSON(w, http.StatusOK, current)
}

// HandleCoins handles GET /api/v1/coins.
//
// @Summary      List supported coins
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  handler.coinsResponse
// @Router       /api/v1/coins [get]
func (h *DashboardHandler) HandleCoins(w http.ResponseWriter, r *http.Request) {
	ids := model.SupportedCoinIDs()
	coins := make([]coinInfo, 0, len(ids))
	for _, id := range ids {
		coins = append(coins, coinInfo{ID: id, Name: model.SupportedCoins[id]})
	}
	h.writeJSON(w, http.StatusOK, coinsResponse{Coins: coins})
}

// HandleGetTheme handles GET /api/v1/preferences/theme.
//
// @Summary      Get the persisted theme preference
// @Tags         preferences
// @Produce      json
// @Success      200  {object}  handler.themeResponse
// @Router       /api/v1/preferences/theme [get]
func (h *DashboardHandler) HandleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.themes.GetTheme(r.Context())
	if err != nil {
		logger.GetLogger().WithField("error", err.Error()).Error("Failed to read theme preference")
		h.writeError(w, http.StatusInternalServerError, "failed to read theme preference")
		return
	}
	h.writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
}

// HandleSetTheme handles PUT /api/v1/preferences/theme.
//
// @Summary      Persist the theme preference
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        body  body  handler.themeResponse  true  "light or dark"
// @Success      200  {object}  handler.themeResponse
// @Failure      400  {object}  handler.errorResponse
// @Router       /api/v1/preferences/theme [put]
func (h *DashboardHandler) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	var body themeResponse
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.themes.SetTheme(r.Context(), body.Theme); err != nil {
		if errors.Is(err, prefs.ErrInvalidTheme) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.GetLogger().WithField("error", err.Error()).Error("Failed to persist theme preference")
		h.writeError(w, http.StatusInternalServerError, "failed to persist theme preference")
		return
	}

	h.writeJSON(w, http.StatusOK, themeResponse{Theme: body.Theme})
}

// HandleHealth handles GET /health.
//
// @Summary      Health check
// @Tags         monitoring
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *DashboardHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// resolveQuery turns request parameters into a RangeQuery. A days
// parameter selects preset mode; a from/to pair selects custom mode;
// neither falls back to the configured default preset.
func (h *DashboardHandler) resolveQuery(r *http.Request) (model.RangeQuery, error) {
	params := r.URL.Query()

	coinID := params.Get("coin")
	if coinID == "" {
		coinID = h.defaultCoin
	}

	if daysStr := params.Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			return model.RangeQuery{}, model.InvalidRangeError("invalid day count: " + daysStr)
		}
		return h.resolver.Preset(coinID, days)
	}

	fromStr := params.Get("from")
	toStr := params.Get("to")
	if fromStr != "" || toStr != "" {
		return h.resolver.ParseCustom(coinID, fromStr, toStr)
	}

	return h.resolver.Preset(coinID, h.defaultDays)
}

// writeServiceError maps service errors onto the spec's taxonomy:
// InvalidRange to 400, EmptyResult to 404, FetchFailure to 502.
func (h *DashboardHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var fetchErr *model.FetchError

	switch {
	case errors.Is(err, model.ErrInvalidRange):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNoData):
		h.writeError(w, http.StatusNotFound, model.ErrNoData.Error())
	case errors.As(err, &fetchErr):
		h.writeError(w, http.StatusBadGateway, "failed to fetch price data from upstream")
	default:
		logger.GetLogger().WithFields(map[string]interface{}{
			"request_id": logger.GetRequestID(ctx),
			"error":      err.Error(),
			"event":      "dashboard_error",
		}).Error("Unexpected dashboard update failure")
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *DashboardHandler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.GetLogger().WithField("error", err.Error()).Error("Failed to encode response")
	}
}

func (h *DashboardHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}

// SetupRoutes registers all routes on the router.
func (h *DashboardHandler) SetupRoutes(r *mux.Router) {
	// API endpoints
	r.HandleFunc("/api/v1/dashboard", h.HandleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/dashboard/current", h.HandleCurrentDashboard).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/coins", h.HandleCoins).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/preferences/theme", h.HandleGetTheme).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/preferences/theme", h.HandleSetTheme).Methods(http.MethodPut)
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)

	// Live updates
	if h.wsHandler != nil {
		r.HandleFunc("/ws", h.wsHandler)
	}

	// Monitoring endpoints
	r.Handle("/metrics", promhttp.Handler())

	// Documentation endpoints
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.HandleFunc("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
}

// corsMiddleware adds CORS headers so the browser dashboard can call the
// API from any origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// BuildHandler assembles the router with the middleware chain applied.
func BuildHandler(h *DashboardHandler, extra ...func(http.Handler) http.Handler) http.Handler {
	router := mux.NewRouter()
	h.SetupRoutes(router)

	var handler http.Handler = router
	handler = corsMiddleware(handler)
	for _, m := range extra {
		handler = m(handler)
	}
	return handler
}
