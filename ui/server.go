// Package ui exposes the analysis and commerce services over a thin HTTP
// surface. Authentication, upload transport and routing policy live outside
// this module; these handlers only decode, dispatch and encode.
package ui

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tablero/app"
	"tablero/domain/core"
	"tablero/domain/tabular"
	"tablero/internal"
	"tablero/internal/errors"
)

// Server wires the chi router over the application services.
type Server struct {
	router   *chi.Mux
	analysis *app.AnalysisService
	overview *app.OverviewService
	sales    *app.SaleSaga
	logger   *internal.Logger
}

// NewServer creates the HTTP server
func NewServer(analysis *app.AnalysisService, overview *app.OverviewService, sales *app.SaleSaga, logger *internal.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		analysis: analysis,
		overview: overview,
		sales:    sales,
		logger:   logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/analysis", s.handleAnalyze)
		r.Post("/datasets/{datasetID}/analysis", s.handleAnalyzeDataset)
		r.Get("/commerce/overview", s.handleOverview)
		r.Get("/commerce/overview/report", s.handleOverviewReport)
		r.Post("/sales", s.handleRegisterSale)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type analyzeRequest struct {
	Rows            []tabular.Row            `json:"rows"`
	DeclaredColumns []tabular.DeclaredColumn `json:"declared_columns,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Validation("invalid analysis request body"))
		return
	}
	result, err := s.analysis.Analyze(req.Rows, req.DeclaredColumns)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeDataset(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseDatasetID(chi.URLParam(r, "datasetID"))
	if err != nil {
		s.writeError(w, errors.Validation(err.Error()))
		return
	}
	// An empty body is fine; ContentLength is -1 on chunked requests, so the
	// decoder decides whether there is a document to read.
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.writeError(w, errors.Validation("invalid analysis request body"))
		return
	}
	result, err := s.analysis.AnalyzeDataset(r.Context(), id, req.DeclaredColumns)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ownerID := core.ID(r.URL.Query().Get("owner_id"))
	organizationID := core.ID(r.URL.Query().Get("organization_id"))
	overview, err := s.overview.Overview(r.Context(), ownerID, organizationID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleOverviewReport(w http.ResponseWriter, r *http.Request) {
	ownerID := core.ID(r.URL.Query().Get("owner_id"))
	organizationID := core.ID(r.URL.Query().Get("organization_id"))
	overview, err := s.overview.Overview(r.Context(), ownerID, organizationID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(RenderOverviewHTML(overview))
}

type saleRequest struct {
	OwnerID         string  `json:"owner_id"`
	OrganizationID  string  `json:"organization_id"`
	InventoryItemID string  `json:"inventory_item_id"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	CurrencyCode    string  `json:"currency_code"`
}

func (s *Server) handleRegisterSale(w http.ResponseWriter, r *http.Request) {
	var req saleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Validation("invalid sale request body"))
		return
	}
	receipt, err := s.sales.Register(r.Context(), app.SaleRequest{
		OwnerID:         core.ID(req.OwnerID),
		OrganizationID:  core.ID(req.OrganizationID),
		InventoryItemID: core.InventoryItemID(req.InventoryItemID),
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		CurrencyCode:    req.CurrencyCode,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, receipt)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps the error taxonomy onto HTTP statuses. Partial success is
// deliberately a server error: the sale committed but inventory is stale,
// and the caller must see that.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeValidation:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeOwnershipMismatch, errors.CodePermissionDenied:
		status = http.StatusForbidden
	case errors.CodeStateConflict, errors.CodeInsufficientStock, errors.CodeConstraint:
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	}
	s.writeJSON(w, status, errorResponse{Code: code, Message: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response: %v", err)
	}
}
