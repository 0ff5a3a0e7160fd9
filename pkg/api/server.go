package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/silverbars/orderboard/params"
	"github.com/silverbars/orderboard/pkg/board"
)

// Server handles REST API and WebSocket connections for the order board.
type Server struct {
	ledger *board.Ledger
	router *mux.Router
	hub    *Hub
	cfg    params.Config
	log    *zap.SugaredLogger
}

// NewServer creates a new API server on top of the ledger.
func NewServer(ledger *board.Ledger, cfg params.Config, log *zap.SugaredLogger) *Server {
	s := &Server{
		ledger: ledger,
		router: mux.NewRouter(),
		hub:    NewHub(log),
		cfg:    cfg,
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.logRequests)

	api.HandleFunc("/orders", s.handleRegisterOrder).Methods("POST")
	api.HandleFunc("/orders/summary", s.handleGetBoard).Methods("GET")
	api.HandleFunc("/orders/{id}", s.handleGetOrder).Methods("GET")
	api.HandleFunc("/orders/{id}", s.handleCancelOrder).Methods("DELETE")

	// WebSocket endpoint
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler returns the router wrapped with CORS, ready to serve.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.HTTP.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(s.router)
}

// Start runs the WebSocket hub and serves HTTP on addr. Blocks.
func (s *Server) Start(addr string) error {
	go s.hub.Run()
	s.log.Infow("api_server_starting", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// ==============================
// REST Handlers
// ==============================

func (s *Server) handleRegisterOrder(w http.ResponseWriter, r *http.Request) {
	var req RegisterOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user := req.User
	if user == "" {
		user = s.cfg.Board.DefaultActor
	}
	if req.Quantity.Sign() <= 0 {
		respondError(w, http.StatusBadRequest, "invalid quantity", "quantity must be greater than zero")
		return
	}
	if req.Price.Sign() < 0 {
		respondError(w, http.StatusBadRequest, "invalid price", "price must not be negative")
		return
	}
	side, err := board.ParseSide(req.Side)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid side", err.Error())
		return
	}

	o := s.ledger.Register(user, req.Quantity, req.Price, side)
	s.log.Infow("order_registered",
		"order_id", o.ID, "user", user, "side", side.String(),
		"price", o.Price.String(), "quantity", o.Quantity.String())

	s.broadcastBoard()
	respondJSON(w, http.StatusCreated, orderInfo(o))
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id", "order id must be an integer")
		return
	}

	actor := r.URL.Query().Get("user")
	if actor == "" {
		actor = s.cfg.Board.DefaultActor
	}

	o, err := s.ledger.Cancel(id, actor)
	switch {
	case board.IsNotFound(err):
		respondError(w, http.StatusNotFound, "order not found", err.Error())
		return
	case board.IsAlreadyCancelled(err):
		respondError(w, http.StatusConflict, "order already cancelled", err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "unable to cancel order", "")
		return
	}

	s.log.Infow("order_cancelled", "order_id", o.ID, "actor", actor)

	s.broadcastBoard()
	respondJSON(w, http.StatusOK, orderInfo(o))
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id", "order id must be an integer")
		return
	}

	o, ok := s.ledger.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "order not found", "")
		return
	}
	respondJSON(w, http.StatusOK, orderInfo(o))
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b := s.ledger.LiveBoard()
	if len(b.Buys) == 0 && len(b.Sells) == 0 {
		respondError(w, http.StatusNotFound, "no live orders", "no live orders found in the system")
		return
	}
	respondJSON(w, http.StatusOK, BoardResponse{
		Buy:  summaryInfos(b.Buys),
		Sell: summaryInfos(b.Sells),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// broadcastBoard pushes the refreshed live board to all WebSocket clients.
func (s *Server) broadcastBoard() {
	b := s.ledger.LiveBoard()
	s.hub.Broadcast(BoardUpdate{
		Type:      "board",
		Buy:       summaryInfos(b.Buys),
		Sell:      summaryInfos(b.Sells),
		Timestamp: time.Now().UnixMilli(),
	})
}

// ==============================
// Middleware
// ==============================

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.log.Infow("http_request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// ==============================
// Helper Functions
// ==============================

func orderInfo(o *board.Order) OrderInfo {
	audit := make([]AuditEntryInfo, len(o.Audit))
	for i, a := range o.Audit {
		audit[i] = AuditEntryInfo{
			OrderID:   a.OrderID,
			Actor:     a.Actor,
			Timestamp: a.At.Format(time.RFC3339Nano),
		}
	}
	return OrderInfo{
		ID:       o.ID,
		User:     o.Owner,
		Quantity: o.Quantity,
		Price:    o.Price,
		Side:     o.Side.String(),
		Status:   o.Status.String(),
		Audit:    audit,
	}
}

func summaryInfos(levels []board.Summary) []SummaryInfo {
	out := make([]SummaryInfo, len(levels))
	for i, l := range levels {
		out[i] = SummaryInfo{Price: l.Price, Quantity: l.Quantity}
	}
	return out
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, error string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Message: message,
	})
}
