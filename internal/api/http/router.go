package http

import (
	"net/http"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/logger"
	"equiplend-backend/internal/security"
	"equiplend-backend/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter assembles the full API surface. Equipment reads are public so
// the catalog can render before login; everything else sits behind the
// bearer-token middleware, with per-route capability gates on top.
func NewRouter(
	authSvc service.AuthService,
	equipmentSvc service.EquipmentService,
	borrowSvc service.BorrowService,
	tokens security.TokenManager,
	allowedOrigins []string,
) http.Handler {
	authHandler := NewAuthHandler(authSvc)
	equipmentHandler := NewEquipmentHandler(equipmentSvc)
	requestHandler := NewRequestHandler(borrowSvc)
	authMW := NewAuthMiddleware(tokens)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/equipment", equipmentHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{id:[0-9]+}", equipmentHandler.Get).Methods(http.MethodGet)

	// Authenticated routes
	authed := api.PathPrefix("").Subrouter()
	authed.Use(authMW.Authenticate)

	authed.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	authed.HandleFunc("/equipment",
		RequireCapability(domain.OpEquipmentManage, equipmentHandler.Create)).Methods(http.MethodPost)
	authed.HandleFunc("/equipment/{id:[0-9]+}",
		RequireCapability(domain.OpEquipmentManage, equipmentHandler.Update)).Methods(http.MethodPut)
	authed.HandleFunc("/equipment/{id:[0-9]+}",
		RequireCapability(domain.OpEquipmentManage, equipmentHandler.Delete)).Methods(http.MethodDelete)

	authed.HandleFunc("/requests/create",
		RequireCapability(domain.OpRequestCreate, requestHandler.Create)).Methods(http.MethodPost)
	authed.HandleFunc("/requests/user/{userId:[0-9]+}",
		RequireCapability(domain.OpRequestViewOwn, requestHandler.ListForUser)).Methods(http.MethodGet)
	authed.HandleFunc("/requests",
		RequireCapability(domain.OpRequestViewAll, requestHandler.ListAll)).Methods(http.MethodGet)
	authed.HandleFunc("/requests/admin/stats",
		RequireCapability(domain.OpStatsView, requestHandler.Stats)).Methods(http.MethodGet)
	authed.HandleFunc("/requests/{id:[0-9]+}/approve",
		RequireCapability(domain.OpRequestDecide, requestHandler.Approve)).Methods(http.MethodPost)
	authed.HandleFunc("/requests/{id:[0-9]+}/reject",
		RequireCapability(domain.OpRequestDecide, requestHandler.Reject)).Methods(http.MethodPost)
	authed.HandleFunc("/requests/{id:[0-9]+}/return",
		RequireCapability(domain.OpRequestDecide, requestHandler.Return)).Methods(http.MethodPost)

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)

	return recovery(cors(r))
}

type recoveryLogger struct{}

func (recoveryLogger) Println(args ...any) {
	logger.Error("panic in http handler", "detail", args)
}
