package http

import (
	"net/http"
	"strconv"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/repository"
	"equiplend-backend/internal/service"

	"github.com/gorilla/mux"
)

type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentSvc: equipmentSvc}
}

// Available is a pointer so an omitted field is distinguishable from an
// explicit zero.
type equipmentPayload struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Condition   string `json:"condition"`
	Quantity    int32  `json:"quantity"`
	Available   *int32 `json:"available"`
	Location    string `json:"location"`
}

type equipmentListResponse struct {
	Equipment  []domain.Equipment `json:"equipment"`
	TotalCount int32              `json:"total_count"`
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.EquipmentFilter{
		Category: q.Get("category"),
		Name:     q.Get("name"),
		Page:     parseIntParam(q.Get("page"), 1),
		PageSize: parseIntParam(q.Get("page_size"), 20),
	}

	items, count, err := h.equipmentSvc.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.Equipment{}
	}
	writeJSON(w, http.StatusOK, equipmentListResponse{Equipment: items, TotalCount: count})
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	eq, err := h.equipmentSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req equipmentPayload
	if !decodeBody(w, r, &req) {
		return
	}

	// New equipment starts fully available unless the caller says otherwise.
	available := req.Quantity
	if req.Available != nil {
		available = *req.Available
	}
	eq := &domain.Equipment{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Condition:   domain.EquipmentCondition(req.Condition),
		Quantity:    req.Quantity,
		Available:   available,
		Location:    req.Location,
	}
	if err := h.equipmentSvc.Create(r.Context(), eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req equipmentPayload
	if !decodeBody(w, r, &req) {
		return
	}

	var available int32
	if req.Available != nil {
		available = *req.Available
	}
	eq := &domain.Equipment{
		ID:          id,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Condition:   domain.EquipmentCondition(req.Condition),
		Quantity:    req.Quantity,
		Available:   available,
		Location:    req.Location,
	}
	if err := h.equipmentSvc.Update(r.Context(), eq); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.equipmentSvc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name, "must be a positive integer")
	}
	return int32(id), nil
}

func parseIntParam(raw string, def int32) int32 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || v < 1 {
		return def
	}
	return int32(v)
}
