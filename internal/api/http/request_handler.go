package http

import (
	"net/http"

	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/repository"
	"equiplend-backend/internal/service"
)

type RequestHandler struct {
	borrowSvc service.BorrowService
}

func NewRequestHandler(borrowSvc service.BorrowService) *RequestHandler {
	return &RequestHandler{borrowSvc: borrowSvc}
}

type createRequestPayload struct {
	EquipmentID int32  `json:"equipment_id"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	Purpose     string `json:"purpose"`
}

// Decision bodies keep the field names the frontend sends.
type approvePayload struct {
	ApprovalNotes string `json:"approvalNotes"`
}

type rejectPayload struct {
	Reason string `json:"reason"`
}

type returnPayload struct {
	Condition   string `json:"condition"`
	ReturnNotes string `json:"returnNotes"`
}

type requestListResponse struct {
	Requests   []domain.BorrowRequest `json:"requests"`
	TotalCount int32                  `json:"total_count"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	var req createRequestPayload
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := h.borrowSvc.CreateRequest(r.Context(), actor.ID, req.EquipmentID, req.FromDate, req.ToDate, req.Purpose)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListForUser serves a requester's own history. Admins may read any user's
// page; everyone else only their own.
func (h *RequestHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}
	if userID != actor.ID && !actor.Role.Can(domain.OpRequestViewAll) {
		writeError(w, domain.ErrForbidden)
		return
	}

	q := r.URL.Query()
	requests, count, err := h.borrowSvc.ListForRequester(r.Context(), userID, q.Get("status"),
		parseIntParam(q.Get("page"), 1), parseIntParam(q.Get("page_size"), 20))
	if err != nil {
		writeError(w, err)
		return
	}
	if requests == nil {
		requests = []domain.BorrowRequest{}
	}
	writeJSON(w, http.StatusOK, requestListResponse{Requests: requests, TotalCount: count})
}

func (h *RequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.RequestFilter{
		Status:        q.Get("status"),
		RequesterName: q.Get("student"),
		EquipmentName: q.Get("equipment"),
		Page:          parseIntParam(q.Get("page"), 1),
		PageSize:      parseIntParam(q.Get("page_size"), 20),
	}

	requests, count, err := h.borrowSvc.ListAll(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	if requests == nil {
		requests = []domain.BorrowRequest{}
	}
	writeJSON(w, http.StatusOK, requestListResponse{Requests: requests, TotalCount: count})
}

func (h *RequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req approvePayload
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.borrowSvc.Approve(r.Context(), actor.ID, requestID, req.ApprovalNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *RequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req rejectPayload
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.borrowSvc.Reject(r.Context(), actor.ID, requestID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *RequestHandler) Return(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req returnPayload
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := h.borrowSvc.MarkReturned(r.Context(), actor.ID, requestID, req.Condition, req.ReturnNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *RequestHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.borrowSvc.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
