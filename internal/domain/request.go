package domain

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusReturned RequestStatus = "returned"
)

// ValidStatus reports whether s is one of the known request statuses.
func ValidStatus(s string) bool {
	switch RequestStatus(s) {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected, RequestStatusReturned:
		return true
	}
	return false
}

// CanTransition reports whether a request may move from one status to
// another. The only legal moves are pending→approved, pending→rejected
// and approved→returned; rejected and returned are terminal.
func CanTransition(from, to RequestStatus) bool {
	switch from {
	case RequestStatusPending:
		return to == RequestStatusApproved || to == RequestStatusRejected
	case RequestStatusApproved:
		return to == RequestStatusReturned
	}
	return false
}

// BorrowRequest is one borrow-request record. Requester and equipment
// fields are snapshots captured at creation time for audit stability;
// they are never refreshed when the source User or Equipment changes.
type BorrowRequest struct {
	ID             int32         `json:"id"`
	RequesterID    int32         `json:"requester_id"`
	RequesterName  string        `json:"requester_name"`
	RequesterEmail string        `json:"requester_email"`
	EquipmentID    int32         `json:"equipment_id"`
	EquipmentName  string        `json:"equipment_name"`
	FromDate       string        `json:"from_date"`
	ToDate         string        `json:"to_date"`
	Purpose        string        `json:"purpose"`
	Status         RequestStatus `json:"status"`

	// Decision metadata, set once the request leaves pending.
	DecidedByID   *int32  `json:"decided_by_id,omitempty"`
	DecidedByName string  `json:"decided_by_name,omitempty"`
	DecidedOn     *string `json:"decided_on,omitempty"`
	DecisionNotes string  `json:"decision_notes,omitempty"`

	// Return metadata, set on approved→returned.
	ReturnCondition string  `json:"return_condition,omitempty"`
	ReturnNotes     string  `json:"return_notes,omitempty"`
	ReturnedByID    *int32  `json:"returned_by_id,omitempty"`
	ReturnedByName  string  `json:"returned_by_name,omitempty"`
	ReturnedOn      *string `json:"returned_on,omitempty"`

	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// Decision carries the admin identity and notes recorded on a status
// transition out of pending.
type Decision struct {
	DeciderID   int32
	DeciderName string
	Notes       string
}

// RequestStats aggregates request counts for the admin dashboard.
type RequestStats struct {
	Total    int32 `json:"total"`
	Pending  int32 `json:"pending"`
	Approved int32 `json:"approved"`
	Rejected int32 `json:"rejected"`
	Returned int32 `json:"returned"`
}
