package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpapi "equiplend-backend/internal/api/http"
	"equiplend-backend/internal/domain"
	"equiplend-backend/internal/repository"
	"equiplend-backend/internal/security"
	"equiplend-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type testServer struct {
	router    http.Handler
	tokens    security.TokenManager
	auth      *MockAuthService
	equipment *MockEquipmentService
	borrow    *MockBorrowService
}

func newTestServer() *testServer {
	auth := new(MockAuthService)
	equipment := new(MockEquipmentService)
	borrow := new(MockBorrowService)
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	router := httpapi.NewRouter(auth, equipment, borrow, tokens, []string{"*"})
	return &testServer{router: router, tokens: tokens, auth: auth, equipment: equipment, borrow: borrow}
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) tokenFor(t *testing.T, userID int32, role domain.Role) string {
	t.Helper()
	token, err := ts.tokens.GenerateAccessToken(userID, fmt.Sprintf("user%d@school.example", userID), role)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}
	return token
}

func TestAuthEndpoints(t *testing.T) {
	t.Run("RegisterReturnsTokenAndUser", func(t *testing.T) {
		ts := newTestServer()
		ts.auth.On("Register", mock.Anything, "Dana", "dana@school.example", "hunter2hunter2", "student").
			Return(&domain.User{ID: 7, Name: "Dana", Role: domain.RoleStudent}, "tok", nil)

		rec := ts.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
			"name": "Dana", "email": "dana@school.example", "password": "hunter2hunter2", "role": "student",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"token":"tok"`)
	})

	t.Run("LoginFailureIs401", func(t *testing.T) {
		ts := newTestServer()
		ts.auth.On("Login", mock.Anything, "dana@school.example", "wrong", "").
			Return(nil, "", service.ErrInvalidCredentials)

		rec := ts.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "dana@school.example", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("LoginPassesRoleAssertion", func(t *testing.T) {
		ts := newTestServer()
		ts.auth.On("Login", mock.Anything, "dana@school.example", "hunter2hunter2", "admin").
			Return(nil, "", service.ErrInvalidCredentials)

		rec := ts.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "dana@school.example", "password": "hunter2hunter2", "role": "admin",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotContains(t, rec.Body.String(), "token")
	})

	t.Run("MeRequiresToken", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.request(t, http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MeReturnsProfile", func(t *testing.T) {
		ts := newTestServer()
		ts.auth.On("GetProfile", mock.Anything, int32(7)).
			Return(&domain.User{ID: 7, Name: "Dana"}, nil)

		rec := ts.request(t, http.MethodGet, "/api/auth/me", ts.tokenFor(t, 7, domain.RoleStudent), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"name":"Dana"`)
	})
}

func TestEquipmentEndpoints(t *testing.T) {
	t.Run("ListIsPublic", func(t *testing.T) {
		ts := newTestServer()
		ts.equipment.On("List", mock.Anything, repository.EquipmentFilter{Category: "Camera", Page: 1, PageSize: 20}).
			Return([]domain.Equipment{{ID: 3, Name: "Canon EOS R6"}}, int32(1), nil)

		rec := ts.request(t, http.MethodGet, "/api/equipment?category=Camera", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_count":1`)
	})

	t.Run("CreateRequiresAdmin", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.request(t, http.MethodPost, "/api/equipment", ts.tokenFor(t, 7, domain.RoleStudent), map[string]any{
			"name": "Tripod", "category": "Accessory", "condition": "Good", "quantity": 2,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		ts.equipment.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("CreateDefaultsAvailableToQuantity", func(t *testing.T) {
		ts := newTestServer()
		ts.equipment.On("Create", mock.Anything, mock.MatchedBy(func(eq *domain.Equipment) bool {
			return eq.Available == 2
		})).Return(nil)

		rec := ts.request(t, http.MethodPost, "/api/equipment", ts.tokenFor(t, 1, domain.RoleAdmin), map[string]any{
			"name": "Tripod", "category": "Accessory", "condition": "Good", "quantity": 2,
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		ts.equipment.AssertExpectations(t)
	})

	t.Run("CreateKeepsExplicitZeroAvailable", func(t *testing.T) {
		ts := newTestServer()
		ts.equipment.On("Create", mock.Anything, mock.MatchedBy(func(eq *domain.Equipment) bool {
			return eq.Available == 0
		})).Return(nil)

		rec := ts.request(t, http.MethodPost, "/api/equipment", ts.tokenFor(t, 1, domain.RoleAdmin), map[string]any{
			"name": "Tripod", "category": "Accessory", "condition": "Good", "quantity": 2, "available": 0,
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		ts.equipment.AssertExpectations(t)
	})

	t.Run("GetUnknownIs404", func(t *testing.T) {
		ts := newTestServer()
		ts.equipment.On("Get", mock.Anything, int32(99)).Return(nil, domain.ErrNotFound)

		rec := ts.request(t, http.MethodGet, "/api/equipment/99", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("DeleteReturns204", func(t *testing.T) {
		ts := newTestServer()
		ts.equipment.On("Delete", mock.Anything, int32(3)).Return(nil)

		rec := ts.request(t, http.MethodDelete, "/api/equipment/3", ts.tokenFor(t, 1, domain.RoleAdmin), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRequestEndpoints(t *testing.T) {
	t.Run("CreateAsStudent", func(t *testing.T) {
		ts := newTestServer()
		ts.borrow.On("CreateRequest", mock.Anything, int32(7), int32(3), "2026-09-01", "2026-09-05", "Shoot").
			Return(&domain.BorrowRequest{ID: 10, Status: domain.RequestStatusPending}, nil)

		rec := ts.request(t, http.MethodPost, "/api/requests/create", ts.tokenFor(t, 7, domain.RoleStudent), map[string]any{
			"equipment_id": 3, "from_date": "2026-09-01", "to_date": "2026-09-05", "purpose": "Shoot",
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"pending"`)
	})

	t.Run("OwnHistoryAllowed", func(t *testing.T) {
		ts := newTestServer()
		ts.borrow.On("ListForRequester", mock.Anything, int32(7), "", int32(1), int32(20)).
			Return([]domain.BorrowRequest{}, int32(0), nil)

		rec := ts.request(t, http.MethodGet, "/api/requests/user/7", ts.tokenFor(t, 7, domain.RoleStudent), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("OtherUsersHistoryForbidden", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.request(t, http.MethodGet, "/api/requests/user/8", ts.tokenFor(t, 7, domain.RoleStudent), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AdminReadsAnyHistory", func(t *testing.T) {
		ts := newTestServer()
		ts.borrow.On("ListForRequester", mock.Anything, int32(8), "", int32(1), int32(20)).
			Return([]domain.BorrowRequest{}, int32(0), nil)

		rec := ts.request(t, http.MethodGet, "/api/requests/user/8", ts.tokenFor(t, 1, domain.RoleAdmin), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ListAllRequiresAdmin", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.request(t, http.MethodGet, "/api/requests", ts.tokenFor(t, 7, domain.RoleStaff), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ApproveCapacityExceededIs409", func(t *testing.T) {
		ts := newTestServer()
		ts.borrow.On("Approve", mock.Anything, int32(1), int32(10), "").
			Return(nil, domain.ErrCapacityExceeded)

		rec := ts.request(t, http.MethodPost, "/api/requests/10/approve", ts.tokenFor(t, 1, domain.RoleAdmin), map[string]string{})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("ApprovePassesNotes", func(t *testing.T) {
		ts := newTestServer()
		ts.borrow.On("Approve", mock.Anything, int32(1), int32(10), "pickup at front desk").
			Return(&domain.BorrowRequest{ID: 10, Status: domain.RequestStatusApproved}, nil)

		rec := ts.request(t, http.MethodPost, "/api/requests/10/approve", ts.tokenFor(t, 1, domain.RoleAdmin),
			map[string]string{"approvalNotes": "pickup at front desk"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"approved"`)
	})

	t.Run("RejectPassesReason", func(t *testing.T) {
		ts := newTestServer()
		ts.borrow.On("Reject", mock.Anything, int32(1), int32(11), "reserved for class").
			Return(&domain.BorrowRequest{ID: 11, Status: domain.RequestStatusRejected}, nil)

		rec := ts.request(t, http.MethodPost, "/api/requests/11/reject", ts.tokenFor(t, 1, domain.RoleAdmin),
			map[string]string{"reason": "reserved for class"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ReturnPassesConditionAndNotes", func(t *testing.T) {
		ts := newTestServer()
		ts.borrow.On("MarkReturned", mock.Anything, int32(1), int32(12), "Good", "small scratch").
			Return(&domain.BorrowRequest{ID: 12, Status: domain.RequestStatusReturned}, nil)

		rec := ts.request(t, http.MethodPost, "/api/requests/12/return", ts.tokenFor(t, 1, domain.RoleAdmin),
			map[string]string{"condition": "Good", "returnNotes": "small scratch"})
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("StatsAsAdmin", func(t *testing.T) {
		ts := newTestServer()
		ts.borrow.On("Stats", mock.Anything).
			Return(&domain.RequestStats{Total: 10, Pending: 3}, nil)

		rec := ts.request(t, http.MethodGet, "/api/requests/admin/stats", ts.tokenFor(t, 1, domain.RoleAdmin), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total":10`)
	})

	t.Run("GarbageTokenIs401", func(t *testing.T) {
		ts := newTestServer()

		rec := ts.request(t, http.MethodGet, "/api/requests", "not.a.token", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHealthz(t *testing.T) {
	ts := newTestServer()
	rec := ts.request(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
