package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/service"
)

type fakeAdminAuth struct {
	token     string
	admin     domain.Admin
	loginErr  error
	logoutErr error
}

func (f *fakeAdminAuth) Login(_ context.Context, _, _ string) (string, domain.Admin, error) {
	return f.token, f.admin, f.loginErr
}

func (f *fakeAdminAuth) Logout(_ context.Context, _ string) error {
	return f.logoutErr
}

type fakeDashboard struct {
	dashboard service.Dashboard
	err       error
}

func (f *fakeDashboard) Load(_ context.Context) (service.Dashboard, error) {
	return f.dashboard, f.err
}

type fakeAdminWinners struct {
	details   domain.WinnerDetails
	selectErr error
	clearErr  error
}

func (f *fakeAdminWinners) Select(_ context.Context) (domain.WinnerDetails, error) {
	return f.details, f.selectErr
}

func (f *fakeAdminWinners) Clear(_ context.Context) error {
	return f.clearErr
}

type fakeReconcile struct {
	report service.ReconciliationReport
	err    error
}

func (f *fakeReconcile) Reconcile(_ context.Context) (service.ReconciliationReport, error) {
	return f.report, f.err
}

func setupAdminRouter(h *AdminHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/admin/login", h.HandleLogin)
	router.POST("/admin/logout", h.HandleLogout)
	router.GET("/admin/dashboard", h.HandleDashboard)
	router.POST("/admin/select-winner", h.HandleSelectWinner)
	router.DELETE("/admin/clear-winner", h.HandleClearWinner)
	router.POST("/admin/reconcile-payments", h.HandleReconcilePayments)

	return router
}

func TestHandleLogin(t *testing.T) {
	handler := NewAdminHandler(&fakeAdminAuth{
		token: "signed.jwt.token",
		admin: domain.Admin{ID: 1, Username: "admin"},
	}, nil, nil, nil)
	router := setupAdminRouter(handler)

	recorder := postJSON(t, router, "/admin/login", map[string]any{
		"username": "admin",
		"password": "secret123",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "signed.jwt.token")
}

func TestHandleLogin_WrongCredentials(t *testing.T) {
	handler := NewAdminHandler(&fakeAdminAuth{loginErr: service.ErrWrongCredentials}, nil, nil, nil)
	router := setupAdminRouter(handler)

	recorder := postJSON(t, router, "/admin/login", map[string]any{
		"username": "admin",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandleLogin_MissingFields(t *testing.T) {
	handler := NewAdminHandler(&fakeAdminAuth{}, nil, nil, nil)
	router := setupAdminRouter(handler)

	recorder := postJSON(t, router, "/admin/login", map[string]any{"username": "admin"})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandleLogout(t *testing.T) {
	handler := NewAdminHandler(&fakeAdminAuth{}, nil, nil, nil)
	router := setupAdminRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer some.jwt.token")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandleLogout_MissingToken(t *testing.T) {
	handler := NewAdminHandler(&fakeAdminAuth{}, nil, nil, nil)
	router := setupAdminRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandleDashboard(t *testing.T) {
	handler := NewAdminHandler(nil, &fakeDashboard{
		dashboard: service.Dashboard{
			Stats: service.DashboardStats{
				TotalEntries:     10,
				ConfirmedEntries: 7,
				TotalRevenue:     70000,
				EligibleForDraw:  7,
			},
		},
	}, nil, nil)
	router := setupAdminRouter(handler)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"totalEntries":10`)
	assert.Contains(t, recorder.Body.String(), `"totalRevenue":70000`)
}

func TestHandleSelectWinner(t *testing.T) {
	handler := NewAdminHandler(nil, nil, &fakeAdminWinners{
		details: domain.WinnerDetails{
			Name:  "Priya Singh",
			Token: "SD-000001-WNNR",
		},
	}, nil)
	router := setupAdminRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/admin/select-winner", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "SD-000001-WNNR")
}

func TestHandleSelectWinner_Conflicts(t *testing.T) {
	for _, svcErr := range []error{service.ErrWinnerAlreadySelected, service.ErrNoEligibleEntries} {
		handler := NewAdminHandler(nil, nil, &fakeAdminWinners{selectErr: svcErr}, nil)
		router := setupAdminRouter(handler)

		req := httptest.NewRequest(http.MethodPost, "/admin/select-winner", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	}
}

func TestHandleClearWinner(t *testing.T) {
	handler := NewAdminHandler(nil, nil, &fakeAdminWinners{}, nil)
	router := setupAdminRouter(handler)

	req := httptest.NewRequest(http.MethodDelete, "/admin/clear-winner", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandleReconcilePayments(t *testing.T) {
	handler := NewAdminHandler(nil, nil, nil, &fakeReconcile{
		report: service.ReconciliationReport{PendingChecked: 3, MarkedFailed: 3},
	})
	router := setupAdminRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/admin/reconcile-payments", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"marked_failed":3`)
}
