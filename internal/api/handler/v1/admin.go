package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snapdraw/raffle-api/internal/api/handler/v1/request"
	"github.com/snapdraw/raffle-api/internal/api/handler/v1/response"
	"github.com/snapdraw/raffle-api/internal/api/middleware"
	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/service"
)

type AdminAuthService interface {
	Login(ctx context.Context, username, password string) (string, domain.Admin, error)
	Logout(ctx context.Context, token string) error
}

type AdminDashboardService interface {
	Load(ctx context.Context) (service.Dashboard, error)
}

type AdminWinnerService interface {
	Select(ctx context.Context) (domain.WinnerDetails, error)
	Clear(ctx context.Context) error
}

type AdminReconcileService interface {
	Reconcile(ctx context.Context) (service.ReconciliationReport, error)
}

type AdminHandler struct {
	auth      AdminAuthService
	dashboard AdminDashboardService
	winners   AdminWinnerService
	reconcile AdminReconcileService
}

func NewAdminHandler(auth AdminAuthService, dashboard AdminDashboardService, winners AdminWinnerService, reconcile AdminReconcileService) *AdminHandler {
	return &AdminHandler{
		auth:      auth,
		dashboard: dashboard,
		winners:   winners,
		reconcile: reconcile,
	}
}

// HandleLogin godoc
// @Summary      Login as admin
// @Tags         admin
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      429      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/login [post]
func (h *AdminHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	token, admin, err := h.auth.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrWrongCredentials) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.auth.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		Admin: admin,
	})
}

// HandleLogout godoc
// @Summary      Logout, revoking the presented token
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200      {object}   response.LogoutResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/logout [post]
func (h *AdminHandler) HandleLogout(ctx *gin.Context) {
	token, ok := middleware.ExtractBearerToken(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("missing token")))

		return
	}

	if err := h.auth.Logout(ctx.Request.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidToken) || errors.Is(err, service.ErrTokenRevoked) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogout -> h.auth.Logout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LogoutResponse{Message: "logged out"})
}

// HandleDashboard godoc
// @Summary      Entry statistics, recent entries and current winner
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200      {object}   service.Dashboard
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/dashboard [get]
func (h *AdminHandler) HandleDashboard(ctx *gin.Context) {
	dashboard, err := h.dashboard.Load(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.dashboard.Load -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, dashboard)
}

// HandleSelectWinner godoc
// @Summary      Draw a winner from confirmed entries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200      {object}   response.SelectWinnerResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/select-winner [post]
func (h *AdminHandler) HandleSelectWinner(ctx *gin.Context) {
	details, err := h.winners.Select(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrWinnerAlreadySelected) || errors.Is(err, service.ErrNoEligibleEntries) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleSelectWinner -> h.winners.Select -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.SelectWinnerResponse{Winner: details})
}

// HandleClearWinner godoc
// @Summary      Clear the current winner to allow a fresh draw
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200      {object}   response.ClearWinnerResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/clear-winner [delete]
func (h *AdminHandler) HandleClearWinner(ctx *gin.Context) {
	if err := h.winners.Clear(ctx.Request.Context()); err != nil {
		err = fmt.Errorf("v1.HandleClearWinner -> h.winners.Clear -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ClearWinnerResponse{Message: "winner cleared"})
}

// HandleReconcilePayments godoc
// @Summary      Fail PENDING entries whose payment window has lapsed
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200      {object}   response.ReconcileResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/reconcile-payments [post]
func (h *AdminHandler) HandleReconcilePayments(ctx *gin.Context) {
	report, err := h.reconcile.Reconcile(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleReconcilePayments -> h.reconcile.Reconcile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ReconcileResponse{Report: report})
}
