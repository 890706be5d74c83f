package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snapdraw/raffle-api/internal/api/handler/v1/request"
	"github.com/snapdraw/raffle-api/internal/api/handler/v1/response"
	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/service"
)

type CheckoutService interface {
	CreateOrder(ctx context.Context, user domain.User, numberOfEntries int) (service.CheckoutResult, error)
}

type VerificationService interface {
	Verify(ctx context.Context, orderID, paymentID, signature string) (service.VerificationResult, error)
}

type PublicWinnerService interface {
	Current(ctx context.Context) (domain.Winner, error)
}

type RaffleHandler struct {
	checkout     CheckoutService
	verification VerificationService
	winners      PublicWinnerService
	gatewayKeyID string
}

func NewRaffleHandler(checkout CheckoutService, verification VerificationService, winners PublicWinnerService, gatewayKeyID string) *RaffleHandler {
	return &RaffleHandler{
		checkout:     checkout,
		verification: verification,
		winners:      winners,
		gatewayKeyID: gatewayKeyID,
	}
}

// HandleCreateOrder godoc
// @Summary      Create a payment order for raffle entries
// @Tags         raffle
// @Produce      json
// @Param        request   body      request.CreateOrderRequest true "request body"
// @Success      200      {object}   response.CreateOrderResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffle/create-order [post]
func (h *RaffleHandler) HandleCreateOrder(ctx *gin.Context) {
	var req request.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	result, err := h.checkout.CreateOrder(ctx.Request.Context(), domain.User{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		State:   req.State,
		Pincode: req.Pincode,
	}, req.NumberOfEntries)
	if err != nil {
		if errors.Is(err, service.ErrRaffleInactive) ||
			errors.Is(err, service.ErrRaffleEnded) ||
			errors.Is(err, service.ErrCapacityExceeded) ||
			errors.Is(err, service.ErrInvalidEntryCount) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateOrder -> h.checkout.CreateOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	resp := response.CreateOrderResponse{
		OrderID:         result.OrderID,
		Amount:          result.Amount,
		Currency:        result.Currency,
		Tokens:          result.Tokens,
		NumberOfEntries: result.NumberOfEntries,
		DemoMode:        result.DemoMode,
	}
	if !result.DemoMode {
		resp.KeyID = h.gatewayKeyID
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleVerifyPayment godoc
// @Summary      Verify a payment callback and confirm entries
// @Tags         raffle
// @Produce      json
// @Param        request   body      request.VerifyPaymentRequest true "request body"
// @Success      200      {object}   response.VerifyPaymentResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffle/verify-payment [post]
func (h *RaffleHandler) HandleVerifyPayment(ctx *gin.Context) {
	var req request.VerifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	result, err := h.verification.Verify(ctx.Request.Context(), req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			// A forged or corrupted callback. Worth a distinct log line.
			zap.L().Warn("payment signature mismatch",
				zap.String("order_id", req.RazorpayOrderID),
				zap.String("request_id", requestid.Get(ctx)))
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}
		if errors.Is(err, service.ErrEntriesNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(err))

			return
		}

		err = fmt.Errorf("v1.HandleVerifyPayment -> h.verification.Verify -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.VerifyPaymentResponse{
		Verified:        true,
		Tokens:          result.Tokens,
		NumberOfEntries: result.NumberOfEntries,
	})
}

// HandleGetWinner godoc
// @Summary      Get the current raffle winner, if drawn
// @Tags         raffle
// @Produce      json
// @Success      200      {object}   response.WinnerResponse
// @Router       /winner [get]
func (h *RaffleHandler) HandleGetWinner(ctx *gin.Context) {
	winner, err := h.winners.Current(ctx.Request.Context())
	if err != nil {
		// The public page treats every failure as "no winner yet".
		if !errors.Is(err, service.ErrNoWinner) {
			zap.L().Error("v1.HandleGetWinner -> h.winners.Current", zap.Error(err))
		}
		ctx.JSON(http.StatusOK, response.WinnerResponse{Winner: nil})

		return
	}

	ctx.JSON(http.StatusOK, response.WinnerResponse{
		Winner: response.NewPublicWinner(winner),
	})
}
