package response

import (
	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/service"
)

type LoginResponse struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

type SelectWinnerResponse struct {
	Winner domain.WinnerDetails `json:"winner"`
}

type ClearWinnerResponse struct {
	Message string `json:"message"`
}

type ReconcileResponse struct {
	Report service.ReconciliationReport `json:"report"`
}
