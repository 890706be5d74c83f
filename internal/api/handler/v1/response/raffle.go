package response

import "github.com/snapdraw/raffle-api/internal/domain"

type CreateOrderResponse struct {
	OrderID         string   `json:"orderId"`
	Amount          int64    `json:"amount"`
	Currency        string   `json:"currency"`
	KeyID           string   `json:"keyId,omitempty"`
	Tokens          []string `json:"tokens"`
	NumberOfEntries int      `json:"numberOfEntries"`
	DemoMode        bool     `json:"demoMode"`
}

type VerifyPaymentResponse struct {
	Verified        bool     `json:"verified"`
	Tokens          []string `json:"tokens"`
	NumberOfEntries int      `json:"numberOfEntries"`
}

// PublicWinner is the winner as shown on the public page. Contact
// details stay behind the admin dashboard.
type PublicWinner struct {
	Name        string `json:"name"`
	Token       string `json:"token"`
	AnnouncedAt string `json:"announcedAt"`
}

// WinnerResponse always renders with a winner key; null means no draw
// has happened yet.
type WinnerResponse struct {
	Winner *PublicWinner `json:"winner"`
}

func NewPublicWinner(w domain.Winner) *PublicWinner {
	return &PublicWinner{
		Name:        w.Entry.User.Name,
		Token:       w.Entry.Token,
		AnnouncedAt: w.AnnouncedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
