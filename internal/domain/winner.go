package domain

import "time"

// Winner references the drawn entry. At most one live record exists;
// clearing deletes all records so a fresh draw can happen.
type Winner struct {
	ID          uint      `json:"id"`
	EntryID     uint      `json:"entry_id"`
	Entry       Entry     `json:"entry,omitempty"`
	AnnouncedAt time.Time `json:"announced_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// WinnerDetails is the resolved view of a winner for admin responses,
// joining the entry's token with its owning user's contact fields.
type WinnerDetails struct {
	Name    string `json:"name"`
	Token   string `json:"token"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}
