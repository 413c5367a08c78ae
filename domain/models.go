package domain

import "github.com/poiesic/satchel/core"

// ChatSession represents one conversation thread in a session list.
type ChatSession struct {
	core.Meta

	Title        string      `json:"title"`
	LastMessage  string      `json:"lastMessage,omitempty"`
	Pinned       bool        `json:"pinned,omitempty"`
	UnreadCount  int         `json:"unreadCount,omitempty"`
	LastActiveAt core.Millis `json:"lastActiveAt,omitempty"`
}

// Contact represents an address book entry.
type Contact struct {
	core.Meta

	Name     string   `json:"name"`
	Phone    string   `json:"phone,omitempty"`
	Email    string   `json:"email,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Favorite bool     `json:"favorite,omitempty"`
}

// InvoiceStatus identifies where an invoice is in its lifecycle.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
	InvoiceVoid    InvoiceStatus = "void"
)

// Invoice represents a billable document with its line items inlined.
type Invoice struct {
	core.Meta

	Number      string        `json:"number"`
	Customer    string        `json:"customer"`
	Status      InvoiceStatus `json:"status,omitempty"`
	AmountCents int64         `json:"amountCents,omitempty"`
	DueAt       core.Millis   `json:"dueAt,omitempty"`
	Items       []LineItem    `json:"items,omitempty"`
}

// LineItem is one billed position on an invoice.
type LineItem struct {
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitCents   int64  `json:"unitCents"`
}

// ItemsTotalCents sums the invoice's line items.
func (inv *Invoice) ItemsTotalCents() int64 {
	var total int64
	for _, item := range inv.Items {
		total += int64(item.Quantity) * item.UnitCents
	}
	return total
}
