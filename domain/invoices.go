package domain

import (
	"context"

	"github.com/poiesic/satchel"
	"github.com/poiesic/satchel/core"
	"github.com/poiesic/satchel/query"
)

// InvoiceService manages invoices.
type InvoiceService struct {
	*satchel.Collection[Invoice, *Invoice]
}

// NewInvoiceService creates the invoice service over db. Writes are guarded
// by ValidateInvoice.
func NewInvoiceService(db *satchel.DB) (*InvoiceService, error) {
	c, err := satchel.NewCollection[Invoice](db, satchel.Config{
		Key:        "invoices",
		Searchable: []string{"number", "customer"},
	}, satchel.WithValidator[Invoice](ValidateInvoice))
	if err != nil {
		return nil, err
	}
	return &InvoiceService{Collection: c}, nil
}

// Outstanding returns invoices still awaiting payment, soonest due first.
// Invoices without a due date go last instead of leading the list with their
// zero timestamp.
func (s *InvoiceService) Outstanding(ctx context.Context) (query.Page[Invoice], error) {
	dated, err := s.FindAll(ctx, query.Query{
		Filters: []query.Criterion{
			query.In("status", InvoiceSent, InvoiceOverdue),
			query.Gte("dueAt", 1),
		},
		Sort: query.Asc("dueAt"),
	})
	if err != nil {
		return query.Page[Invoice]{}, err
	}

	undated, err := s.FindAll(ctx, query.Query{
		Filters: []query.Criterion{
			query.In("status", InvoiceSent, InvoiceOverdue),
			query.Lte("dueAt", 0),
		},
	})
	if err != nil {
		return query.Page[Invoice]{}, err
	}

	combined := make([]Invoice, 0, len(dated.Content)+len(undated.Content))
	combined = append(combined, dated.Content...)
	combined = append(combined, undated.Content...)

	return query.ApplyPage(combined, query.PageRequest{}), nil
}

// Overdue returns unpaid invoices whose due date has passed as of the given
// time, oldest due first. Invoices without a due date never report overdue.
func (s *InvoiceService) Overdue(ctx context.Context, asOf core.Millis) (query.Page[Invoice], error) {
	return s.FindAll(ctx, query.Query{
		Filters: []query.Criterion{
			query.In("status", InvoiceSent, InvoiceOverdue),
			query.Gte("dueAt", 1),
			query.Lte("dueAt", asOf),
		},
		Sort: query.Asc("dueAt"),
	})
}

// ForCustomer returns a customer's invoices, newest first.
func (s *InvoiceService) ForCustomer(ctx context.Context, customer string) (query.Page[Invoice], error) {
	return s.FindAll(ctx, query.Query{
		Filters: []query.Criterion{query.Eq("customer", customer)},
		Sort:    query.Desc("createTime"),
	})
}

// MarkPaid transitions an invoice to paid.
func (s *InvoiceService) MarkPaid(ctx context.Context, id string) (Invoice, error) {
	return s.Patch(ctx, id, core.NewPatch().Set("status", InvoicePaid))
}
