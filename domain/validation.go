// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package domain

import "fmt"

// ValidateContact validates a Contact according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//
// NOT validated:
//   - Phone and Email formats (free-form fields)
func ValidateContact(contact *Contact) error {
	if contact == nil {
		return fmt.Errorf("%w: contact is nil", ErrInvalidContact)
	}

	if contact.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContact, ErrEmptyContactName)
	}

	return nil
}

// ValidateInvoice validates an Invoice according to domain rules.
//
// Validation rules:
//   - Number must not be empty
//   - Customer must not be empty
//   - Status, when set, must be a known value
//
// NOT validated:
//   - AmountCents against Items (totals are caller-supplied)
//   - DueAt (invoices without a due date are legal and never report overdue)
func ValidateInvoice(invoice *Invoice) error {
	if invoice == nil {
		return fmt.Errorf("%w: invoice is nil", ErrInvalidInvoice)
	}

	if invoice.Number == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInvoice, ErrEmptyInvoiceNumber)
	}

	if invoice.Customer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInvoice, ErrEmptyInvoiceCustomer)
	}

	if invoice.Status != "" {
		if err := ValidateInvoiceStatus(invoice.Status); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInvoice, err)
		}
	}

	return nil
}

// ValidateInvoiceStatus validates that a status has a known value.
func ValidateInvoiceStatus(status InvoiceStatus) error {
	switch status {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue, InvoiceVoid:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidInvoiceStatus, status)
}
