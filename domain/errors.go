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

import "errors"

// Domain validation errors
var (
	// ErrInvalidContact indicates a Contact failed validation.
	ErrInvalidContact = errors.New("invalid contact")

	// ErrEmptyContactName indicates the contact Name field is empty.
	ErrEmptyContactName = errors.New("contact name cannot be empty")

	// ErrInvalidInvoice indicates an Invoice failed validation.
	ErrInvalidInvoice = errors.New("invalid invoice")

	// ErrEmptyInvoiceNumber indicates the invoice Number field is empty.
	ErrEmptyInvoiceNumber = errors.New("invoice number cannot be empty")

	// ErrEmptyInvoiceCustomer indicates the invoice Customer field is empty.
	ErrEmptyInvoiceCustomer = errors.New("invoice customer cannot be empty")

	// ErrInvalidInvoiceStatus indicates an unknown invoice status value.
	ErrInvalidInvoiceStatus = errors.New("invalid invoice status")
)

// ErrUnknownCollection indicates a collection name with no registered service.
var ErrUnknownCollection = errors.New("unknown collection")
