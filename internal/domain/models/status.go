package models

import "strings"

// ServiceStatus enumerates the lifecycle states of a service entry.
//
// Entries progress PLANNED → IN_PROGRESS → COMPLETED → INVOICED, with a
// reverse edge COMPLETED → IN_PROGRESS exposed as an admin "reopen" action.
// INVOICED is terminal and is only set as a side effect of invoice creation,
// never through a manual transition.
type ServiceStatus string

const (
	ServicePlanned    ServiceStatus = "PLANNED"
	ServiceInProgress ServiceStatus = "IN_PROGRESS"
	ServiceCompleted  ServiceStatus = "COMPLETED"
	ServiceInvoiced   ServiceStatus = "INVOICED"
)

// ParseServiceStatus maps free-form input to a ServiceStatus.
func ParseServiceStatus(raw string) (ServiceStatus, bool) {
	switch ServiceStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case ServicePlanned:
		return ServicePlanned, true
	case ServiceInProgress:
		return ServiceInProgress, true
	case ServiceCompleted:
		return ServiceCompleted, true
	case ServiceInvoiced:
		return ServiceInvoiced, true
	}
	return "", false
}

// CanTransitionTo reports whether a manual admin action may move an entry
// from s to next. Invoicing bypasses this gate.
func (s ServiceStatus) CanTransitionTo(next ServiceStatus) bool {
	switch s {
	case ServicePlanned:
		return next == ServiceInProgress
	case ServiceInProgress:
		return next == ServiceCompleted
	case ServiceCompleted:
		// Reopen is allowed until the entry lands on an invoice.
		return next == ServiceInProgress
	}
	return false
}

// InvoiceStatus enumerates invoice billing states.
//
// DRAFT → SENT → PAID, monotonic. CANCELLED exists in the stored enumeration
// but no transition produces it.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoiceSent      InvoiceStatus = "SENT"
	InvoicePaid      InvoiceStatus = "PAID"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// ParseInvoiceStatus maps free-form input to an InvoiceStatus.
func ParseInvoiceStatus(raw string) (InvoiceStatus, bool) {
	switch InvoiceStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case InvoiceDraft:
		return InvoiceDraft, true
	case InvoiceSent:
		return InvoiceSent, true
	case InvoicePaid:
		return InvoicePaid, true
	case InvoiceCancelled:
		return InvoiceCancelled, true
	}
	return "", false
}

// CanTransitionTo reports whether an invoice may move from s to next.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceDraft:
		return next == InvoiceSent
	case InvoiceSent:
		return next == InvoicePaid
	}
	return false
}

// Next returns the forward state in the DRAFT → SENT → PAID progression.
// PAID is absorbing; requesting the next state from PAID yields PAID again.
func (s InvoiceStatus) Next() InvoiceStatus {
	switch s {
	case InvoiceDraft:
		return InvoiceSent
	case InvoiceSent:
		return InvoicePaid
	}
	return s
}

// NoteType classifies customer note submissions.
type NoteType string

const (
	NoteIssue   NoteType = "ISSUE"
	NoteRequest NoteType = "REQUEST"
	NoteInfo    NoteType = "INFO"
)

// ParseNoteType maps free-form input to a NoteType, defaulting to INFO.
func ParseNoteType(raw string) NoteType {
	switch NoteType(strings.ToUpper(strings.TrimSpace(raw))) {
	case NoteIssue:
		return NoteIssue
	case NoteRequest:
		return NoteRequest
	}
	return NoteInfo
}
