package domain

import (
	"context"
	"time"

	"contact-form-backend/pkg/email"
)

// ContactForm is the raw, untrusted contact form input. Missing fields bind
// as empty strings.
type ContactForm struct {
	ContactName   string `form:"contact_name" json:"contact_name"`
	ContactEmail  string `form:"contact_email" json:"contact_email"`
	ContactReason string `form:"contact_reason" json:"contact_reason"`
	Comments      string `form:"comments" json:"comments"`
}

// ContactEcho is the sanitized view of a form, echoed back to the user. It is
// never accepted by the mail composer.
type ContactEcho struct {
	ContactName   string `json:"contact_name"`
	ContactEmail  string `json:"contact_email"`
	ContactReason string `json:"contact_reason"`
	Comments      string `json:"comments"`
}

// Submission is a sanitized contact form that passed every validation rule.
// Its fields are unexported so the only way to obtain one is ValidateContact.
type Submission struct {
	contactName   string
	contactEmail  string
	contactReason string
	comments      string
}

func (s Submission) ContactName() string   { return s.contactName }
func (s Submission) ContactEmail() string  { return s.contactEmail }
func (s Submission) ContactReason() string { return s.contactReason }
func (s Submission) Comments() string      { return s.comments }

// Echo returns the presenter view of the submission.
func (s Submission) Echo() ContactEcho {
	return ContactEcho{
		ContactName:   s.contactName,
		ContactEmail:  s.contactEmail,
		ContactReason: s.contactReason,
		Comments:      s.comments,
	}
}

// ValidationResult holds either a Submission (Errors is empty) or the ordered
// list of rule violations. Echo is always populated.
type ValidationResult struct {
	Echo       ContactEcho
	Errors     []string
	submission *Submission
}

// Valid reports whether the form passed every rule.
func (r ValidationResult) Valid() bool {
	return r.submission != nil && len(r.Errors) == 0
}

// Submission returns the validated submission; ok is false when validation
// failed.
func (r ValidationResult) Submission() (Submission, bool) {
	if !r.Valid() {
		return Submission{}, false
	}
	return *r.submission, true
}

// ContactState is the terminal (or intermediate) state of one submission.
type ContactState string

const (
	ContactReceived         ContactState = "RECEIVED"
	ContactValidationFailed ContactState = "VALIDATION_FAILED"
	ContactDispatching      ContactState = "DISPATCHING"
	ContactSucceeded        ContactState = "SUCCEEDED"
	ContactDispatchFailed   ContactState = "DISPATCH_FAILED"
)

// DeliveryKind names the two emails sent per submission.
type DeliveryKind string

const (
	DeliveryConfirmation DeliveryKind = "confirmation"
	DeliveryNotification DeliveryKind = "notification"
)

// Delivery records one attempted email and its outcome.
type Delivery struct {
	Kind    DeliveryKind  `json:"kind"`
	Outcome email.Outcome `json:"outcome"`
}

// ContactResult is the outcome of handling one contact form submission.
type ContactResult struct {
	Success     bool         `json:"success"`
	State       ContactState `json:"state"`
	Errors      []string     `json:"errors"`
	Echo        *ContactEcho `json:"echo,omitempty"`
	Deliveries  []Delivery   `json:"deliveries,omitempty"`
	SubmittedAt time.Time    `json:"submitted_at"`
}

// Mailer performs one delivery attempt per call.
type Mailer interface {
	Dispatch(ctx context.Context, msg email.Message) email.Outcome
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// Submit validates the form and, when valid, sends the customer
	// confirmation and the admin notification.
	Submit(ctx context.Context, form ContactForm) ContactResult
}
