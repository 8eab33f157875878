package usecase

import (
	"context"
	"fmt"
	"time"

	"contact-form-backend/internal/domain"
	"contact-form-backend/pkg/logger"
)

type contactUsecase struct {
	mailer     domain.Mailer
	adminEmail string
	now        func() time.Time
}

// NewContactUsecase creates a new contact usecase. adminEmail receives the
// notification for every accepted submission.
func NewContactUsecase(mailer domain.Mailer, adminEmail string) domain.ContactUsecase {
	return NewContactUsecaseWithClock(mailer, adminEmail, time.Now)
}

// NewContactUsecaseWithClock is NewContactUsecase with an injectable clock.
func NewContactUsecaseWithClock(mailer domain.Mailer, adminEmail string, now func() time.Time) domain.ContactUsecase {
	return &contactUsecase{
		mailer:     mailer,
		adminEmail: adminEmail,
		now:        now,
	}
}

// Submit validates the form and sends both emails. The confirmation goes out
// before the notification and a failure of the first does not stop the second.
func (uc *contactUsecase) Submit(ctx context.Context, form domain.ContactForm) domain.ContactResult {
	submittedAt := uc.now()
	log := logger.Log.With("component", "contact")
	log.Debug("contact submission", "state", domain.ContactReceived)

	validated := domain.ValidateContact(form)
	sub, ok := validated.Submission()
	if !ok {
		log.Info("contact submission rejected",
			"state", domain.ContactValidationFailed,
			"errors", len(validated.Errors),
		)
		echo := validated.Echo
		return domain.ContactResult{
			Success:     false,
			State:       domain.ContactValidationFailed,
			Errors:      validated.Errors,
			Echo:        &echo,
			SubmittedAt: submittedAt,
		}
	}

	log.Debug("contact submission", "state", domain.ContactDispatching)

	// Order is fixed and both sends are always attempted.
	deliveries := []domain.Delivery{
		{
			Kind:    domain.DeliveryConfirmation,
			Outcome: uc.mailer.Dispatch(ctx, ComposeConfirmation(sub)),
		},
		{
			Kind:    domain.DeliveryNotification,
			Outcome: uc.mailer.Dispatch(ctx, ComposeNotification(sub, uc.adminEmail, submittedAt)),
		},
	}

	echo := sub.Echo()
	result := domain.ContactResult{
		Success:     true,
		State:       domain.ContactSucceeded,
		Errors:      []string{},
		Echo:        &echo,
		Deliveries:  deliveries,
		SubmittedAt: submittedAt,
	}

	for _, d := range deliveries {
		if d.Outcome.Success {
			continue
		}
		log.Error("contact email failed",
			"kind", d.Kind,
			"error", d.Outcome.Err,
		)
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to send %s email: %s", d.Kind, d.Outcome.Message))
	}

	if len(result.Errors) > 0 {
		result.Success = false
		result.State = domain.ContactDispatchFailed
	}

	log.Info("contact submission handled", "state", result.State)
	return result
}
