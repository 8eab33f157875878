package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// SMTPStatus is satisfied by *email.Dispatcher.
type SMTPStatus interface {
	IsConfigured() bool
}

// PingFunc checks an optional backing service. A nil PingFunc means the
// service is not configured.
type PingFunc func(ctx context.Context) error

type healthUsecase struct {
	smtp      SMTPStatus
	redisPing PingFunc
}

func NewHealthUsecase(smtp SMTPStatus, redisPing PingFunc) HealthUsecase {
	return &healthUsecase{
		smtp:      smtp,
		redisPing: redisPing,
	}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":     "ok",
		"smtp":       "configured",
		"rate_limit": "memory",
	}

	if u.smtp == nil || !u.smtp.IsConfigured() {
		status["smtp"] = "missing_credentials"
	}

	if u.redisPing != nil {
		if err := u.redisPing(ctx); err != nil {
			status["rate_limit"] = "memory_fallback"
		} else {
			status["rate_limit"] = "redis"
		}
	}

	return status
}
