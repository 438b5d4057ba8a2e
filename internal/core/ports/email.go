package ports

import (
	"context"
)

// EmailService defines the interface for outbound notification mail.
// Delivery is best-effort; callers must not treat a send failure as fatal
// to the surrounding account operation.
type EmailService interface {
	SendVerificationLink(ctx context.Context, email, code, userName string) error
	SendPasswordResetCode(ctx context.Context, email, code, userName string) error
}
