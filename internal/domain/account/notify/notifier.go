package notify

import "context"

// ResetNotifier delivers a password-reset token to an account holder.
// Delivery is fire-and-forget from the orchestrator's point of view: a
// failed dispatch is an infrastructure error, not a user-facing one.
type ResetNotifier interface {
	SendResetToken(ctx context.Context, email, token string) error
}
