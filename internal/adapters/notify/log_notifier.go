package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier stands in for an outbound mail channel: the reset link is
// recorded for operators instead of being delivered anywhere.
type LogNotifier struct {
	log     *zap.Logger
	baseURL string
}

func NewLogNotifier(log *zap.Logger, baseURL string) *LogNotifier {
	if baseURL == "" {
		baseURL = "https://your-app/reset-password"
	}
	return &LogNotifier{log: log, baseURL: baseURL}
}

func (n *LogNotifier) SendResetToken(_ context.Context, email, token string) error {
	n.log.Info("password reset link",
		zap.String("email", email),
		zap.String("link", n.baseURL+"?token="+token),
	)
	return nil
}
