package domain

import "context"

// Notifier delivers the terminal outcome of a backup run to an operator.
type Notifier interface {
	NotifySuccess(ctx context.Context, run Run, replicated bool) error
	NotifyFailure(ctx context.Context, run Run, step string, cause error) error
}
