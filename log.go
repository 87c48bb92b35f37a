package peerfunds

import "log/slog"

// logger receives the warnings raised while reconciling: skipped dates, missing
// sentinel rows. Operations never fail because of them.
var logger = slog.Default()

// SetLogger replaces the logger used by the package.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}
