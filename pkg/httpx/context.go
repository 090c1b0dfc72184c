package httpx

import "context"

type ctxKey string

const (
	// CtxKeySubject holds the verified token subject (username).
	CtxKeySubject ctxKey = "subject"
)

// SubjectFromContext returns the verified token subject, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(CtxKeySubject).(string)
	return s, ok && s != ""
}
