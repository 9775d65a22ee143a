package rbac

import "context"

type ctxKey string

const (
	ctxKeySub  ctxKey = "sub"
	ctxKeyRole ctxKey = "role"
	ctxKeyUID  ctxKey = "uid"
)

func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

func SubjectFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeySub).(string); ok {
		return s
	}
	return ""
}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKeyRole, role)
}

func RoleFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(ctxKeyRole).(string); ok {
		return s
	}
	return ""
}

func WithUserID(ctx context.Context, uid int64) context.Context {
	return context.WithValue(ctx, ctxKeyUID, uid)
}

func UserIDFromContext(ctx context.Context) int64 {
	if v, ok := ctx.Value(ctxKeyUID).(int64); ok {
		return v
	}
	return 0
}
