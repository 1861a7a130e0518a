package domain

type CtxKey string

const (
	KeyAccountID   CtxKey = "AccountID"
	KeyAccountKind CtxKey = "AccountKind"
	KeyEmail       CtxKey = "Email"
)
