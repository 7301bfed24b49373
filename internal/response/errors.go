package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Quiz ──────────────────────────────────────────────────────────
	ErrOptionOutOfRange  ErrCode = "OPTION_OUT_OF_RANGE"
	ErrQuizCompleted     ErrCode = "QUIZ_COMPLETED"
	ErrQuizNotCompleted  ErrCode = "QUIZ_NOT_COMPLETED"
	ErrStaleStep         ErrCode = "STALE_STEP"
	ErrUnsupportedAction ErrCode = "UNSUPPORTED_ACTION"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "校验失败，请检查填写内容。"
	case ErrInvalidPayload:
		return "请求内容格式不正确。"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "请求的资源不存在。"
	case ErrConflict:
		return "请求冲突，请稍后重试。"

	// ─── Quiz ──────────────────────────────────────────────────────────
	case ErrOptionOutOfRange:
		return "所选选项不存在。"
	case ErrQuizCompleted:
		return "测评已完成，如需重新作答请先重置。"
	case ErrQuizNotCompleted:
		return "测评尚未完成，暂无推荐结果。"
	case ErrStaleStep:
		return "该题已作答，页面已刷新到最新进度。"
	case ErrUnsupportedAction:
		return "不支持的操作。"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "请求过于频繁，请稍后再试。"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "服务器内部错误。"
	default:
		return "发生未知错误。"
	}
}
