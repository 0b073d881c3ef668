package error

// Category suggestion error codes.
const (
	CodeSuggestionDescriptionRequired Code = "AI-010001"
	CodeSuggestionNoCategories        Code = "AI-010002"
	CodeAIServiceUnavailable          Code = "AI-020001"
	CodeAIInvalidResponse             Code = "AI-020002"
	CodeAIRateLimited                 Code = "AI-020003"
)

// Suggestion messages returned to clients.
const (
	MsgAIServiceUnavailable = "Category suggestion service is unavailable"
	MsgAIRateLimited        = "Too many requests. Please try again later."
)
