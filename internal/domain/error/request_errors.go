package error

// Request-level error codes shared by every resource endpoint.
const (
	// Request errors (01XXXX)
	CodeInvalidRequestBody Code = "REQ-010001"
	CodeInvalidReference   Code = "REQ-010002"
	CodeMethodNotAllowed   Code = "REQ-010003"

	// Lookup errors (02XXXX)
	CodeResourceNotFound Code = "REQ-020001"

	// Conflict errors (03XXXX)
	CodeResourceExists Code = "REQ-030001"

	// Server errors (04XXXX)
	CodeInternalError Code = "REQ-040001"
)

// Request-level messages returned to clients.
const (
	MsgInvalidRequestBody = "Invalid request body"
	MsgInvalidReference   = "Invalid reference id"
	MsgMethodNotAllowed   = "Method not allowed"
	MsgResourceExists     = "Resource already exists"
)
