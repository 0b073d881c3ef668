package error

// Spend error codes.
const (
	// Validation errors (01XXXX)
	CodeSpendAmountInvalid        Code = "SPD-010001"
	CodeSpendDescriptionRequired  Code = "SPD-010002"
	CodeSpendCategoryRequired     Code = "SPD-010004"
	CodeSpendCategoryInvalid      Code = "SPD-010005"
	CodeSpendPaymentMethodInvalid Code = "SPD-010006"
	CodeSpendDateInvalid          Code = "SPD-010007"
	CodeSpendNotesTooLong         Code = "SPD-010008"
	CodeSpendIDRequired           Code = "SPD-010009"
	CodeSpendIDInvalid            Code = "SPD-010010"
	CodeSpendFilterInvalid        Code = "SPD-010011"

	// Lookup and ownership errors (02XXXX)
	CodeSpendNotFound      Code = "SPD-020001"
	CodeNotAuthorizedSpend Code = "SPD-020002"
)

// Spend messages returned to clients.
const (
	MsgSpendNotFound          = "Spend not found"
	MsgSpendNotFoundOrDeleted = "Spend not found or already deleted"
	MsgInvalidCategory        = "Invalid category ID or category not accessible to your account."
)
