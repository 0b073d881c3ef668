package error

// Goal error codes.
const (
	// Validation errors (01XXXX)
	CodeGoalNameRequired        Code = "GOL-010001"
	CodeGoalTargetInvalid       Code = "GOL-010003"
	CodeGoalSavedInvalid        Code = "GOL-010004"
	CodeGoalTargetDateInvalid   Code = "GOL-010005"
	CodeGoalIconInvalid         Code = "GOL-010006"
	CodeGoalColorInvalid        Code = "GOL-010007"
	CodeGoalIDRequired          Code = "GOL-010008"
	CodeGoalIDInvalid           Code = "GOL-010009"
	CodeContributionAmount      Code = "GOL-010010"
	CodeContributionDescTooLong Code = "GOL-010011"

	// Lookup and ownership errors (02XXXX)
	CodeGoalNotFound      Code = "GOL-020001"
	CodeNotAuthorizedGoal Code = "GOL-020002"

	// Conflict errors (03XXXX)
	CodeGoalNameExists Code = "GOL-030001"
)

// Goal messages returned to clients.
const (
	MsgGoalNotFound          = "Goal not found"
	MsgGoalNotFoundOrDeleted = "Goal not found or already deleted"
	MsgGoalNameExists        = "Goal with this name already exists"
)
