package error

// Category error codes.
const (
	// Validation errors (01XXXX)
	CodeCategoryNameRequired Code = "CAT-010001"
	CodeCategoryIconRequired Code = "CAT-010003"
	CodeInvalidColorFormat   Code = "CAT-010005"
	CodeCategoryIDRequired   Code = "CAT-010006"
	CodeCategoryIDInvalid    Code = "CAT-010007"

	// Lookup and ownership errors (02XXXX)
	CodeCategoryNotFound      Code = "CAT-020001"
	CodeSystemCategory        Code = "CAT-020002"
	CodeNotAuthorizedCategory Code = "CAT-020003"

	// Conflict errors (03XXXX)
	CodeCategoryNameExists Code = "CAT-030001"
	CodeCategoryInUse      Code = "CAT-030002"
)

// Category messages returned to clients.
const (
	MsgCategoryNotFound          = "Category not found"
	MsgCategoryNotFoundOrDeleted = "Category not found or already deleted"
	MsgCategoryNameExists        = "Category with this name already exists"
	MsgCategoryInUse             = "Cannot delete category with existing expenses. Please reassign or delete associated expenses first."
	MsgDeleteSystemCategory      = "Cannot delete system categories."
	MsgModifySystemCategory      = "Cannot modify system categories."
	MsgInvalidColor              = "Color must be a valid hex color (e.g., #FF0000 or #F00)"
)
