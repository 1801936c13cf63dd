package errors

// Generic codes
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeInternalError = "INTERNAL_ERROR"
)

// Auth codes
const (
	CodeInvalidCredentials       = "AUTH_INVALID_CREDENTIALS"
	CodeNoToken                  = "AUTH_NO_TOKEN"
	CodeInvalidToken             = "AUTH_INVALID_TOKEN"
	CodeTokenExpired             = "AUTH_TOKEN_EXPIRED"
	CodeUserNotFound             = "AUTH_USER_NOT_FOUND"
	CodeAccountDisabled          = "AUTH_ACCOUNT_DISABLED"
	CodeEmailNotVerified         = "AUTH_EMAIL_NOT_VERIFIED"
	CodeAuthRequired             = "AUTH_REQUIRED"
	CodeInsufficientPermissions  = "AUTH_INSUFFICIENT_PERMISSIONS"
	CodeAdminRequired            = "AUTH_ADMIN_REQUIRED"
	CodeNotProjectOwner          = "AUTH_NOT_PROJECT_OWNER"
	CodeEmailExists              = "AUTH_EMAIL_EXISTS"
	CodeWeakPassword             = "AUTH_WEAK_PASSWORD"
	CodeInvalidRole              = "AUTH_INVALID_ROLE"
	CodeInvalidVerificationToken = "AUTH_INVALID_VERIFICATION_TOKEN"
)

// Project lifecycle codes
const (
	CodeProjectNotFound          = "PROJECT_NOT_FOUND"
	CodeProjectStatusNotAllowed  = "PROJECT_STATUS_NOT_ALLOWED"
	CodeProjectNotEditable       = "PROJECT_NOT_EDITABLE"
	CodeProjectNotReviewable     = "PROJECT_NOT_REVIEWABLE"
	CodeProjectNotActivatable    = "PROJECT_NOT_ACTIVATABLE"
	CodeProjectStatusConflict    = "PROJECT_STATUS_CONFLICT"
	CodeInvalidStatus            = "INVALID_STATUS"
	CodeInvalidRiskRating        = "INVALID_RISK_RATING"
	CodeMissingRequiredFields    = "MISSING_REQUIRED_FIELDS"
	CodeMissingRequiredDocuments = "MISSING_REQUIRED_DOCUMENTS"
	CodeProjectIncomplete        = "PROJECT_INCOMPLETE"
	CodeCompanyProfileRequired   = "COMPANY_PROFILE_REQUIRED"
	CodeProfileNotFound          = "PROFILE_NOT_FOUND"
)

// Document codes
const (
	CodeDocumentNotFound = "DOCUMENT_NOT_FOUND"
	CodeMissingDocType   = "MISSING_DOC_TYPE"
	CodeNoFileUploaded   = "NO_FILE_UPLOADED"
	CodeInvalidFile      = "INVALID_FILE"
	CodeFileTooLarge     = "FILE_TOO_LARGE"
)

// CodeIdempotencyConflict is returned while a keyed request is still running.
const CodeIdempotencyConflict = "IDEMPOTENCY_CONFLICT"
