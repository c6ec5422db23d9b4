package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType        = "Content-Type"
	HeaderContentDisposition = "Content-Disposition"
	HeaderXRequestID         = "X-Request-ID"
	HeaderXAPIKey            = "X-API-Key"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"

	APIVersionPrefix = "/api/v1"

	// Context keys
	ContextKeyRequestID = "request_id"
	ContextKeyAPIKey    = "api_key_index"

	// Database table names
	TableDocumentTemplates = "document_templates"
	TableTemplateVariables = "template_variables"
	TableArtifacts         = "artifacts"

	// Redis key prefixes
	RedisPrefixExportSession = "docforge:export_session:"
	RedisPrefixRateLimit     = "docforge:ratelimit:"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgValidationFailed    = "Validation failed"
)
