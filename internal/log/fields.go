package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldEmail     = "email"
	FieldMonth     = "month"
	FieldBackend   = "backend"
	FieldTxID      = "transaction_id"
	FieldTxType    = "transaction_type"
	FieldCategory  = "category"
	FieldCents     = "amount_cents"
	FieldPurpose   = "purpose"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentAccounts = "accounts"
	ComponentBudget   = "budget"
	ComponentStore    = "store"
	ComponentNotify   = "notify"
)

// Operations defines standard operation names
const (
	OpSignup         = "signup"
	OpVerify         = "verify"
	OpCreatePassword = "create_password"
	OpLogin          = "login"
	OpLogout         = "logout"
	OpReset          = "forgot_password"
	OpUpdateAddress  = "update_address"
	OpChangePassword = "change_password"
	OpAddTx          = "add_transaction"
	OpDeleteTx       = "delete_transaction"
	OpLoad           = "load"
	OpSave           = "save"
	OpStartup        = "startup"
	OpShutdown       = "shutdown"
)
