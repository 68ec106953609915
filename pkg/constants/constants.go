package constants

// ProjectStatus
const (
	ProjectStatusNew        = "new"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusPending    = "pending"
	ProjectStatusDelayed    = "delayed"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCanceled   = "canceled"
)

// TaskStatus, listed in board order
const (
	TaskStatusBacklog    = "backlog"
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// TaskStatusTerminal is the status counted toward project progress.
const TaskStatusTerminal = TaskStatusDone

// TaskPriority
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// InvoiceStatus
const (
	InvoiceStatusDraft    = "draft"
	InvoiceStatusPending  = "pending"
	InvoiceStatusPaid     = "paid"
	InvoiceStatusOverdue  = "overdue"
	InvoiceStatusCanceled = "canceled"
)

// User roles
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleClient = "client"
)

// Auth types
const (
	AuthTypeLDAP  = "ldap"
	AuthTypeLocal = "local"
)

// JWT
const (
	JWTTypeAccess  = "access"
	JWTTypeRefresh = "refresh"
)

// Gin context keys
const (
	ContextPrincipal = "principal"
)

// HTTP Header
const (
	HeaderAuthorization = "Authorization"
	HeaderBearerPrefix  = "Bearer "
)
