package domain

type Role string

const (
	RoleClient     Role = "client"
	RoleAdvisor    Role = "advisor"
	RoleSupport    Role = "support"
	RoleDeveloper  Role = "developer"
	RoleSuperAdmin Role = "superadmin"
)

// ValidRoles is the canonical set of accepted role strings.
var ValidRoles = map[Role]bool{
	RoleClient: true, RoleAdvisor: true, RoleSupport: true,
	RoleDeveloper: true, RoleSuperAdmin: true,
}

type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "pending"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectPaused     ProjectStatus = "paused"
	ProjectCompleted  ProjectStatus = "completed"
)

var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectPending: true, ProjectInProgress: true, ProjectPaused: true, ProjectCompleted: true,
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

var ValidTaskPriorities = map[TaskPriority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

var ValidTaskStatuses = map[TaskStatus]bool{
	TaskPending: true, TaskInProgress: true, TaskCompleted: true,
}

type DeliverableType string

const (
	DeliverableDocument DeliverableType = "document"
	DeliverableCode     DeliverableType = "code"
	DeliverableDesign   DeliverableType = "design"
	DeliverableManual   DeliverableType = "manual"
	DeliverableOther    DeliverableType = "other"
)

var ValidDeliverableTypes = map[DeliverableType]bool{
	DeliverableDocument: true, DeliverableCode: true, DeliverableDesign: true,
	DeliverableManual: true, DeliverableOther: true,
}

type DeliverableStatus string

const (
	DeliverablePending      DeliverableStatus = "pending"
	DeliverableInReview     DeliverableStatus = "in_review"
	DeliverableApproved     DeliverableStatus = "approved"
	DeliverableRejected     DeliverableStatus = "rejected"
	// DeliverableInCorrection is part of the status vocabulary and is rendered,
	// but no workflow operation moves a deliverable into it.
	DeliverableInCorrection DeliverableStatus = "in_correction"
)

var ValidDeliverableStatuses = map[DeliverableStatus]bool{
	DeliverablePending: true, DeliverableInReview: true, DeliverableApproved: true,
	DeliverableRejected: true, DeliverableInCorrection: true,
}

type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationSent      InvitationStatus = "sent"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationCancelled InvitationStatus = "cancelled"
	InvitationExpired   InvitationStatus = "expired"
)

type NotificationType string

const (
	NotifyAssignment   NotificationType = "assignment"
	NotifyStatusChange NotificationType = "status_change"
	NotifyComment      NotificationType = "comment"
	NotifyMention      NotificationType = "mention"
	NotifyInfo         NotificationType = "info"
)

// AssignmentRoleCollaborator is the fixed tag written on every task assignment row.
const AssignmentRoleCollaborator = "collaborator"
