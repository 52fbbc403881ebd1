package domain

// UserRole represents the organizational role of a user.
// Roles form the coarse authorization layer: admins bypass all project
// checks, everyone else is resolved through ownership and grants.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleWorker  UserRole = "worker"
	UserRoleViewer  UserRole = "viewer"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleManager, UserRoleWorker, UserRoleViewer:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// Permission is the level carried by an explicit project grant.
type Permission string

const (
	PermissionViewer Permission = "viewer"
	PermissionEditor Permission = "editor"
)

func (p Permission) String() string { return string(p) }

func (p Permission) IsValid() bool {
	switch p {
	case PermissionViewer, PermissionEditor:
		return true
	}
	return false
}

// Level converts a grant permission into the resolved access level.
func (p Permission) Level() AccessLevel {
	switch p {
	case PermissionEditor:
		return AccessLevelEditor
	case PermissionViewer:
		return AccessLevelViewer
	}
	return AccessLevelNone
}

// AccessLevel is the result of resolving a user's effective permission on a
// project: none, viewer, or editor. Editor implies viewer.
type AccessLevel string

const (
	AccessLevelNone   AccessLevel = "none"
	AccessLevelViewer AccessLevel = "viewer"
	AccessLevelEditor AccessLevel = "editor"
)

func (l AccessLevel) String() string { return string(l) }

// CanView reports whether the level allows reading project content.
func (l AccessLevel) CanView() bool {
	return l == AccessLevelViewer || l == AccessLevelEditor
}

// CanEdit reports whether the level allows mutating project content.
func (l AccessLevel) CanEdit() bool {
	return l == AccessLevelEditor
}

// DocumentStatus represents the lifecycle state of a document.
// Transitions are deliberately unconstrained: any status is reachable from
// any other (an archived document may be re-published, and so on).
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusPublished DocumentStatus = "published"
	DocumentStatusArchived  DocumentStatus = "archived"
)

func (s DocumentStatus) String() string { return string(s) }

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusPublished, DocumentStatusArchived:
		return true
	}
	return false
}

// EntityType identifies the kind of domain entity referenced by an audit record.
type EntityType string

const (
	EntityTypeUser     EntityType = "user"
	EntityTypeProject  EntityType = "project"
	EntityTypeDocument EntityType = "document"
	EntityTypeAccess   EntityType = "access"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeUser, EntityTypeProject, EntityTypeDocument, EntityTypeAccess:
		return true
	}
	return false
}
