package repository

import "github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"

// Set groups one repository per relation over the same DBTX, so a service
// can swap the whole gateway for a transaction-scoped one.
type Set struct {
	Companies     CompanyRepo
	Identities    IdentityRepo
	Users         UserRepo
	Projects      ProjectRepo
	Tasks         TaskRepo
	Assignments   AssignmentRepo
	TimeLogs      TimeLogRepo
	Deliverables  DeliverableRepo
	Versions      DeliverableVersionRepo
	Invitations   InvitationRepo
	Notifications NotificationRepo
}

// NewSet builds SQL repositories for every relation over q.
func NewSet(q db.DBTX) *Set {
	return &Set{
		Companies:     NewSQLCompanyRepo(q),
		Identities:    NewSQLIdentityRepo(q),
		Users:         NewSQLUserRepo(q),
		Projects:      NewSQLProjectRepo(q),
		Tasks:         NewSQLTaskRepo(q),
		Assignments:   NewSQLAssignmentRepo(q),
		TimeLogs:      NewSQLTimeLogRepo(q),
		Deliverables:  NewSQLDeliverableRepo(q),
		Versions:      NewSQLDeliverableVersionRepo(q),
		Invitations:   NewSQLInvitationRepo(q),
		Notifications: NewSQLNotificationRepo(q),
	}
}
