// Package policy is the single authorization point of the credit service.
// Every use case asks it before touching an application; handlers never
// compare role strings themselves.
package policy

import (
	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/creditservice/models"
	"github.com/mycompany/credit-platform/internal/roles"
)

// Action enumerates everything a caller can try to do with applications.
type Action int

const (
	ActionCreate Action = iota
	ActionViewOwn
	ActionViewAll
	ActionUpdate
	ActionTransition
	ActionEvaluateRisk
	ActionAttachDocument
)

// capabilities is the closed action×role table. Absent entries mean denied,
// so a new action must be added here explicitly before any role can use it.
var capabilities = map[Action]map[roles.Role]bool{
	ActionCreate:         {roles.Affiliate: true, roles.Analyst: true, roles.Admin: true},
	ActionViewOwn:        {roles.Affiliate: true, roles.Analyst: true, roles.Admin: true},
	ActionViewAll:        {roles.Analyst: true, roles.Admin: true},
	ActionUpdate:         {roles.Analyst: true, roles.Admin: true},
	ActionTransition:     {roles.Admin: true},
	ActionEvaluateRisk:   {roles.Analyst: true, roles.Admin: true},
	ActionAttachDocument: {roles.Affiliate: true, roles.Analyst: true, roles.Admin: true},
}

// Can reports whether the role may perform the action at all, ignoring
// ownership.
func Can(role roles.Role, action Action) bool {
	return capabilities[action][role]
}

// Require returns ErrInsufficientRole when the role may not perform the
// action.
func Require(role roles.Role, action Action) error {
	if !Can(role, action) {
		return common.ErrInsufficientRole
	}
	return nil
}

// RequireOwnership gates record-level access: affiliates may only touch
// their own applications, privileged roles may touch any.
func RequireOwnership(role roles.Role, requesterID, ownerID int64) error {
	if role.Privileged() {
		return nil
	}
	if requesterID != ownerID {
		return common.ErrNotOwner
	}
	return nil
}

// RequireDeletable combines the ownership gate with the state gate: an
// affiliate may delete only an own application that is still pending, while
// privileged roles delete regardless of state.
func RequireDeletable(role roles.Role, requesterID int64, app *models.Application) error {
	if role.Privileged() {
		return nil
	}
	if err := RequireOwnership(role, requesterID, app.UserID); err != nil {
		return err
	}
	if !app.DeletableByOwner() {
		return common.ErrNotDeletable
	}
	return nil
}
