package auth

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/casbin/casbin"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/models"
)

// objects and actions named in the ACL policy
const (
	ObjectTransaction = "transaction"
	ObjectStaff       = "staff"

	ActionCreate  = "create"
	ActionRead    = "read"
	ActionReadOwn = "read_own"
	ActionList    = "list"
	ActionReview  = "review"
	ActionDelete  = "delete"
	ActionManage  = "manage"
)

type Authorizer struct {
	enforcer *casbin.Enforcer
}

// New builds an RBAC enforcer from casbin model text and CSV policy lines
// ("p, role, object, action" and "g, role, parent-role").
func New(model, policy string) (a *Authorizer, err error) {
	defer func() {
		// casbin v1 panics on malformed models
		if r := recover(); r != nil {
			a, err = nil, fmt.Errorf("loading acl model: %v", r)
		}
	}()

	enforcer := casbin.NewEnforcer(casbin.NewModel(model))

	if err := loadPolicy(enforcer, policy); err != nil {
		return nil, err
	}
	enforcer.BuildRoleLinks()

	return &Authorizer{enforcer}, nil
}

func loadPolicy(enforcer *casbin.Enforcer, policy string) error {
	r := csv.NewReader(strings.NewReader(policy))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'

	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading acl policy: %w", err)
		}

		params := make([]interface{}, 0, len(record)-1)
		for _, field := range record[1:] {
			params = append(params, strings.TrimSpace(field))
		}

		switch strings.TrimSpace(record[0]) {
		case "p":
			enforcer.AddPolicy(params...)
		case "g":
			enforcer.AddGroupingPolicy(params...)
		default:
			return fmt.Errorf("unknown acl policy type %q", record[0])
		}
	}
}

// Authorize permits the caller when its role (or a role it inherits) holds action on object.
func (a *Authorizer) Authorize(identity models.Identity, object, action string) error {
	if !a.enforcer.Enforce(string(identity.Role), object, action) {
		msg := fmt.Sprintf(
			"%s not permitted to %s %s",
			identity.Role,
			action,
			object,
		)
		return apperror.Forbidden(msg)
	}

	return nil
}

// AuthorizeOwner additionally permits the owning customer through the "<action>_own" policy.
func (a *Authorizer) AuthorizeOwner(identity models.Identity, ownerID, object, action string) error {
	if a.enforcer.Enforce(string(identity.Role), object, action) {
		return nil
	}

	if identity.ID != "" && identity.ID == ownerID &&
		a.enforcer.Enforce(string(identity.Role), object, action+"_own") {
		return nil
	}

	return apperror.Forbidden("Access denied.")
}

// HasAnyRole is the plain role-set check used by route gates.
func HasAnyRole(identity models.Identity, roles ...models.Role) bool {
	for _, r := range roles {
		if identity.Role == r {
			return true
		}
	}
	return false
}
