package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

const (
	ActionBookingCreate           = "booking.create"
	ActionBookingEdit             = "booking.edit"
	ActionBookingCancel           = "booking.cancel"
	ActionBookingCancelCheckedOut = "booking.cancel_checked_out"
	ActionBookingRestore          = "booking.restore"
	ActionBookingManageCancelled  = "booking.manage_cancelled"
	ActionBookingDelete           = "booking.delete"
	ActionRequestManage           = "request.manage"
	ActionRequestConvert          = "request.convert"
	ActionSequenceIssue           = "sequence.issue"
)

// Policy answers whether a role may perform an action. The mapping itself is configuration.
type Policy interface {
	Allowed(role, action string) bool
}

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission        `json:"endpoints"`
	Actions   map[string][]string `json:"actions"`
	Skip      bool                `json:"skip"`
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Allowed looks the role up in the action map. A "*" entry grants every action.
func (r *PermissionData) Allowed(role, action string) bool {
	if r == nil {
		return false
	}

	actions, ok := r.Actions[role]
	if !ok {
		return false
	}

	return slices.Contains(actions, "*") || slices.Contains(actions, action)
}

func Parse(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &permissions, nil
}

func Get() *PermissionData {
	permissions, err := Parse(permissionsData)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().
		Int("endpoints", len(permissions.Endpoints)).
		Int("roles", len(permissions.Actions)).
		Msg("Successfully loaded embedded permissions")

	return permissions
}

// NewPolicy exposes the embedded action map as a Policy.
func NewPolicy(data *PermissionData) Policy {
	return data
}
