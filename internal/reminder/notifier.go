package reminder

import (
	"context"
	"errors"

	"github.com/tartampluch/go-sitter/internal/config"
)

// Permission is the user's decision about local notifications.
type Permission int

const (
	// PermissionDefault means the user has not decided yet.
	PermissionDefault Permission = iota
	PermissionGranted
	PermissionDenied
	// PermissionUnsupported means the platform cannot show notifications at all.
	PermissionUnsupported
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	case PermissionUnsupported:
		return "unsupported"
	default:
		return "default"
	}
}

// ParsePermission is the inverse of Permission.String.
// Unknown values map to PermissionDefault.
func ParsePermission(s string) Permission {
	switch s {
	case "granted":
		return PermissionGranted
	case "denied":
		return PermissionDenied
	case "unsupported":
		return PermissionUnsupported
	default:
		return PermissionDefault
	}
}

var (
	ErrUnsupported      = errors.New(config.ErrNotifUnsupported)
	ErrPermissionDenied = errors.New(config.ErrNotifDenied)
)

// Payload is one local notification.
// Tag identifies the kind of reminder so a newer one can replace an older one.
type Payload struct {
	Title              string
	Body               string
	Icon               string
	Tag                string
	RequireInteraction bool
}

// Notifier is the platform notification sink.
type Notifier interface {
	// Permission returns the current decision without prompting.
	Permission() Permission
	// RequestPermission asks the user when the decision is still open and
	// returns the resulting state.
	RequestPermission(ctx context.Context) (Permission, error)
	// Notify shows the payload. Callers check Permission first.
	Notify(p Payload) error
}
