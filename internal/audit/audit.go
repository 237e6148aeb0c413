// Package audit records who changed what through the admin API.
package audit

import (
	"context"
	"net/http"

	httputil "hms/pkg/http"
	"hms/pkg/middleware"
)

const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionPurge   = "purge"
	ActionReorder = "reorder"
	ActionUpload  = "upload"
	ActionResend  = "resend_email"
)

type Entry struct {
	Actor      *middleware.Principal
	Action     string
	Resource   string
	ResourceID string
	Details    map[string]any
	IPAddress  string
}

// Recorder persists audit entries. Implementations never fail the caller.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// FromRequest fills in the acting principal and client IP from r.
func FromRequest(r *http.Request, action, resource, resourceID string, details map[string]any) Entry {
	actor, _ := middleware.PrincipalFrom(r.Context())
	return Entry{
		Actor:      actor,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		IPAddress:  httputil.ClientIP(r),
	}
}

type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) {}
