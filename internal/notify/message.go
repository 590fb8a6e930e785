// Package notify holds NotificationPublisher implementations and the
// human-readable rendering of workflow events they share.
package notify

import (
	"fmt"
	"strings"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
)

// Render builds a subject line and plain-text body for an event.
func Render(ev domain.NotificationEvent) (subject, body string) {
	str := func(key string) string {
		if v, ok := ev.Payload[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	}

	switch ev.Kind {
	case domain.EventIncidentCreated:
		subject = fmt.Sprintf("Incident %s opened on audit %s", str("incident_number"), str("audit_number"))
		body = fmt.Sprintf("A %s incident (%s priority) was detected.\n%s", str("type"), str("priority"), str("description"))
	case domain.EventIncidentAssigned:
		subject = fmt.Sprintf("Incident %s assigned", str("incident_number"))
		body = fmt.Sprintf("Incident %s is now assigned to %s and is %s.", str("incident_number"), str("assignee_id"), str("state"))
	case domain.EventIncidentStateChanged:
		subject = fmt.Sprintf("Incident %s is now %s", str("incident_number"), str("to"))
		body = fmt.Sprintf("Incident %s moved from %s to %s.", str("incident_number"), str("from"), str("to"))
		if notes := str("notes"); notes != "" {
			body += "\nNotes: " + notes
		}
	case domain.EventAuditFinalized:
		subject = fmt.Sprintf("Audit %s finalized", str("audit_number"))
		body = fmt.Sprintf("Audit %s for purchase order %s was finalized with %s line items.",
			str("audit_number"), str("purchase_order_ref"), str("line_items"))
	case domain.EventAuditClosed:
		subject = fmt.Sprintf("Audit %s closed", str("audit_number"))
		body = fmt.Sprintf("Audit %s for purchase order %s was closed.", str("audit_number"), str("purchase_order_ref"))
	case domain.EventAuditCancelled:
		subject = fmt.Sprintf("Audit %s cancelled", str("audit_number"))
		body = fmt.Sprintf("Audit %s for purchase order %s was cancelled.", str("audit_number"), str("purchase_order_ref"))
		if reason := str("reason"); reason != "" {
			body += "\nReason: " + reason
		}
	default:
		subject = string(ev.Kind)
		body = fmt.Sprintf("%s on %s", ev.Kind, ev.EntityID)
	}
	return strings.TrimSpace(subject), strings.TrimSpace(body)
}
