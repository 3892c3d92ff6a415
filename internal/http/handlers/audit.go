package handlers

import (
	"encoding/json"
	"log"

	"github.com/you/draftly/domain"
)

// logAudit writes a structured audit line. Events carry no secret material
// by construction.
func logAudit(event *domain.AuditEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("AUDIT_MARSHAL_FAILED: type=%s error=%v", event.EventType, err)
		return
	}
	log.Printf("AUDIT: %s", data)
}
