package service

import (
	"encoding/json"

	"github.com/jmoiron/sqlx/types"
	"github.com/rs/zerolog/log"

	"github.com/Dhruv6019/BrivaMart/internal/models"
)

// audit appends one row to the trail. Audit failures are logged but never
// fail the operation they describe.
func audit(audits Audits, userID *string, action, resource, ip string, success bool, details map[string]interface{}) {
	if audits == nil {
		return
	}

	raw, err := json.Marshal(details)
	if err != nil {
		raw = []byte("{}")
	}

	entry := &models.AuditLog{
		UserID:    userID,
		Action:    action,
		Resource:  resource,
		Details:   types.JSONText(raw),
		Success:   success,
		IPAddress: ip,
	}
	if err := audits.Append(entry); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("audit append failed")
	}
}
