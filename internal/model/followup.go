package model

import "gorm.io/gorm/schema"

// FollowUpStatusSent marks a follow-up message that has gone out.
const FollowUpStatusSent = "enviado"

// FollowUp represents a row of the followups table. Only counted by the dashboard.
type FollowUp struct {
	ID     string `json:"id" gorm:"primaryKey;type:uuid"`
	Status string `json:"status" gorm:"column:status;type:text"`
}

// TableName specifies the table name for the FollowUp model, respecting the Namer.
func (FollowUp) TableName(namer schema.Namer) string {
	return namer.TableName("followups")
}
