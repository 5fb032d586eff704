package entity

import "time"

// Base carries the audit columns shared by every domain table.
type Base struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedByID *uint     `json:"created_by_id,omitempty"`
	UpdatedByID *uint     `json:"updated_by_id,omitempty"`
}

// Audit stamps the acting user on both audit columns of a new row.
func (b *Base) Audit(userID uint) {
	if userID == 0 {
		return
	}
	b.CreatedByID = &userID
	b.UpdatedByID = &userID
}

// Touch stamps the acting user on an updated row.
func (b *Base) Touch(userID uint) {
	if userID == 0 {
		return
	}
	b.UpdatedByID = &userID
}
