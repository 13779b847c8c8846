package postgres

import (
	"time"
)

/*
 * 'User' is a registered account. Only credentials and profile data live
 * here; live session state never touches the database.
 */
type User struct {
	Username     string    `gorm:"primaryKey;size:50;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	MemberSince  time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}
