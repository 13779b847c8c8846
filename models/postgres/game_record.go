package postgres

import (
	"time"

	"gorm.io/datatypes"
)

/*
 * 'GameRecord' is the persisted summary of a finished game. Winner is empty
 * when the game ended on a tie or with an empty final score. In-progress
 * games are never stored; a crash loses them by design.
 */
type GameRecord struct {
	ID             uint           `gorm:"primaryKey"`
	GameID         string         `gorm:"size:50;not null;index"`
	Name           string         `gorm:"size:100"`
	WinnerUsername string         `gorm:"size:50;index"`
	Scores         datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	FinishedAt     time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}
