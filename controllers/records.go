package controllers

import (
	"net/http"

	"Setler/middleware"
	models "Setler/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// @Summary Match history of the authenticated user
// @Description Returns finished games the user took part in, newest first
// @Tags records
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{game_id=string,name=string,winner=string,scores=object,finished_at=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/matches [get]
// @Security ApiKeyAuth
func GetMatchHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := middleware.JWT_decoder(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var records []models.GameRecord
		if err := db.
			Where(datatypes.JSONQuery("scores").HasKey(username)).
			Or("winner_username = ?", username).
			Order("finished_at DESC").
			Limit(50).
			Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, len(records))
		for i, r := range records {
			out[i] = gin.H{
				"game_id":     r.GameID,
				"name":        r.Name,
				"winner":      r.WinnerUsername,
				"scores":      r.Scores,
				"finished_at": r.FinishedAt,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// @Summary Recently finished games
// @Description Returns the latest finished games across all players
// @Tags records
// @Produce json
// @Success 200 {array} object{game_id=string,name=string,winner=string,finished_at=string}
// @Router /recent [get]
func GetRecentGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var records []models.GameRecord
		if err := db.Order("finished_at DESC").Limit(20).Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, len(records))
		for i, r := range records {
			out[i] = gin.H{
				"game_id":     r.GameID,
				"name":        r.Name,
				"winner":      r.WinnerUsername,
				"finished_at": r.FinishedAt,
			}
		}
		c.JSON(http.StatusOK, out)
	}
}
