package redis

import "fmt"

// Key formats live here so no caller hand-rolls the same Sprintf.

func FormatFeedKey(gameID string) string {
	return fmt.Sprintf("game:%s:feed", gameID)
}
