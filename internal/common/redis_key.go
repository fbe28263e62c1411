package common

import "fmt"

func RedisKeyRecentActivity(userID string) string {
	return fmt.Sprintf("recentactivity:%s", userID)
}
