package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innmaster/database"
	"innmaster/models"
)

// newRoomRouter 构造房间测试路由
func newRoomRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Set("username", "tester")
		c.Set("identity", "manager")
		c.Next()
	})
	r.POST("/rooms/:room_id/reading", RecordReading)
	return r
}

func TestRecordReadingAcceptsZero(t *testing.T) {
	setupTestDB(t)
	r := newRoomRouter()

	// 新装表的房间读数从0开始
	require.NoError(t, database.DB.Create(&models.Room{
		ID: 1, Name: "B204", Type: "单人间", Status: models.RoomStatusOccupied, Price: 3500000, Floor: 2,
	}).Error)

	w := doJSON(t, r, http.MethodPost, "/rooms/1/reading", gin.H{
		"electricity": 0,
		"water":       0,
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecordReadingRejectsLowerThanLast(t *testing.T) {
	setupTestDB(t)
	r := newRoomRouter()

	require.NoError(t, database.DB.Create(&models.Room{
		ID: 1, Name: "A101", Type: "单人间", Status: models.RoomStatusOccupied, Price: 3500000, Floor: 1,
		LastElectricity: 1250, LastWater: 86,
	}).Error)

	w := doJSON(t, r, http.MethodPost, "/rooms/1/reading", gin.H{
		"electricity": 1200,
		"water":       90,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 读数保持不变
	var room models.Room
	require.NoError(t, database.DB.First(&room, 1).Error)
	assert.Equal(t, 1250, room.LastElectricity)
	assert.Equal(t, 86, room.LastWater)
}
