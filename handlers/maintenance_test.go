package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innmaster/database"
	"innmaster/models"
)

// newTicketRouter 构造工单测试路由
func newTicketRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Set("username", "tester")
		c.Set("identity", "manager")
		c.Next()
	})
	r.POST("/tickets", CreateTicket)
	r.POST("/tickets/:id/assign", AssignTicket)
	r.POST("/tickets/:id/resolve", ResolveTicket)
	r.POST("/tickets/:id/cancel", CancelTicket)
	return r
}

func seedTicketRoom(t *testing.T) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Room{
		ID: 1, Name: "A101", Type: "单人间", Status: models.RoomStatusOccupied, Price: 3500000, Floor: 1,
	}).Error)
}

func TestCreateTicketStampsSLADeadline(t *testing.T) {
	setupTestDB(t)
	seedTicketRoom(t)
	r := newTicketRouter()

	w := doJSON(t, r, http.MethodPost, "/tickets", gin.H{
		"room_id":     1,
		"issue_type":  models.IssueTypeElectric,
		"description": "Ổ điện bị chập",
		"priority":    models.TicketPriorityHigh,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var ticket models.MaintenanceTicket
	require.NoError(t, database.DB.First(&ticket, 1).Error)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
	assert.Equal(t, 24*time.Hour, ticket.SLADeadline.Sub(ticket.CreatedAt))

	// 房间打上维修标记
	var room models.Room
	require.NoError(t, database.DB.First(&room, 1).Error)
	assert.True(t, room.HasMaintenanceIssue)
}

func TestResolveRejectsUnassignedTicket(t *testing.T) {
	setupTestDB(t)
	seedTicketRoom(t)
	r := newTicketRouter()

	w := doJSON(t, r, http.MethodPost, "/tickets", gin.H{
		"room_id":     1,
		"issue_type":  models.IssueTypeWater,
		"description": "Vòi nước rò rỉ",
		"priority":    models.TicketPriorityMedium,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 未派单的工单不能直接关单
	w = doJSON(t, r, http.MethodPost, "/tickets/1/resolve", gin.H{
		"resolution": "đã thay vòi mới",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var ticket models.MaintenanceTicket
	require.NoError(t, database.DB.First(&ticket, 1).Error)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)
}

func TestAssignRejectsResolvedTicket(t *testing.T) {
	setupTestDB(t)
	seedTicketRoom(t)
	r := newTicketRouter()

	w := doJSON(t, r, http.MethodPost, "/tickets", gin.H{
		"room_id":     1,
		"issue_type":  models.IssueTypeAC,
		"description": "Điều hòa không lạnh",
		"priority":    models.TicketPriorityHigh,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/tickets/1/assign", gin.H{"assignee": "Thợ Hùng"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/tickets/1/resolve", gin.H{
		"resolution": "đã nạp gas",
		"cost":       350000,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// 已关单的工单不能再派单
	w = doJSON(t, r, http.MethodPost, "/tickets/1/assign", gin.H{"assignee": "Thợ Nam"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var ticket models.MaintenanceTicket
	require.NoError(t, database.DB.First(&ticket, 1).Error)
	assert.Equal(t, models.TicketStatusDone, ticket.Status)
	assert.Equal(t, "Thợ Hùng", ticket.Assignee)
}

func TestCancelRejectsDoneTicket(t *testing.T) {
	setupTestDB(t)
	seedTicketRoom(t)
	r := newTicketRouter()

	w := doJSON(t, r, http.MethodPost, "/tickets", gin.H{
		"room_id":     1,
		"issue_type":  models.IssueTypeInternet,
		"description": "Mất mạng toàn tầng",
		"priority":    models.TicketPriorityLow,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/tickets/1/assign", gin.H{"assignee": "Thợ Hùng"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/tickets/1/resolve", gin.H{
		"resolution": "đã khởi động lại router",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/tickets/1/cancel", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
