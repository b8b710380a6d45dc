package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"innmaster/database"
	"innmaster/models"
)

// CreateTicketRequest 报修请求结构
type CreateTicketRequest struct {
	RoomID      int    `json:"room_id" binding:"required"`
	IssueType   string `json:"issue_type" binding:"required"` // electric, water, ac, internet, other
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"required"` // low, medium, high
}

// AssignTicketRequest 派单请求结构
type AssignTicketRequest struct {
	Assignee string `json:"assignee" binding:"required"`
}

// ResolveTicketRequest 关单请求结构
type ResolveTicketRequest struct {
	Resolution string `json:"resolution" binding:"required"`
	Cost       int64  `json:"cost"`
}

// ticketView 工单响应结构，附带超时标记
type ticketView struct {
	models.MaintenanceTicket
	IsOverdue bool `json:"is_overdue"`
}

// GetTickets 获取工单列表
// 排序规则：超SLA优先，其次优先级降序，最后创建时间新的在前
func GetTickets(c *gin.Context) {
	query := database.DB.Preload("Logs")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tickets []models.MaintenanceTicket
	if err := query.Find(&tickets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取工单失败",
		})
		return
	}

	now := time.Now()
	models.SortTickets(tickets, now)

	views := make([]ticketView, 0, len(tickets))
	overdueCount := 0
	for _, t := range tickets {
		overdue := t.IsOverdueAt(now)
		if overdue {
			overdueCount++
		}
		if c.Query("filter") == "overdue" && !overdue {
			continue
		}
		views = append(views, ticketView{MaintenanceTicket: t, IsOverdue: overdue})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "获取工单列表成功",
		"tickets":       views,
		"overdue_count": overdueCount,
	})
}

// CreateTicket 报修：工单创建时一次性确定SLA截止时间
func CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	if req.Priority != models.TicketPriorityLow && req.Priority != models.TicketPriorityMedium && req.Priority != models.TicketPriorityHigh {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "优先级必须是 low、medium 或 high",
		})
		return
	}
	switch req.IssueType {
	case models.IssueTypeElectric, models.IssueTypeWater, models.IssueTypeAC, models.IssueTypeInternet, models.IssueTypeOther:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的故障类型",
		})
		return
	}

	username, _ := c.Get("username")

	var room models.Room
	if err := database.DB.First(&room, req.RoomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "房间不存在",
		})
		return
	}

	now := time.Now()
	ticket := models.MaintenanceTicket{
		RoomID:      room.ID,
		RoomName:    room.Name,
		IssueType:   req.IssueType,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      models.TicketStatusOpen,
		CreatedAt:   now,
		SLADeadline: models.SLADeadlineFor(now, req.Priority),
	}

	if err := database.DB.Create(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "工单创建失败",
		})
		return
	}

	database.DB.Create(&models.TicketLog{
		TicketID: ticket.ID,
		Date:     now,
		Action:   "created",
		User:     username.(string),
		Note:     req.Description,
	})

	// 房间打上维修问题标记
	database.DB.Model(&room).Update("has_maintenance_issue", true)

	c.JSON(http.StatusCreated, gin.H{
		"message":   "工单创建成功",
		"ticket":    ticket,
		"sla_hours": models.SLAHours(req.Priority),
	})
}

// AssignTicket 派单：open转in_progress，逆向流转一律拒绝
func AssignTicket(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的工单ID",
		})
		return
	}

	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	username, _ := c.Get("username")

	var ticket models.MaintenanceTicket
	if err := database.DB.First(&ticket, ticketID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "工单不存在",
		})
		return
	}
	if ticket.Status != models.TicketStatusOpen {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "只有待处理工单可以派单",
		})
		return
	}

	ticket.Assignee = req.Assignee
	ticket.Status = models.TicketStatusInProgress
	if err := database.DB.Save(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "派单失败",
		})
		return
	}

	database.DB.Create(&models.TicketLog{
		TicketID: ticket.ID,
		Date:     time.Now(),
		Action:   "assigned",
		User:     username.(string),
		Note:     "派给" + req.Assignee,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "派单成功",
		"ticket":  ticket,
	})
}

// ResolveTicket 关单：in_progress转done，记录处理结果与费用
// SLA截止时间保持创建时的值不变
func ResolveTicket(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的工单ID",
		})
		return
	}

	var req ResolveTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	username, _ := c.Get("username")

	var ticket models.MaintenanceTicket
	if err := database.DB.First(&ticket, ticketID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "工单不存在",
		})
		return
	}
	if ticket.Status != models.TicketStatusInProgress {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "只有处理中的工单可以关单",
		})
		return
	}

	ticket.Status = models.TicketStatusDone
	ticket.Resolution = req.Resolution
	ticket.Cost = req.Cost
	if err := database.DB.Save(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "关单失败",
		})
		return
	}

	database.DB.Create(&models.TicketLog{
		TicketID: ticket.ID,
		Date:     time.Now(),
		Action:   "resolved",
		User:     username.(string),
		Note:     req.Resolution,
	})

	clearRoomMaintenanceFlag(ticket.RoomID)

	c.JSON(http.StatusOK, gin.H{
		"message": "关单成功",
		"ticket":  ticket,
	})
}

// CancelTicket 取消工单，open或in_progress均可取消
func CancelTicket(c *gin.Context) {
	ticketID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的工单ID",
		})
		return
	}

	username, _ := c.Get("username")

	var ticket models.MaintenanceTicket
	if err := database.DB.First(&ticket, ticketID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "工单不存在",
		})
		return
	}
	if ticket.Status != models.TicketStatusOpen && ticket.Status != models.TicketStatusInProgress {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "工单已结束，不能取消",
		})
		return
	}

	ticket.Status = models.TicketStatusCancelled
	if err := database.DB.Save(&ticket).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "取消失败",
		})
		return
	}

	database.DB.Create(&models.TicketLog{
		TicketID: ticket.ID,
		Date:     time.Now(),
		Action:   "cancelled",
		User:     username.(string),
	})

	clearRoomMaintenanceFlag(ticket.RoomID)

	c.JSON(http.StatusOK, gin.H{
		"message": "工单已取消",
		"ticket":  ticket,
	})
}

// clearRoomMaintenanceFlag 房间没有未结工单时清除维修标记
func clearRoomMaintenanceFlag(roomID int) {
	var openCount int64
	database.DB.Model(&models.MaintenanceTicket{}).
		Where("room_id = ? AND status IN ?", roomID,
			[]string{models.TicketStatusOpen, models.TicketStatusInProgress}).
		Count(&openCount)
	if openCount == 0 {
		database.DB.Model(&models.Room{}).Where("id = ?", roomID).Update("has_maintenance_issue", false)
	}
}
