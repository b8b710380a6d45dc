package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"innmaster/database"
	"innmaster/models"
	"innmaster/statestore"
)

// ChatMessage 聊天消息
type ChatMessage struct {
	Role string `json:"role"` // user, ai
	Text string `json:"text"`
}

// AskRequest 提问请求结构
type AskRequest struct {
	Query  string `json:"query" binding:"required"`
	Module string `json:"module"` // rooms, tenants, billing, maintenance，缺省为概览
}

// defaultChatHistory 默认欢迎消息
func defaultChatHistory() []ChatMessage {
	return []ChatMessage{
		{Role: "ai", Text: "Chào bạn! Tôi là trợ lý chiến lược InnMaster. Tôi có thể giúp gì cho bạn?"},
	}
}

// moduleContext 按模块取当前数据快照作为AI情境输入
func moduleContext(module string) interface{} {
	switch module {
	case "rooms":
		var rooms []models.Room
		database.DB.Find(&rooms)
		return rooms
	case "tenants":
		var tenants []models.Tenant
		database.DB.Find(&tenants)
		return tenants
	case "billing":
		var invoices []models.Invoice
		database.DB.Find(&invoices)
		return invoices
	case "maintenance":
		var tickets []models.MaintenanceTicket
		database.DB.Find(&tickets)
		return tickets
	default:
		var roomCount, tenantCount, invoiceCount, ticketCount int64
		database.DB.Model(&models.Room{}).Count(&roomCount)
		database.DB.Model(&models.Tenant{}).Count(&tenantCount)
		database.DB.Model(&models.Invoice{}).Count(&invoiceCount)
		database.DB.Model(&models.MaintenanceTicket{}).Count(&ticketCount)
		return gin.H{
			"rooms":    roomCount,
			"tenants":  tenantCount,
			"invoices": invoiceCount,
			"tickets":  ticketCount,
		}
	}
}

// AskAssistant 向AI助手提问，附带当前模块数据快照
// AI调用失败时返回兜底应答，不会报错中断
func AskAssistant(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	response := aiClient.Ask(req.Query, moduleContext(req.Module))

	// 会话历史同步到持久化状态
	history := statestore.GetState(stateStore, statestore.KeyAIMessages, defaultChatHistory())
	history = append(history,
		ChatMessage{Role: "user", Text: req.Query},
		ChatMessage{Role: "ai", Text: response.Summary},
	)
	stateStore.SaveState(statestore.KeyAIMessages, history)

	c.JSON(http.StatusOK, gin.H{
		"message":  "AI应答成功",
		"response": response,
	})
}

// AnalyzeBusiness 80/20经营分析，全量快照作为输入
func AnalyzeBusiness(c *gin.Context) {
	snapshot := gin.H{
		"rooms":    moduleContext("rooms"),
		"tenants":  moduleContext("tenants"),
		"invoices": moduleContext("billing"),
		"tickets":  moduleContext("maintenance"),
	}

	response := aiClient.AnalyzeBusiness(snapshot)

	c.JSON(http.StatusOK, gin.H{
		"message":  "经营分析完成",
		"response": response,
	})
}

// GetChatHistory 获取AI会话历史
func GetChatHistory(c *gin.Context) {
	history := statestore.GetState(stateStore, statestore.KeyAIMessages, defaultChatHistory())
	c.JSON(http.StatusOK, gin.H{
		"message":  "获取会话历史成功",
		"messages": history,
	})
}

// ClearChatHistory 清空AI会话历史并写入新的欢迎消息
func ClearChatHistory(c *gin.Context) {
	cleared := []ChatMessage{
		{Role: "ai", Text: "Nhật ký đã được xóa. Tôi đã sẵn sàng cho ngữ cảnh mới."},
	}
	stateStore.SaveState(statestore.KeyAIMessages, cleared)

	c.JSON(http.StatusOK, gin.H{
		"message":  "会话历史已清空",
		"messages": cleared,
	})
}
