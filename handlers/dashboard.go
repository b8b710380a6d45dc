package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"innmaster/database"
	"innmaster/models"
	"innmaster/statestore"
)

// Policy 经营策略开关
type Policy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State bool   `json:"state"`
	Desc  string `json:"desc"`
}

// 策略开关持久化键，不随登出清除
const policiesStateKey = "policies"

// defaultPolicies 默认策略开关
func defaultPolicies() []Policy {
	return []Policy{
		{ID: "auto_cycle", Name: "Tự động tạo kỳ thu", State: true, Desc: "Ngày 1 hàng tháng"},
		{ID: "grace_period", Name: "Grace Period (3 ngày)", State: true, Desc: "Không tính phạt nếu trễ < 3 ngày"},
		{ID: "auto_reminder", Name: "Nhắc nợ tự động (L1)", State: true, Desc: "Gửi Zalo khi có hóa đơn"},
		{ID: "strict_sla", Name: "SLA Bảo trì nghiêm ngặt", State: false, Desc: "Cảnh báo sau 12h thay vì 24h"},
	}
}

// GetDashboard 经营概览：出租率、收款进度、逾期欠款、工单压力
func GetDashboard(c *gin.Context) {
	now := time.Now()

	var totalRooms, occupiedRooms, emptyRooms int64
	database.DB.Model(&models.Room{}).Count(&totalRooms)
	database.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusOccupied).Count(&occupiedRooms)
	database.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusEmpty).Count(&emptyRooms)

	occupancy := float64(0)
	if totalRooms > 0 {
		occupancy = float64(occupiedRooms) / float64(totalRooms) * 100
	}

	// 当月账单收款进度
	month := now.Format("01/2006")
	var expected, collected int64
	database.DB.Model(&models.Invoice{}).Where("month = ?", month).Select("COALESCE(SUM(amount), 0)").Scan(&expected)
	database.DB.Model(&models.Invoice{}).Where("month = ?", month).Select("COALESCE(SUM(paid_amount), 0)").Scan(&collected)

	// 逾期账单按当前时间现算，不依赖缓存状态
	var invoices []models.Invoice
	database.DB.Find(&invoices)
	var overdueCount int
	var overdueDebt int64
	for i := range invoices {
		invoices[i].Refresh(now)
		if invoices[i].Status == models.InvoiceStatusOverdue {
			overdueCount++
			overdueDebt += invoices[i].Remaining()
		}
	}

	var tickets []models.MaintenanceTicket
	database.DB.Where("status IN ?", []string{models.TicketStatusOpen, models.TicketStatusInProgress}).Find(&tickets)
	slaViolated := 0
	for i := range tickets {
		if tickets[i].IsOverdueAt(now) {
			slaViolated++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "获取经营概览成功",
		"kpi": gin.H{
			"total_rooms":     totalRooms,
			"occupied_rooms":  occupiedRooms,
			"empty_rooms":     emptyRooms,
			"occupancy":       occupancy,
			"month":           month,
			"expected_total":  expected,
			"collected_total": collected,
			"overdue_count":   overdueCount,
			"overdue_debt":    overdueDebt,
			"open_tickets":    len(tickets),
			"sla_violated":    slaViolated,
		},
	})
}

// GetPolicies 获取策略开关列表
func GetPolicies(c *gin.Context) {
	policies := statestore.GetState(stateStore, policiesStateKey, defaultPolicies())
	c.JSON(http.StatusOK, gin.H{
		"message":  "获取策略开关成功",
		"policies": policies,
	})
}

// TogglePolicyRequest 策略开关请求结构
type TogglePolicyRequest struct {
	State bool `json:"state"`
}

// TogglePolicy 切换策略开关（店长权限）
func TogglePolicy(c *gin.Context) {
	policyID := c.Param("id")

	var req TogglePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	policies := statestore.GetState(stateStore, policiesStateKey, defaultPolicies())
	found := false
	for i := range policies {
		if policies[i].ID == policyID {
			policies[i].State = req.State
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "策略不存在",
		})
		return
	}

	stateStore.SaveState(policiesStateKey, policies)

	c.JSON(http.StatusOK, gin.H{
		"message":  "策略已更新",
		"policies": policies,
	})
}
