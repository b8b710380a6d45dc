package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"innmaster/database"
	"innmaster/models"
)

// AddTenantRequest 新增租客请求结构，入住即建档
type AddTenantRequest struct {
	Name          string `json:"name" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email"`
	IDCard        string `json:"id_card"`
	RoomID        int    `json:"room_id" binding:"required"`
	ContractStart string `json:"contract_start"`                          // 格式2006-01-02，缺省为当天
	ContractCycle int    `json:"contract_cycle" binding:"required,min=1"` // 合同周期(月)
	Deposit       int64  `json:"deposit"`
}

// RenewRequest 续约请求结构
type RenewRequest struct {
	Months int `json:"months" binding:"required,min=1"`
}

// MoveRequest 换房请求结构
type MoveRequest struct {
	RoomID int `json:"room_id" binding:"required"`
}

// GetTenants 获取租客列表，状态按合同时间实时推导
func GetTenants(c *gin.Context) {
	query := database.DB.Order("room_name")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tenants []models.Tenant
	if err := query.Find(&tenants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取租客信息失败",
		})
		return
	}

	// 已退租状态保持不变，其余按当前时间重算
	now := time.Now()
	for i := range tenants {
		if tenants[i].Status == models.TenantStatusEnded {
			continue
		}
		derived := models.DeriveTenantStatus(tenants[i].ContractEnd, now)
		if derived != tenants[i].Status {
			tenants[i].Status = derived
			database.DB.Model(&tenants[i]).Update("status", derived)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "获取租客列表成功",
		"tenants": tenants,
	})
}

// GetTenant 获取租客详情，附带操作历史
func GetTenant(c *gin.Context) {
	tenantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的租客ID",
		})
		return
	}

	var tenant models.Tenant
	if err := database.DB.First(&tenant, tenantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "租客不存在",
		})
		return
	}

	var history []models.TenantHistoryLog
	database.DB.Where("tenant_id = ?", tenantID).Order("date desc").Find(&history)

	var payments []models.PaymentRecord
	database.DB.Joins("JOIN invoices ON invoices.id = payment_records.invoice_id").
		Where("invoices.tenant_name = ?", tenant.Name).
		Order("payment_records.date desc").
		Find(&payments)

	c.JSON(http.StatusOK, gin.H{
		"message":  "获取租客详情成功",
		"tenant":   tenant,
		"history":  history,
		"payments": payments,
	})
}

// AddTenant 新增租客并办理入住，目标房间必须是空房或已预订
func AddTenant(c *gin.Context) {
	var req AddTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	username, _ := c.Get("username")
	now := time.Now()

	// 合同开始日期显式校验，格式错误直接报错而不是静默落空
	contractStart := now
	if req.ContractStart != "" {
		parsed, err := time.Parse("2006-01-02", req.ContractStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "合同开始日期格式错误，应为2006-01-02",
			})
			return
		}
		contractStart = parsed
	}

	var room models.Room
	if err := database.DB.Where("id = ? AND status IN ?", req.RoomID,
		[]string{models.RoomStatusEmpty, models.RoomStatusReserved}).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "房间不存在或不可入住",
		})
		return
	}

	contractEnd := contractStart.AddDate(0, req.ContractCycle, 0)
	tenant := models.Tenant{
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		IDCard:        req.IDCard,
		RoomID:        room.ID,
		RoomName:      room.Name,
		ContractStart: contractStart,
		ContractEnd:   contractEnd,
		ContractCycle: req.ContractCycle,
		Deposit:       req.Deposit,
		Status:        models.DeriveTenantStatus(contractEnd, now),
	}

	if err := database.DB.Create(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "租客创建失败",
		})
		return
	}

	// 房间转为已入住
	room.Status = models.RoomStatusOccupied
	room.OccupiedSince = &now
	room.EmptyDays = 0
	database.DB.Save(&room)

	database.DB.Create(&models.TenantHistoryLog{
		TenantID: tenant.ID,
		Date:     now,
		Action:   "created",
		Detail:   fmt.Sprintf("入住房间%s，合同%d个月", room.Name, req.ContractCycle),
		User:     username.(string),
	})
	database.DB.Create(&models.RoomOperation{
		RoomID:        room.ID,
		RoomName:      room.Name,
		TenantName:    tenant.Name,
		OperationType: "checkin",
		OperationTime: now,
		Operator:      username.(string),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "租客创建成功",
		"tenant":  tenant,
	})
}

// RenewContract 续约：从当前合同截止日顺延指定月数
func RenewContract(c *gin.Context) {
	tenantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的租客ID",
		})
		return
	}

	var req RenewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	username, _ := c.Get("username")

	var tenant models.Tenant
	if err := database.DB.First(&tenant, tenantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "租客不存在",
		})
		return
	}
	if tenant.Status == models.TenantStatusEnded {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "已退租租客不能续约",
		})
		return
	}

	now := time.Now()
	tenant.ContractEnd = tenant.ContractEnd.AddDate(0, req.Months, 0)
	tenant.ContractCycle = req.Months
	tenant.Status = models.DeriveTenantStatus(tenant.ContractEnd, now)

	if err := database.DB.Save(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "续约失败",
		})
		return
	}

	database.DB.Create(&models.TenantHistoryLog{
		TenantID: tenant.ID,
		Date:     now,
		Action:   "renewed",
		Detail:   fmt.Sprintf("续约%d个月，新截止日%s", req.Months, tenant.ContractEnd.Format("2006-01-02")),
		User:     username.(string),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "续约成功",
		"tenant":  tenant,
	})
}

// MoveTenant 换房：原房间转空，目标房间转入住
func MoveTenant(c *gin.Context) {
	tenantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的租客ID",
		})
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	username, _ := c.Get("username")

	var tenant models.Tenant
	if err := database.DB.First(&tenant, tenantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "租客不存在",
		})
		return
	}
	if tenant.Status == models.TenantStatusEnded {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "已退租租客不能换房",
		})
		return
	}

	var newRoom models.Room
	if err := database.DB.Where("id = ? AND status IN ?", req.RoomID,
		[]string{models.RoomStatusEmpty, models.RoomStatusReserved}).First(&newRoom).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "目标房间不存在或不可入住",
		})
		return
	}

	now := time.Now()

	// 原房间转空
	var oldRoom models.Room
	if err := database.DB.First(&oldRoom, tenant.RoomID).Error; err == nil {
		oldRoom.Status = models.RoomStatusEmpty
		oldRoom.OccupiedSince = nil
		oldRoom.EmptyDays = 0
		database.DB.Save(&oldRoom)
	}

	oldName := tenant.RoomName
	newRoom.Status = models.RoomStatusOccupied
	newRoom.OccupiedSince = &now
	newRoom.EmptyDays = 0
	database.DB.Save(&newRoom)

	tenant.RoomID = newRoom.ID
	tenant.RoomName = newRoom.Name
	if err := database.DB.Save(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "换房失败",
		})
		return
	}

	database.DB.Create(&models.TenantHistoryLog{
		TenantID: tenant.ID,
		Date:     now,
		Action:   "moved",
		Detail:   fmt.Sprintf("从%s换到%s", oldName, newRoom.Name),
		User:     username.(string),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "换房成功",
		"tenant":  tenant,
	})
}
