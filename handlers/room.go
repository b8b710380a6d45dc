package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"innmaster/database"
	"innmaster/models"
)

// AddRoomRequest 新增房间请求结构
type AddRoomRequest struct {
	Name  string  `json:"name" binding:"required"`
	Type  string  `json:"type" binding:"required"`
	Price int64   `json:"price" binding:"required,min=1"` // 月租金
	Floor int     `json:"floor" binding:"required"`
	Area  float32 `json:"area"`
}

// ReadingRequest 抄表请求结构，读数允许为0
type ReadingRequest struct {
	Electricity int `json:"electricity" binding:"min=0"`
	Water       int `json:"water" binding:"min=0"`
}

// GetRooms 获取房间列表，支持按状态过滤
func GetRooms(c *gin.Context) {
	query := database.DB.Order("name")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var rooms []models.Room
	if err := query.Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取房间信息失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "获取房间列表成功",
		"rooms":   rooms,
	})
}

// AddRoom 新增房间，初始状态为空房
func AddRoom(c *gin.Context) {
	var req AddRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	// 检查房间编号是否已存在
	var existing models.Room
	if err := database.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error": "房间编号已存在",
		})
		return
	}

	room := models.Room{
		Name:   req.Name,
		Type:   req.Type,
		Status: models.RoomStatusEmpty,
		Price:  req.Price,
		Floor:  req.Floor,
		Area:   req.Area,
	}

	if err := database.DB.Create(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "房间创建失败",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "房间创建成功",
		"room":    room,
	})
}

// CheckoutRoom 退房：房间转为空房，在住租客合同结束
func CheckoutRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的房间ID",
		})
		return
	}

	username, _ := c.Get("username")

	var room models.Room
	if err := database.DB.Where("id = ? AND status = ?", roomID, models.RoomStatusOccupied).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "房间不存在或不在入住状态",
		})
		return
	}

	now := time.Now()

	// 结束在住租客的合同
	var tenant models.Tenant
	if err := database.DB.Where("room_id = ? AND status <> ?", roomID, models.TenantStatusEnded).First(&tenant).Error; err == nil {
		tenant.Status = models.TenantStatusEnded
		database.DB.Save(&tenant)
		database.DB.Create(&models.TenantHistoryLog{
			TenantID: tenant.ID,
			Date:     now,
			Action:   "ended",
			Detail:   "退房，合同结束",
			User:     username.(string),
		})
	}

	// 重置房间状态
	room.Status = models.RoomStatusEmpty
	room.OccupiedSince = nil
	room.EmptyDays = 0
	if err := database.DB.Save(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "退房失败",
		})
		return
	}

	database.DB.Create(&models.RoomOperation{
		RoomID:        room.ID,
		RoomName:      room.Name,
		TenantName:    tenant.Name,
		OperationType: "checkout",
		OperationTime: now,
		Operator:      username.(string),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "退房成功",
		"room":    room,
	})
}

// ReserveRoom 预订房间：空房转为已预订
func ReserveRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的房间ID",
		})
		return
	}

	username, _ := c.Get("username")

	var room models.Room
	if err := database.DB.Where("id = ? AND status = ?", roomID, models.RoomStatusEmpty).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "房间不存在或不是空房",
		})
		return
	}

	room.Status = models.RoomStatusReserved
	if err := database.DB.Save(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "预订失败",
		})
		return
	}

	database.DB.Create(&models.RoomOperation{
		RoomID:        room.ID,
		RoomName:      room.Name,
		OperationType: "reserved",
		OperationTime: time.Now(),
		Operator:      username.(string),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "预订成功",
		"room":    room,
	})
}

// SetMaintenanceRequest 维修状态切换请求结构
type SetMaintenanceRequest struct {
	Enable bool   `json:"enable"`
	Note   string `json:"note"`
}

// SetRoomMaintenance 切换房间维修状态
// 空房可整间转入维修，在住房间只标记存在维修问题
func SetRoomMaintenance(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的房间ID",
		})
		return
	}

	var req SetMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	username, _ := c.Get("username")

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "房间不存在",
		})
		return
	}

	opType := "maintenance_off"
	if req.Enable {
		opType = "maintenance_on"
		room.HasMaintenanceIssue = true
		if room.Status == models.RoomStatusEmpty {
			room.Status = models.RoomStatusMaintenance
		}
	} else {
		room.HasMaintenanceIssue = false
		if room.Status == models.RoomStatusMaintenance {
			room.Status = models.RoomStatusEmpty
		}
	}

	if err := database.DB.Save(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "更新房间状态失败",
		})
		return
	}

	database.DB.Create(&models.RoomOperation{
		RoomID:        room.ID,
		RoomName:      room.Name,
		OperationType: opType,
		OperationTime: time.Now(),
		Operator:      username.(string),
		Note:          req.Note,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "房间维修状态已更新",
		"room":    room,
	})
}

// RecordReading 录入电水表读数
func RecordReading(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的房间ID",
		})
		return
	}

	var req ReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	username, _ := c.Get("username")

	var room models.Room
	if err := database.DB.First(&room, roomID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "房间不存在",
		})
		return
	}

	// 新读数不能小于上次读数
	if req.Electricity < room.LastElectricity || req.Water < room.LastWater {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "新读数不能小于上次读数",
		})
		return
	}

	now := time.Now()
	room.LastElectricity = req.Electricity
	room.LastWater = req.Water
	room.LastReadingDate = &now

	if err := database.DB.Save(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "保存读数失败",
		})
		return
	}

	database.DB.Create(&models.RoomOperation{
		RoomID:        room.ID,
		RoomName:      room.Name,
		OperationType: "utility_reading",
		OperationTime: now,
		Operator:      username.(string),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "读数已记录",
		"room":    room,
	})
}

// GetRoomOperations 获取房间操作记录
func GetRoomOperations(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的房间ID",
		})
		return
	}

	var operations []models.RoomOperation
	if err := database.DB.Where("room_id = ?", roomID).Order("operation_time desc").Find(&operations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取操作记录失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "获取操作记录成功",
		"operations": operations,
	})
}
