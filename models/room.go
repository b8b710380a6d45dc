package models

import (
	"time"
)

// 房间状态
const (
	RoomStatusEmpty       = "empty"       // 空房
	RoomStatusOccupied    = "occupied"    // 已入住
	RoomStatusMaintenance = "maintenance" // 维修中
	RoomStatusReserved    = "reserved"    // 已预订
)

// Room 房间信息表
type Room struct {
	ID                  int        `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string     `gorm:"type:varchar(50);not null;unique" json:"name"` // 房间编号，如A101
	Type                string     `gorm:"type:varchar(50)" json:"type"`                 // 单人间/双人间/Studio
	Status              string     `gorm:"type:varchar(20);index" json:"status"`
	Price               int64      `gorm:"type:bigint" json:"price"` // 月租金(đ)
	Floor               int        `gorm:"type:int" json:"floor"`
	Area                float32    `gorm:"type:float(7,2)" json:"area,omitempty"` // 面积(m2)
	Debt                int64      `gorm:"type:bigint" json:"debt"`               // 当前欠款
	HasMaintenanceIssue bool       `gorm:"default:false" json:"has_maintenance_issue"`
	EmptyDays           int        `gorm:"type:int" json:"empty_days"` // 空置天数
	OccupiedSince       *time.Time `json:"occupied_since,omitempty"`
	LastElectricity     int        `gorm:"type:int" json:"last_electricity"` // 上次电表读数
	LastWater           int        `gorm:"type:int" json:"last_water"`       // 上次水表读数
	LastReadingDate     *time.Time `json:"last_reading_date,omitempty"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// RoomOperation 房间操作记录表
type RoomOperation struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	RoomID        int       `gorm:"type:int;index" json:"room_id"`
	RoomName      string    `gorm:"type:varchar(50)" json:"room_name"`
	TenantName    string    `gorm:"type:varchar(255)" json:"tenant_name"`
	OperationType string    `gorm:"type:varchar(50)" json:"operation_type"` // checkin, checkout, maintenance_on, maintenance_off, utility_reading
	OperationTime time.Time `gorm:"type:datetime" json:"operation_time"`
	Operator      string    `gorm:"type:varchar(255)" json:"operator"` // 操作人用户名
	Note          string    `gorm:"type:text" json:"note,omitempty"`
}
