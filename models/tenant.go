package models

import (
	"time"

	"github.com/lib/pq"
)

// 租客状态
const (
	TenantStatusActive   = "active"   // 合同有效
	TenantStatusExpiring = "expiring" // 即将到期(30天内)
	TenantStatusEnded    = "ended"    // 已退租
)

// Tenant 租客信息表
type Tenant struct {
	ID            int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string         `gorm:"type:varchar(20)" json:"phone"`
	Email         string         `gorm:"type:varchar(255)" json:"email,omitempty"`
	IDCard        string         `gorm:"type:varchar(20)" json:"id_card,omitempty"`
	RoomID        int            `gorm:"type:int;index" json:"room_id"`
	RoomName      string         `gorm:"type:varchar(50)" json:"room_name"`
	ContractStart time.Time      `gorm:"type:datetime" json:"contract_start"`
	ContractEnd   time.Time      `gorm:"type:datetime" json:"contract_end"`
	ContractCycle int            `gorm:"type:int;default:6" json:"contract_cycle"` // 合同周期(月)
	Deposit       int64          `gorm:"type:bigint" json:"deposit"`
	Status        string         `gorm:"type:varchar(20);index" json:"status"`
	Debt          int64          `gorm:"type:bigint" json:"debt"`
	RiskTags      pq.StringArray `gorm:"type:text[]" json:"risk_tags,omitempty"` // late_payment, noisy等风险标签
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TenantHistoryLog 租客操作历史表
type TenantHistoryLog struct {
	ID       int       `gorm:"primaryKey" json:"id"`
	TenantID int       `gorm:"type:int;index" json:"tenant_id"`
	Date     time.Time `gorm:"type:datetime" json:"date"`
	Action   string    `gorm:"type:varchar(50)" json:"action"` // created, renewed, moved, ended
	Detail   string    `gorm:"type:text" json:"detail"`
	User     string    `gorm:"type:varchar(255)" json:"user"`
}

// DeriveTenantStatus 根据合同截止时间推导租客状态
// 已退租状态由退租操作显式写入，不参与推导
func DeriveTenantStatus(contractEnd, now time.Time) string {
	if now.After(contractEnd) {
		return TenantStatusEnded
	}
	if contractEnd.Sub(now) <= 30*24*time.Hour {
		return TenantStatusExpiring
	}
	return TenantStatusActive
}
