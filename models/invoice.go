package models

import (
	"time"
)

// 账单状态
const (
	InvoiceStatusPaid    = "paid"    // 已结清
	InvoiceStatusPending = "pending" // 待收款
	InvoiceStatusOverdue = "overdue" // 已逾期
	InvoiceStatusPartial = "partial" // 部分收款
)

// 收款方式
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
)

// 催缴渠道
const (
	ReminderMethodZalo   = "zalo"
	ReminderMethodSMS    = "sms"
	ReminderMethodManual = "manual"
)

// Invoice 账单表
// status和aging_days为推导字段缓存，任何读写前都会按当前时间重算，
// 金额与到期日才是事实来源
type Invoice struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string          `gorm:"type:varchar(50);unique" json:"code"` // 如INV-06/2024-A101
	RoomName    string          `gorm:"type:varchar(50);index" json:"room_name"`
	TenantName  string          `gorm:"type:varchar(255)" json:"tenant_name"`
	TenantPhone string          `gorm:"type:varchar(20)" json:"tenant_phone,omitempty"`
	Month       string          `gorm:"type:varchar(10);index" json:"month"` // MM/YYYY
	Amount      int64           `gorm:"type:bigint" json:"amount"`           // 总应收
	PaidAmount  int64           `gorm:"type:bigint" json:"paid_amount"`      // 已收
	Status      string          `gorm:"type:varchar(20);index" json:"status"`
	DueDate     time.Time       `gorm:"type:datetime" json:"due_date"`
	AgingDays   int             `gorm:"type:int" json:"aging_days"` // 逾期天数
	Items       []InvoiceItem   `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
	Payments    []PaymentRecord `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
	Reminders   []ReminderLog   `gorm:"foreignKey:InvoiceID" json:"reminders,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// InvoiceItem 账单明细行：房租、电费、水费等
type InvoiceItem struct {
	ID        int    `gorm:"primaryKey" json:"id"`
	InvoiceID int    `gorm:"type:int;index" json:"invoice_id"`
	Name      string `gorm:"type:varchar(255)" json:"name"`
	Quantity  int    `gorm:"type:int;default:1" json:"quantity"`
	Unit      string `gorm:"type:varchar(20)" json:"unit,omitempty"`
	Price     int64  `gorm:"type:bigint" json:"price"`
	Total     int64  `gorm:"type:bigint" json:"total"`
}

// PaymentRecord 收款记录表
type PaymentRecord struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	InvoiceID int       `gorm:"type:int;index" json:"invoice_id"`
	ReceiptNo string    `gorm:"type:varchar(36)" json:"receipt_no"`
	Date      time.Time `gorm:"type:datetime" json:"date"`
	Amount    int64     `gorm:"type:bigint" json:"amount"` // 实际收到金额，可大于冲抵额
	Method    string    `gorm:"type:varchar(20)" json:"method"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
}

// ReminderLog 催缴记录表，只记日志不动账
type ReminderLog struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	InvoiceID int       `gorm:"type:int;index" json:"invoice_id"`
	Date      time.Time `gorm:"type:datetime" json:"date"`
	Method    string    `gorm:"type:varchar(20)" json:"method"`
	Content   string    `gorm:"type:text" json:"content"`
}

// Remaining 剩余应收 = 总应收 - 已收，渲染时计算不落库
func (inv *Invoice) Remaining() int64 {
	return inv.Amount - inv.PaidAmount
}

// DeriveInvoiceStatus 按金额与到期日推导账单状态
// 结清优先，其次逾期，再次部分收款
func DeriveInvoiceStatus(amount, paid int64, dueDate, now time.Time) string {
	if paid >= amount {
		return InvoiceStatusPaid
	}
	if now.After(dueDate) {
		return InvoiceStatusOverdue
	}
	if paid > 0 {
		return InvoiceStatusPartial
	}
	return InvoiceStatusPending
}

// InvoiceAgingDays 逾期整天数，未逾期或已结清为0
func InvoiceAgingDays(amount, paid int64, dueDate, now time.Time) int {
	if paid >= amount || !now.After(dueDate) {
		return 0
	}
	return int(now.Sub(dueDate).Hours() / 24)
}

// Refresh 以给定时间重算状态与逾期天数，写回缓存字段
func (inv *Invoice) Refresh(now time.Time) {
	inv.Status = DeriveInvoiceStatus(inv.Amount, inv.PaidAmount, inv.DueDate, now)
	inv.AgingDays = InvoiceAgingDays(inv.Amount, inv.PaidAmount, inv.DueDate, now)
}
