package models

import (
	"sort"
	"time"
)

// 工单优先级
const (
	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
)

// 工单状态，只允许正向流转 open -> in_progress -> done
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusDone       = "done"
	TicketStatusCancelled  = "cancelled"
)

// 故障类型
const (
	IssueTypeElectric = "electric"
	IssueTypeWater    = "water"
	IssueTypeAC       = "ac"
	IssueTypeInternet = "internet"
	IssueTypeOther    = "other"
)

// MaintenanceTicket 维修工单表
// sla_deadline在创建时根据优先级一次性确定，之后不再重算
type MaintenanceTicket struct {
	ID          int         `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID      int         `gorm:"type:int;index" json:"room_id"`
	RoomName    string      `gorm:"type:varchar(50)" json:"room_name"`
	IssueType   string      `gorm:"type:varchar(20)" json:"issue_type"`
	Description string      `gorm:"type:text" json:"description"`
	Priority    string      `gorm:"type:varchar(20);index" json:"priority"`
	Status      string      `gorm:"type:varchar(20);index" json:"status"`
	CreatedAt   time.Time   `gorm:"type:datetime" json:"created_at"`
	SLADeadline time.Time   `gorm:"type:datetime" json:"sla_deadline"`
	Assignee    string      `gorm:"type:varchar(255)" json:"assignee,omitempty"`
	Resolution  string      `gorm:"type:text" json:"resolution,omitempty"` // 关单备注
	Cost        int64       `gorm:"type:bigint" json:"cost"`               // 维修费用
	Logs        []TicketLog `gorm:"foreignKey:TicketID" json:"logs,omitempty"`
}

// TicketLog 工单日志表
type TicketLog struct {
	ID       int       `gorm:"primaryKey" json:"id"`
	TicketID int       `gorm:"type:int;index" json:"ticket_id"`
	Date     time.Time `gorm:"type:datetime" json:"date"`
	Action   string    `gorm:"type:varchar(50)" json:"action"` // created, assigned, resolved, cancelled
	User     string    `gorm:"type:varchar(255)" json:"user"`
	Note     string    `gorm:"type:text" json:"note,omitempty"`
}

// SLAHours 按优先级返回SLA时限(小时)
func SLAHours(priority string) int {
	switch priority {
	case TicketPriorityHigh:
		return 24
	case TicketPriorityMedium:
		return 48
	default:
		return 72
	}
}

// SLADeadlineFor 创建时计算SLA截止时间 = 创建时间 + 时限
func SLADeadlineFor(createdAt time.Time, priority string) time.Time {
	return createdAt.Add(time.Duration(SLAHours(priority)) * time.Hour)
}

// IsOverdueAt 是否超SLA：超过截止时间且未完成
// 已完成的工单无论截止时间一律不算超时
func (t *MaintenanceTicket) IsOverdueAt(now time.Time) bool {
	return now.After(t.SLADeadline) && t.Status != TicketStatusDone
}

// PriorityScore 优先级分值，排序用
func PriorityScore(priority string) int {
	switch priority {
	case TicketPriorityHigh:
		return 3
	case TicketPriorityMedium:
		return 2
	default:
		return 1
	}
}

// SortTickets 工单列表排序：超时优先，其次优先级降序，最后创建时间新的在前
func SortTickets(tickets []MaintenanceTicket, now time.Time) {
	sort.SliceStable(tickets, func(i, j int) bool {
		a, b := &tickets[i], &tickets[j]
		aOverdue, bOverdue := a.IsOverdueAt(now), b.IsOverdueAt(now)
		if aOverdue != bOverdue {
			return aOverdue
		}
		if PriorityScore(a.Priority) != PriorityScore(b.Priority) {
			return PriorityScore(a.Priority) > PriorityScore(b.Priority)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
