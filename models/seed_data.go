package models

import (
	"time"

	"github.com/lib/pq"
)

// GetDefaultRooms 返回默认房间数据
func GetDefaultRooms(now time.Time) []Room {
	occupiedSince := now.AddDate(0, -6, 0)
	readingDate := now.AddDate(0, 0, -12)
	return []Room{
		{ID: 1, Name: "A101", Type: "单人间", Status: RoomStatusOccupied, Price: 3500000, Floor: 1, Area: 22, Debt: 3500000, OccupiedSince: &occupiedSince, LastElectricity: 1250, LastWater: 86, LastReadingDate: &readingDate},
		{ID: 2, Name: "A102", Type: "单人间", Status: RoomStatusOccupied, Price: 3500000, Floor: 1, Area: 22, LastElectricity: 980, LastWater: 64, LastReadingDate: &readingDate},
		{ID: 3, Name: "A103", Type: "双人间", Status: RoomStatusEmpty, Price: 4200000, Floor: 1, Area: 28, EmptyDays: 14},
		{ID: 4, Name: "A104", Type: "双人间", Status: RoomStatusOccupied, Price: 4200000, Floor: 1, Area: 28, Debt: 500000, OccupiedSince: &occupiedSince, LastElectricity: 1430, LastWater: 95, LastReadingDate: &readingDate},
		{ID: 5, Name: "B201", Type: "Studio", Status: RoomStatusOccupied, Price: 5500000, Floor: 2, Area: 35, OccupiedSince: &occupiedSince, LastElectricity: 2100, LastWater: 120, LastReadingDate: &readingDate},
		{ID: 6, Name: "B202", Type: "Studio", Status: RoomStatusMaintenance, Price: 5500000, Floor: 2, Area: 35, HasMaintenanceIssue: true, EmptyDays: 5},
		{ID: 7, Name: "B203", Type: "双人间", Status: RoomStatusReserved, Price: 4200000, Floor: 2, Area: 28, EmptyDays: 3},
		{ID: 8, Name: "B204", Type: "单人间", Status: RoomStatusEmpty, Price: 3500000, Floor: 2, Area: 22, EmptyDays: 30},
	}
}

// GetDefaultTenants 返回默认租客数据
func GetDefaultTenants(now time.Time) []Tenant {
	return []Tenant{
		{ID: 1, Name: "Nguyễn Văn An", Phone: "0901234567", RoomID: 1, RoomName: "A101", ContractStart: now.AddDate(0, -6, 0), ContractEnd: now.AddDate(0, 6, 0), ContractCycle: 12, Deposit: 3500000, Status: TenantStatusActive, Debt: 3500000, RiskTags: pq.StringArray{"late_payment"}},
		{ID: 2, Name: "Trần Thị Bình", Phone: "0912345678", RoomID: 2, RoomName: "A102", ContractStart: now.AddDate(0, -3, 0), ContractEnd: now.AddDate(0, 0, 20), ContractCycle: 3, Deposit: 3500000, Status: TenantStatusExpiring},
		{ID: 3, Name: "Lê Minh Cường", Phone: "0923456789", RoomID: 4, RoomName: "A104", ContractStart: now.AddDate(0, -2, 0), ContractEnd: now.AddDate(0, 4, 0), ContractCycle: 6, Deposit: 4200000, Status: TenantStatusActive, Debt: 500000},
		{ID: 4, Name: "Phạm Hồng Dung", Phone: "0934567890", RoomID: 5, RoomName: "B201", ContractStart: now.AddDate(-1, 0, 0), ContractEnd: now.AddDate(0, 8, 0), ContractCycle: 12, Deposit: 5500000, Status: TenantStatusActive},
	}
}

// GetDefaultInvoices 返回默认账单数据，状态字段由调用方按当前时间重算
func GetDefaultInvoices(now time.Time) []Invoice {
	month := now.Format("01/2006")
	return []Invoice{
		{ID: 1, Code: "INV-" + now.Format("012006") + "-A101", RoomName: "A101", TenantName: "Nguyễn Văn An", TenantPhone: "0901234567", Month: month, Amount: 3500000, PaidAmount: 0, DueDate: now.AddDate(0, 0, -5)},
		{ID: 2, Code: "INV-" + now.Format("012006") + "-A102", RoomName: "A102", TenantName: "Trần Thị Bình", TenantPhone: "0912345678", Month: month, Amount: 3800000, PaidAmount: 3800000, DueDate: now.AddDate(0, 0, -2)},
		{ID: 3, Code: "INV-" + now.Format("012006") + "-A104", RoomName: "A104", TenantName: "Lê Minh Cường", TenantPhone: "0923456789", Month: month, Amount: 4200000, PaidAmount: 3700000, DueDate: now.AddDate(0, 0, 3)},
		{ID: 4, Code: "INV-" + now.Format("012006") + "-B201", RoomName: "B201", TenantName: "Phạm Hồng Dung", TenantPhone: "0934567890", Month: month, Amount: 5900000, PaidAmount: 0, DueDate: now.AddDate(0, 0, 7)},
	}
}

// GetDefaultTickets 返回默认维修工单数据
func GetDefaultTickets(now time.Time) []MaintenanceTicket {
	t1 := now.Add(-30 * time.Hour)
	t2 := now.Add(-10 * time.Hour)
	t3 := now.Add(-80 * time.Hour)
	return []MaintenanceTicket{
		{ID: 1, RoomID: 6, RoomName: "B202", IssueType: IssueTypeAC, Description: "空调漏水，滴到床头", Priority: TicketPriorityHigh, Status: TicketStatusInProgress, CreatedAt: t1, SLADeadline: SLADeadlineFor(t1, TicketPriorityHigh), Assignee: "Thợ Hùng"},
		{ID: 2, RoomID: 1, RoomName: "A101", IssueType: IssueTypeWater, Description: "卫生间水压偏低", Priority: TicketPriorityMedium, Status: TicketStatusOpen, CreatedAt: t2, SLADeadline: SLADeadlineFor(t2, TicketPriorityMedium)},
		{ID: 3, RoomID: 5, RoomName: "B201", IssueType: IssueTypeInternet, Description: "WiFi晚间频繁掉线", Priority: TicketPriorityLow, Status: TicketStatusOpen, CreatedAt: t3, SLADeadline: SLADeadlineFor(t3, TicketPriorityLow)},
	}
}
