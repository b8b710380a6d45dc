package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSLADeadlineFor(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 24*time.Hour, SLADeadlineFor(createdAt, TicketPriorityHigh).Sub(createdAt))
	assert.Equal(t, 48*time.Hour, SLADeadlineFor(createdAt, TicketPriorityMedium).Sub(createdAt))
	assert.Equal(t, 72*time.Hour, SLADeadlineFor(createdAt, TicketPriorityLow).Sub(createdAt))

	// 未知优先级按最低档处理
	assert.Equal(t, 72*time.Hour, SLADeadlineFor(createdAt, "unknown").Sub(createdAt))
}

func TestIsOverdueAt(t *testing.T) {
	createdAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	ticket := MaintenanceTicket{
		Priority:    TicketPriorityHigh,
		Status:      TicketStatusOpen,
		CreatedAt:   createdAt,
		SLADeadline: SLADeadlineFor(createdAt, TicketPriorityHigh),
	}

	// 截止前不算超时
	assert.False(t, ticket.IsOverdueAt(createdAt.Add(23*time.Hour)))
	// 截止后未完成算超时
	assert.True(t, ticket.IsOverdueAt(createdAt.Add(30*time.Hour)))

	// T+30h关单后无论多晚都不算超时，SLA截止时间保持不变
	ticket.Status = TicketStatusDone
	assert.False(t, ticket.IsOverdueAt(createdAt.Add(30*time.Hour)))
	assert.False(t, ticket.IsOverdueAt(createdAt.Add(100*time.Hour)))
	assert.Equal(t, createdAt.Add(24*time.Hour), ticket.SLADeadline)
}

func TestSortTickets(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	newTicket := func(priority, status string, createdAt time.Time) MaintenanceTicket {
		return MaintenanceTicket{
			Priority:    priority,
			Status:      status,
			CreatedAt:   createdAt,
			SLADeadline: SLADeadlineFor(createdAt, priority),
		}
	}

	overdueLow := newTicket(TicketPriorityLow, TicketStatusOpen, now.Add(-100*time.Hour))
	freshHigh := newTicket(TicketPriorityHigh, TicketStatusOpen, now.Add(-1*time.Hour))
	freshMedium := newTicket(TicketPriorityMedium, TicketStatusOpen, now.Add(-2*time.Hour))
	doneExpired := newTicket(TicketPriorityHigh, TicketStatusDone, now.Add(-100*time.Hour))

	tickets := []MaintenanceTicket{doneExpired, freshMedium, freshHigh, overdueLow}
	SortTickets(tickets, now)

	// 超时在前，其余按优先级降序，同优先级新创建的在前
	// 已完成的过期工单不算超时，按创建时间排在同优先级的新工单之后
	assert.Equal(t, overdueLow.CreatedAt, tickets[0].CreatedAt)
	assert.Equal(t, freshHigh.CreatedAt, tickets[1].CreatedAt)
	assert.Equal(t, TicketStatusDone, tickets[2].Status)
	assert.Equal(t, doneExpired.CreatedAt, tickets[2].CreatedAt)
	assert.Equal(t, TicketPriorityMedium, tickets[3].Priority)
}

func TestSortTicketsCreatedAtTieBreak(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	older := MaintenanceTicket{
		Priority:    TicketPriorityMedium,
		Status:      TicketStatusOpen,
		CreatedAt:   now.Add(-10 * time.Hour),
		SLADeadline: SLADeadlineFor(now.Add(-10*time.Hour), TicketPriorityMedium),
	}
	newer := MaintenanceTicket{
		Priority:    TicketPriorityMedium,
		Status:      TicketStatusOpen,
		CreatedAt:   now.Add(-2 * time.Hour),
		SLADeadline: SLADeadlineFor(now.Add(-2*time.Hour), TicketPriorityMedium),
	}

	// 超时与优先级相同时，新创建的排前面
	tickets := []MaintenanceTicket{older, newer}
	SortTickets(tickets, now)

	assert.Equal(t, newer.CreatedAt, tickets[0].CreatedAt)
	assert.Equal(t, older.CreatedAt, tickets[1].CreatedAt)
}
