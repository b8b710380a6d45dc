package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveInvoiceStatus(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	pastDue := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		amount  int64
		paid    int64
		dueDate time.Time
		want    string
	}{
		{"未收款未到期", 3500000, 0, due, InvoiceStatusPending},
		{"部分收款未到期", 3500000, 1000000, due, InvoiceStatusPartial},
		{"已结清", 3500000, 3500000, due, InvoiceStatusPaid},
		{"超额收款也算结清", 3500000, 4000000, due, InvoiceStatusPaid},
		{"到期未收款", 3500000, 0, pastDue, InvoiceStatusOverdue},
		{"到期部分收款仍算逾期", 3500000, 1000000, pastDue, InvoiceStatusOverdue},
		{"到期但已结清", 3500000, 3500000, pastDue, InvoiceStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveInvoiceStatus(tt.amount, tt.paid, tt.dueDate, now))
		})
	}
}

func TestInvoiceAgingDays(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	// 逾期5天半按5天整计
	due := now.AddDate(0, 0, -5).Add(-12 * time.Hour)
	assert.Equal(t, 5, InvoiceAgingDays(3500000, 0, due, now))

	// 未到期为0
	assert.Equal(t, 0, InvoiceAgingDays(3500000, 0, now.AddDate(0, 0, 3), now))

	// 已结清即使过期也为0
	assert.Equal(t, 0, InvoiceAgingDays(3500000, 3500000, due, now))
}

func TestInvoiceRemainingAndPaymentScenario(t *testing.T) {
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	invoice := Invoice{
		Amount:     4200000,
		PaidAmount: 3700000,
		DueDate:    now.AddDate(0, 0, 3),
	}
	invoice.Refresh(now)

	assert.Equal(t, int64(500000), invoice.Remaining())
	assert.Equal(t, InvoiceStatusPartial, invoice.Status)

	// 收齐剩余500000后转为已结清
	invoice.PaidAmount += 500000
	invoice.Refresh(now)
	assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	assert.Equal(t, int64(0), invoice.Remaining())
	assert.Equal(t, 0, invoice.AgingDays)
}

func TestInvoiceRefreshOverwritesStaleStatus(t *testing.T) {
	// 缓存状态与金额不一致时以推导结果为准
	now := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	invoice := Invoice{
		Amount:     3500000,
		PaidAmount: 3500000,
		Status:     InvoiceStatusOverdue,
		AgingDays:  15,
		DueDate:    now.AddDate(0, 0, -15),
	}
	invoice.Refresh(now)

	assert.Equal(t, InvoiceStatusPaid, invoice.Status)
	assert.Equal(t, 0, invoice.AgingDays)
}
