package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"innmaster/database"
	"innmaster/models"
)

// GenerateCycleRequest 生成收款周期请求结构
type GenerateCycleRequest struct {
	Month  string `json:"month"`   // MM/YYYY，缺省为当月
	DueDay int    `json:"due_day"` // 到期日，缺省为5号
}

// RecordPaymentRequest 收款请求结构
type RecordPaymentRequest struct {
	Amount int64  `json:"amount" binding:"required,min=1"`
	Method string `json:"method" binding:"required"` // cash, transfer
	Note   string `json:"note"`
}

// SendReminderRequest 催缴请求结构
type SendReminderRequest struct {
	Method   string `json:"method" binding:"required"` // zalo, sms, manual
	Template string `json:"template"`                  // gentle, firm
	Content  string `json:"content"`                   // 缺省按模板生成
}

// GetInvoices 获取账单列表，状态与逾期天数按当前时间重算
func GetInvoices(c *gin.Context) {
	query := database.DB.Preload("Items").Preload("Payments").Preload("Reminders").Order("due_date")
	if month := c.Query("month"); month != "" {
		query = query.Where("month = ?", month)
	}

	var invoices []models.Invoice
	if err := query.Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取账单失败",
		})
		return
	}

	now := time.Now()
	var totalAmount, totalCollected int64
	for i := range invoices {
		oldStatus, oldAging := invoices[i].Status, invoices[i].AgingDays
		invoices[i].Refresh(now)
		// 缓存字段变化时写回，保证按状态查询可用
		if invoices[i].Status != oldStatus || invoices[i].AgingDays != oldAging {
			database.DB.Model(&invoices[i]).Updates(map[string]interface{}{
				"status":     invoices[i].Status,
				"aging_days": invoices[i].AgingDays,
			})
		}
		totalAmount += invoices[i].Amount
		totalCollected += invoices[i].PaidAmount
	}

	if status := c.Query("status"); status != "" {
		filtered := make([]models.Invoice, 0, len(invoices))
		for _, inv := range invoices {
			if inv.Status == status {
				filtered = append(filtered, inv)
			}
		}
		invoices = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "获取账单列表成功",
		"invoices":        invoices,
		"total_amount":    totalAmount,
		"total_collected": totalCollected,
	})
}

// GenerateCycle 批量生成收款周期：为所有在住房间创建当期账单
// 已有当期账单的房间跳过，不会重复生成
func GenerateCycle(c *gin.Context) {
	var req GenerateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	now := time.Now()
	month := req.Month
	if month == "" {
		month = now.Format("01/2006")
	}
	monthStart, err := time.Parse("01/2006", month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "月份格式错误，应为MM/YYYY",
		})
		return
	}
	dueDay := req.DueDay
	if dueDay <= 0 {
		dueDay = 5
	}
	dueDate := monthStart.AddDate(0, 0, dueDay-1)

	var rooms []models.Room
	if err := database.DB.Where("status = ?", models.RoomStatusOccupied).Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取在住房间失败",
		})
		return
	}

	created := make([]models.Invoice, 0, len(rooms))
	skipped := 0
	var expectedTotal int64
	for _, room := range rooms {
		// 当期已有账单则跳过
		var count int64
		database.DB.Model(&models.Invoice{}).Where("month = ? AND room_name = ?", month, room.Name).Count(&count)
		if count > 0 {
			skipped++
			continue
		}

		var tenant models.Tenant
		if err := database.DB.Where("room_id = ? AND status <> ?", room.ID, models.TenantStatusEnded).First(&tenant).Error; err != nil {
			skipped++
			continue
		}

		invoice := models.Invoice{
			Code:        fmt.Sprintf("INV-%s-%s", monthStart.Format("012006"), room.Name),
			RoomName:    room.Name,
			TenantName:  tenant.Name,
			TenantPhone: tenant.Phone,
			Month:       month,
			Amount:      room.Price,
			DueDate:     dueDate,
			Items: []models.InvoiceItem{
				{Name: "Tiền phòng", Quantity: 1, Unit: "tháng", Price: room.Price, Total: room.Price},
			},
		}
		invoice.Refresh(now)

		if err := database.DB.Create(&invoice).Error; err != nil {
			continue
		}

		// 应收同步进欠款字段
		room.Debt += invoice.Amount
		database.DB.Model(&models.Room{}).Where("id = ?", room.ID).Update("debt", room.Debt)
		database.DB.Model(&models.Tenant{}).Where("id = ?", tenant.ID).Update("debt", tenant.Debt+invoice.Amount)

		expectedTotal += invoice.Amount
		created = append(created, invoice)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        fmt.Sprintf("收款周期%s生成完成", month),
		"created_count":  len(created),
		"skipped_count":  skipped,
		"expected_total": expectedTotal,
		"invoices":       created,
	})
}

// RecordPayment 收款：超出剩余应收的部分自动封顶
// 实收金额原样记入收款记录，冲抵额以剩余应收为上限
func RecordPayment(c *gin.Context) {
	invoiceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的账单ID",
		})
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}
	if req.Method != models.PaymentMethodCash && req.Method != models.PaymentMethodTransfer {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "收款方式必须是 cash 或 transfer",
		})
		return
	}

	var invoice models.Invoice
	if err := database.DB.First(&invoice, invoiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "账单不存在",
		})
		return
	}

	remaining := invoice.Remaining()
	if remaining <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "账单已结清",
		})
		return
	}

	applied := req.Amount
	if applied > remaining {
		applied = remaining
	}

	now := time.Now()
	payment := models.PaymentRecord{
		InvoiceID: invoice.ID,
		ReceiptNo: uuid.NewString(),
		Date:      now,
		Amount:    req.Amount,
		Method:    req.Method,
		Note:      req.Note,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "收款记录保存失败",
		})
		return
	}

	invoice.PaidAmount += applied
	invoice.Refresh(now)
	if err := database.DB.Save(&invoice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "账单更新失败",
		})
		return
	}

	// 欠款同步扣减，最低为0
	var tenant models.Tenant
	if err := database.DB.Where("name = ? AND room_name = ?", invoice.TenantName, invoice.RoomName).First(&tenant).Error; err == nil {
		tenant.Debt -= applied
		if tenant.Debt < 0 {
			tenant.Debt = 0
		}
		database.DB.Model(&tenant).Update("debt", tenant.Debt)
	}
	var room models.Room
	if err := database.DB.Where("name = ?", invoice.RoomName).First(&room).Error; err == nil {
		room.Debt -= applied
		if room.Debt < 0 {
			room.Debt = 0
		}
		database.DB.Model(&room).Update("debt", room.Debt)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "收款成功",
		"receipt_no": payment.ReceiptNo,
		"applied":    applied,
		"remaining":  invoice.Remaining(),
		"invoice":    invoice,
	})
}

// SendReminder 记录一次催缴，只记日志不改动金额
func SendReminder(c *gin.Context) {
	invoiceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "无效的账单ID",
		})
		return
	}

	var req SendReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}
	if req.Method != models.ReminderMethodZalo && req.Method != models.ReminderMethodSMS && req.Method != models.ReminderMethodManual {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "催缴渠道必须是 zalo、sms 或 manual",
		})
		return
	}

	var invoice models.Invoice
	if err := database.DB.First(&invoice, invoiceID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "账单不存在",
		})
		return
	}

	now := time.Now()
	invoice.Refresh(now)

	content := req.Content
	if content == "" {
		content = buildReminderContent(&invoice, req.Template)
	}

	reminder := models.ReminderLog{
		InvoiceID: invoice.ID,
		Date:      now,
		Method:    req.Method,
		Content:   content,
	}
	if err := database.DB.Create(&reminder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "催缴记录保存失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "催缴记录已保存",
		"reminder": reminder,
	})
}

// buildReminderContent 按模板生成催缴文案
func buildReminderContent(invoice *models.Invoice, template string) string {
	remaining := invoice.Remaining()
	if template == "firm" {
		return fmt.Sprintf("THÔNG BÁO: Phòng %s đã quá hạn thanh toán %d ngày. Số tiền: %dđ. Vui lòng thanh toán NGAY để tránh bị cắt dịch vụ.",
			invoice.RoomName, invoice.AgingDays, remaining)
	}
	return fmt.Sprintf("Chào bạn %s, phòng %s. Tiền phòng tháng này là %dđ. Hạn đóng là %s. Bạn vui lòng thanh toán sớm nhé!",
		invoice.TenantName, invoice.RoomName, remaining, invoice.DueDate.Format("02/01/2006"))
}

// ExportReceivables 导出应收账款报表Excel（店长权限）
func ExportReceivables(c *gin.Context) {
	var invoices []models.Invoice
	if err := database.DB.Order("due_date").Find(&invoices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "获取账单失败",
		})
		return
	}

	now := time.Now()
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Printf("关闭Excel文件失败: %v\n", err)
		}
	}()

	// 设置工作表名称
	sheetName := "应收账款"
	f.SetSheetName("Sheet1", sheetName)

	// 设置表头
	headers := []string{"账单号", "房间", "租客", "电话", "月份", "应收(đ)", "已收(đ)", "剩余(đ)", "到期日", "逾期天数", "状态"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// 填充数据，只导出未结清账单
	row := 2
	var totalRemaining int64
	for i := range invoices {
		invoices[i].Refresh(now)
		if invoices[i].Status == models.InvoiceStatusPaid {
			continue
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), invoices[i].Code)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), invoices[i].RoomName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), invoices[i].TenantName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), invoices[i].TenantPhone)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), invoices[i].Month)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), invoices[i].Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), invoices[i].PaidAmount)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), invoices[i].Remaining())
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), invoices[i].DueDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), invoices[i].AgingDays)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), invoices[i].Status)
		totalRemaining += invoices[i].Remaining()
		row++
	}

	// 添加总结信息
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row+1), "合计未收")
	f.SetCellValue(sheetName, fmt.Sprintf("H%d", row+1), totalRemaining)

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "E", 12)
	f.SetColWidth(sheetName, "F", "H", 14)
	f.SetColWidth(sheetName, "I", "K", 12)

	filename := fmt.Sprintf("应收账款_%s.xlsx", now.Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		fmt.Printf("导出Excel失败: %v\n", err)
	}
}
