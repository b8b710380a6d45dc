package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"innmaster/models"
)

var DB *gorm.DB

// InitDatabase 初始化数据库连接
// 设置了databaseURL时使用PostgreSQL，否则使用本地sqlite文件
func InitDatabase(databasePath, databaseURL string) error {
	var err error
	if databaseURL != "" {
		DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	} else {
		DB, err = gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
	}
	if err != nil {
		return err
	}

	// 自动迁移数据库表结构
	err = DB.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomOperation{},
		&models.Tenant{},
		&models.TenantHistoryLog{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.PaymentRecord{},
		&models.ReminderLog{},
		&models.MaintenanceTicket{},
		&models.TicketLog{},
	)
	if err != nil {
		return err
	}

	// 初始化基础数据
	initializeData()

	log.Println("数据库初始化完成")
	return nil
}

// initializeData 初始化基础数据
func initializeData() {
	now := time.Now()

	// 检查是否已有房间数据，如果没有则创建示例房间
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		for _, room := range models.GetDefaultRooms(now) {
			DB.Create(&room)
		}
		for _, tenant := range models.GetDefaultTenants(now) {
			DB.Create(&tenant)
		}
		for _, invoice := range models.GetDefaultInvoices(now) {
			invoice.Refresh(now)
			DB.Create(&invoice)
		}
		for _, ticket := range models.GetDefaultTickets(now) {
			DB.Create(&ticket)
		}
		log.Println("初始化房间、租客、账单和工单数据完成")
	}

	// 检查是否已有管理员账户
	var adminCount int64
	DB.Model(&models.User{}).Where("identity = ?", "manager").Count(&adminCount)
	if adminCount == 0 {
		// 创建默认管理员账户
		admin := models.User{
			Username: "admin",
			Password: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi", // password
			Identity: "manager",
		}
		DB.Create(&admin)
		log.Println("创建默认管理员账户: admin/password")
	}
}
