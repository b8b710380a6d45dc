package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"innmaster/ai"
	"innmaster/database"
	"innmaster/handlers"
	"innmaster/middleware"
	"innmaster/statestore"
)

func main() {
	// 加载配置
	config := LoadConfig()

	// 初始化JWT
	middleware.InitJWT(config.JWTSecret)

	// 初始化数据库
	if err := database.InitDatabase(config.DatabasePath, config.DatabaseURL); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	// 初始化界面状态存储
	store, err := statestore.NewStore(database.DB)
	if err != nil {
		log.Fatal("状态存储初始化失败:", err)
	}

	// 初始化AI网关客户端
	aiClient := ai.NewClient(config.GeminiAPIKey, config.GeminiAPIURL, config.GeminiModel)
	handlers.Init(aiClient, store)

	// 设置Gin模式
	gin.SetMode(gin.ReleaseMode)

	// 创建Gin路由器
	r := gin.Default()

	// 添加CORS中间件
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "InnMaster后台服务运行正常",
		})
	})

	// API路由组
	api := r.Group("/api")
	{
		// 公开路由（无需认证）
		public := api.Group("/public")
		{
			public.POST("/register", handlers.Register) // 用户注册
			public.POST("/login", handlers.Login)       // 用户登录
		}

		// 需要认证的路由
		auth := api.Group("/auth")
		auth.Use(middleware.AuthMiddleware())
		{
			// 房间相关路由
			rooms := auth.Group("/rooms")
			{
				rooms.GET("", handlers.GetRooms)                              // 获取房间列表
				rooms.POST("", handlers.AddRoom)                              // 新增房间
				rooms.POST("/:room_id/checkout", handlers.CheckoutRoom)       // 退房
				rooms.POST("/:room_id/reserve", handlers.ReserveRoom)         // 预订
				rooms.PUT("/:room_id/maintenance", handlers.SetRoomMaintenance) // 维修状态
				rooms.POST("/:room_id/reading", handlers.RecordReading)       // 抄表
				rooms.GET("/:room_id/operations", handlers.GetRoomOperations) // 操作记录
			}

			// 租客相关路由
			tenants := auth.Group("/tenants")
			{
				tenants.GET("", handlers.GetTenants)            // 获取租客列表
				tenants.POST("", handlers.AddTenant)            // 新增租客并入住
				tenants.GET("/:id", handlers.GetTenant)         // 租客详情
				tenants.POST("/:id/renew", handlers.RenewContract) // 续约
				tenants.POST("/:id/move", handlers.MoveTenant)  // 换房
			}

			// 账单相关路由
			billing := auth.Group("/billing")
			{
				billing.GET("", handlers.GetInvoices)               // 获取账单列表
				billing.POST("/generate", handlers.GenerateCycle)   // 生成收款周期
				billing.POST("/:id/payments", handlers.RecordPayment) // 收款
				billing.POST("/:id/reminders", handlers.SendReminder) // 催缴
			}

			// 维修工单相关路由
			tickets := auth.Group("/tickets")
			{
				tickets.GET("", handlers.GetTickets)               // 获取工单列表
				tickets.POST("", handlers.CreateTicket)            // 报修
				tickets.POST("/:id/assign", handlers.AssignTicket) // 派单
				tickets.POST("/:id/resolve", handlers.ResolveTicket) // 关单
				tickets.POST("/:id/cancel", handlers.CancelTicket) // 取消
			}

			// AI助手相关路由
			assistant := auth.Group("/assistant")
			{
				assistant.POST("/ask", handlers.AskAssistant)       // 提问
				assistant.POST("/analyze", handlers.AnalyzeBusiness) // 经营分析
				assistant.GET("/history", handlers.GetChatHistory)  // 会话历史
				assistant.POST("/clear", handlers.ClearChatHistory) // 清空历史
			}

			// 界面状态路由
			auth.GET("/state/:key", handlers.GetUIState)  // 读取界面状态
			auth.PUT("/state/:key", handlers.SaveUIState) // 保存界面状态
			auth.POST("/logout", handlers.Logout)         // 登出并清空会话状态

			auth.GET("/dashboard", handlers.GetDashboard) // 经营概览
			auth.GET("/policies", handlers.GetPolicies)   // 策略开关
		}

		// 店长路由
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.ManagerMiddleware())
		{
			admin.GET("/billing/export", handlers.ExportReceivables) // 导出应收账款报表
			admin.PUT("/policies/:id", handlers.TogglePolicy)        // 切换策略开关
		}
	}

	// 启动服务器
	log.Printf("服务器启动在端口 %s", config.ServerPort)
	log.Printf("健康检查: http://localhost%s/health", config.ServerPort)
	log.Printf("API文档:")
	log.Printf("  POST /api/public/register - 用户注册")
	log.Printf("  POST /api/public/login - 用户登录")
	log.Printf("  GET  /api/auth/rooms - 获取房间列表")
	log.Printf("  POST /api/auth/tenants - 新增租客并入住")
	log.Printf("  POST /api/auth/rooms/:room_id/checkout - 退房")
	log.Printf("  GET  /api/auth/billing - 获取账单列表")
	log.Printf("  POST /api/auth/billing/generate - 生成收款周期")
	log.Printf("  POST /api/auth/billing/:id/payments - 收款")
	log.Printf("  GET  /api/auth/tickets - 获取维修工单")
	log.Printf("  POST /api/auth/tickets - 报修")
	log.Printf("  POST /api/auth/assistant/ask - AI助手提问")
	log.Printf("  GET  /api/auth/dashboard - 经营概览")
	log.Printf("  GET  /api/admin/billing/export - 导出应收账款(店长)")

	if err := r.Run(config.ServerPort); err != nil {
		log.Fatal("服务器启动失败:", err)
	}
}
