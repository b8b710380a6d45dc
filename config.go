package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath string
	DatabaseURL  string
	JWTSecret    string
	ServerPort   string
	GeminiAPIKey string
	GeminiAPIURL string
	GeminiModel  string
}

func LoadConfig() *Config {
	// 优先加载.env文件，不存在则直接读环境变量
	if err := godotenv.Load(); err == nil {
		log.Println("已加载.env配置文件")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "innmaster-secret-key-2025" // 默认密钥，生产环境应使用环境变量
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "./innmaster.db" // 默认sqlite数据库路径
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = ":8090" // 默认端口
	}

	geminiURL := os.Getenv("GEMINI_API_URL")
	if geminiURL == "" {
		geminiURL = "https://generativelanguage.googleapis.com"
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-3-pro-preview"
	}

	log.Printf("配置加载完成: 数据库=%s, 服务端口=%s, AI模型=%s", databasePath, serverPort, geminiModel)

	return &Config{
		DatabasePath: databasePath,
		DatabaseURL:  os.Getenv("DATABASE_URL"), // 设置后使用PostgreSQL
		JWTSecret:    jwtSecret,
		ServerPort:   serverPort,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiAPIURL: geminiURL,
		GeminiModel:  geminiModel,
	}
}
