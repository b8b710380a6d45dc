package statestore

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 持久化键前缀，与前端localStorage布局保持一致
const keyPrefix = "innmaster_"

// 持久化键名注册表，写入与清除共用同一份清单
const (
	KeySessionID        = "session_id"
	KeyActiveModule     = "active_module"
	KeyIsChatOpen       = "is_chat_open"
	KeySidebarCollapsed = "sidebar_collapsed"
	KeyAIMessages       = "ai_messages"
	KeyContext          = "context"
)

// PersistedKeys 所有允许持久化的键，ClearAll按此清单逐一删除
var PersistedKeys = []string{
	KeySessionID,
	KeyActiveModule,
	KeyIsChatOpen,
	KeySidebarCollapsed,
	KeyAIMessages,
	KeyContext,
}

// StateEntry 界面状态表，值为JSON序列化后的字符串
type StateEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(100)" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Store 界面状态存储，序列化失败和存储失败都静默降级
type Store struct {
	db *gorm.DB
}

// NewStore 创建状态存储并迁移状态表
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&StateEntry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveState 序列化后落库，失败静默忽略
func (s *Store) SaveState(key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	entry := StateEntry{Key: keyPrefix + key, Value: string(data)}
	s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry)
}

// GetState 读取并反序列化，缺失或解析失败时返回默认值
func GetState[T any](s *Store, key string, defaultValue T) T {
	var entry StateEntry
	if err := s.db.First(&entry, "key = ?", keyPrefix+key).Error; err != nil {
		return defaultValue
	}
	var value T
	if err := json.Unmarshal([]byte(entry.Value), &value); err != nil {
		return defaultValue
	}
	return value
}

// GetRaw 读取原始JSON字符串，供接口层透传
func (s *Store) GetRaw(key string) (string, bool) {
	var entry StateEntry
	if err := s.db.First(&entry, "key = ?", keyPrefix+key).Error; err != nil {
		return "", false
	}
	return entry.Value, true
}

// ClearAll 按注册表清除全部持久化状态
func (s *Store) ClearAll() {
	for _, key := range PersistedKeys {
		s.db.Delete(&StateEntry{}, "key = ?", keyPrefix+key)
	}
}
