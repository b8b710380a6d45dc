package statestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	store, err := NewStore(db)
	require.NoError(t, err)
	return store
}

func TestGetStateReturnsDefaultWhenMissing(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, "fallback", GetState(store, KeyActiveModule, "fallback"))
	assert.False(t, GetState(store, KeyIsChatOpen, false))
}

func TestSaveAndGetStateRoundTrip(t *testing.T) {
	store := newTestStore(t)

	store.SaveState(KeyActiveModule, "billing-ar")
	assert.Equal(t, "billing-ar", GetState(store, KeyActiveModule, ""))

	store.SaveState(KeyIsChatOpen, true)
	assert.True(t, GetState(store, KeyIsChatOpen, false))

	// 结构化值深度相等
	type message struct {
		Role string `json:"role"`
		Text string `json:"text"`
	}
	messages := []message{
		{Role: "user", Text: "Phân tích nợ quá hạn"},
		{Role: "ai", Text: "Đang xử lý..."},
	}
	store.SaveState(KeyAIMessages, messages)
	assert.Equal(t, messages, GetState(store, KeyAIMessages, []message{}))
}

func TestSaveStateOverwrites(t *testing.T) {
	store := newTestStore(t)

	store.SaveState(KeyActiveModule, "rooms")
	store.SaveState(KeyActiveModule, "maintenance")
	assert.Equal(t, "maintenance", GetState(store, KeyActiveModule, ""))
}

func TestGetStateReturnsDefaultOnParseFailure(t *testing.T) {
	store := newTestStore(t)

	// 存的是字符串，按整数读应返回默认值
	store.SaveState(KeyActiveModule, "billing-ar")
	assert.Equal(t, 42, GetState(store, KeyActiveModule, 42))
}

func TestClearAllRemovesEveryRegisteredKey(t *testing.T) {
	store := newTestStore(t)

	for _, key := range PersistedKeys {
		store.SaveState(key, "some-value")
	}
	store.ClearAll()

	for _, key := range PersistedKeys {
		var nilDefault interface{}
		assert.Nil(t, GetState(store, key, nilDefault))
	}
	assert.Equal(t, "", GetState(store, KeyActiveModule, ""))
}
