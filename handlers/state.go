package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"innmaster/statestore"
)

// SaveStateRequest 状态保存请求结构
type SaveStateRequest struct {
	Value json.RawMessage `json:"value"`
}

// isPersistedKey 是否在持久化键注册表内
func isPersistedKey(key string) bool {
	for _, k := range statestore.PersistedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// GetUIState 读取界面状态，缺失时返回null
func GetUIState(c *gin.Context) {
	key := c.Param("key")
	if !isPersistedKey(key) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "未注册的状态键",
		})
		return
	}

	raw, ok := stateStore.GetRaw(key)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"key":   key,
			"value": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"key":   key,
		"value": json.RawMessage(raw),
	})
}

// SaveUIState 写入界面状态，只接受注册表内的键
func SaveUIState(c *gin.Context) {
	key := c.Param("key")
	if !isPersistedKey(key) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "未注册的状态键",
		})
		return
	}

	var req SaveStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "请求参数错误: " + err.Error(),
		})
		return
	}

	stateStore.SaveState(key, req.Value)

	c.JSON(http.StatusOK, gin.H{
		"message": "状态已保存",
		"key":     key,
	})
}

// Logout 登出：按注册表清空全部持久化会话状态
func Logout(c *gin.Context) {
	stateStore.ClearAll()
	c.JSON(http.StatusOK, gin.H{
		"message": "已登出，会话状态已清空",
	})
}
