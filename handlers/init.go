package handlers

import (
	"innmaster/ai"
	"innmaster/statestore"
)

var (
	aiClient   *ai.Client
	stateStore *statestore.Store
)

// Init 注入AI网关客户端与界面状态存储
func Init(client *ai.Client, store *statestore.Store) {
	aiClient = client
	stateStore = store
}
