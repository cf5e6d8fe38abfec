// Copyright 2025 Campus Connect Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ws

import (
	"sync"
)

// DefaultHub 默认的连接管理器实现
type DefaultHub struct {
	// conns 存储所有连接
	conns map[string]Conn

	// mu 保护 conns 的并发访问
	mu sync.RWMutex
}

// NewHub 创建一个新的连接管理器
func NewHub() Hub {
	return &DefaultHub{
		conns: make(map[string]Conn),
	}
}

// Register 注册一个新连接
func (h *DefaultHub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn.ID()] = conn
}

// Unregister 注销一个连接
func (h *DefaultHub) Unregister(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn.ID()]; ok {
		delete(h.conns, conn.ID())
		_ = conn.Close()
	}
}

// BroadcastJSON 向所有连接广播 JSON 消息
// 返回第一个写失败的错误，剩余连接仍然会收到消息
func (h *DefaultHub) BroadcastJSON(v any) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var firstErr error
	for _, conn := range h.conns {
		if err := conn.WriteJSON(v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SendToUserJSON 向指定用户的所有连接发送 JSON 消息
func (h *DefaultHub) SendToUserJSON(userId string, v any) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := false
	var firstErr error
	for _, conn := range h.conns {
		if conn.UserID() != userId {
			continue
		}
		sent = true
		if err := conn.WriteJSON(v); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if !sent {
		return ErrConnNotFound
	}
	return firstErr
}

// Count 返回当前连接数
func (h *DefaultHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
