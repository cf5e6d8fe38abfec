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

	"github.com/campus-connect/campus/pkg/id"
	"github.com/gofiber/websocket/v2"
)

// conn WebSocket 连接实现
type conn struct {
	*websocket.Conn
	id        string
	userId    string
	writeMu   sync.Mutex
	closeOnce sync.Once
}

// NewConn 包装一个 fiber websocket 连接
func NewConn(wsConn *websocket.Conn, userId string) Conn {
	return &conn{
		Conn:   wsConn,
		id:     id.GetUUID(),
		userId: userId,
	}
}

// ID 返回连接的唯一标识符
func (c *conn) ID() string {
	return c.id
}

// UserID 返回连接所属用户
func (c *conn) UserID() string {
	return c.userId
}

// WriteMessage 写入一条消息
// gofiber websocket 连接不允许并发写
func (c *conn) WriteMessage(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// WriteJSON 写入 JSON 消息
func (c *conn) WriteJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Close 关闭连接
func (c *conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.Conn.Close()
	})
	return err
}
