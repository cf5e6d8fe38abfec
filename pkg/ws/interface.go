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

// Conn 表示一个 WebSocket 连接
type Conn interface {
	// ID 返回连接的唯一标识符
	ID() string

	// UserID 返回连接所属用户，未认证连接为空
	UserID() string

	// WriteMessage 写入一条消息
	WriteMessage(messageType int, data []byte) error

	// WriteJSON 写入 JSON 消息
	WriteJSON(v any) error

	// Close 关闭连接
	Close() error
}

// Hub 管理所有 WebSocket 连接
type Hub interface {
	// Register 注册一个新连接
	Register(conn Conn)

	// Unregister 注销一个连接
	Unregister(conn Conn)

	// BroadcastJSON 向所有连接广播 JSON 消息
	BroadcastJSON(v any) error

	// SendToUserJSON 向指定用户的所有连接发送 JSON 消息
	SendToUserJSON(userId string, v any) error

	// Count 返回当前连接数
	Count() int
}

// MessageType WebSocket 消息类型常量
const (
	// TextMessage 文本消息
	TextMessage = 1
	// BinaryMessage 二进制消息
	BinaryMessage = 2
	// CloseMessage 关闭消息
	CloseMessage = 8
)
