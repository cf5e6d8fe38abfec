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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestTotal HTTP 请求计数
	HTTPRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "campus",
		Subsystem: "http",
		Name:      "request_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	// NotificationDeliveredTotal 通知广播成功计数
	NotificationDeliveredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campus",
		Subsystem: "notify",
		Name:      "delivered_total",
		Help:      "Total number of notifications delivered to the broadcaster",
	})

	// NotificationFailedTotal 通知持久化或广播失败计数
	NotificationFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campus",
		Subsystem: "notify",
		Name:      "failed_total",
		Help:      "Total number of notification persist or broadcast failures",
	})

	// StorageFallbackTotal 对象存储回退到本地存储的计数
	StorageFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "campus",
		Subsystem: "storage",
		Name:      "local_fallback_total",
		Help:      "Total number of uploads that fell back to local storage",
	})
)
