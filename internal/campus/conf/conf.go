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

package conf

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/campus-connect/campus/pkg/cache"
	"github.com/campus-connect/campus/pkg/database"
	"github.com/campus-connect/campus/pkg/http"
	"github.com/campus-connect/campus/pkg/log"
	"github.com/campus-connect/campus/pkg/storage"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

/**
 * @author: campus connect team
 * @date: 2025/6/12 22:05
 * @description: 配置加载与热更新
 */

// AppConfig 应用配置
type AppConfig struct {
	Log      log.Conf          `mapstructure:"log"`
	Http     http.Http         `mapstructure:"http"`
	Database database.Database `mapstructure:"database"`
	Redis    cache.Redis       `mapstructure:"redis"`
	Storage  storage.Storage   `mapstructure:"storage"`
}

var (
	appConfig *AppConfig
	mu        sync.RWMutex
)

// Load 从文件加载配置，支持 fsnotify 热更新
func Load(confPath string) (*AppConfig, error) {
	v := viper.New()

	ext := strings.TrimPrefix(filepath.Ext(confPath), ".")
	if ext == "" {
		ext = "toml"
	}
	v.SetConfigFile(confPath)
	v.SetConfigType(ext)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", confPath, err)
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Log.SetDefaults()
	if err := cfg.Log.Validate(); err != nil {
		return nil, err
	}

	mu.Lock()
	appConfig = cfg
	mu.Unlock()

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Infof("config file changed: %s", e.Name)
		newCfg := &AppConfig{}
		if err := v.Unmarshal(newCfg); err != nil {
			log.Errorf("reload config: %v", err)
			return
		}
		newCfg.Log.SetDefaults()
		mu.Lock()
		appConfig = newCfg
		mu.Unlock()
	})
	v.WatchConfig()

	return cfg, nil
}

// Get 返回当前配置
func Get() *AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return appConfig
}
