package conf

import (
	"os"
	"strings"

	"github.com/papergraph/papergraph/internal/catalog"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance"`
	SeedTags    []catalog.SeedTag `mapstructure:"seed_tags"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type StorageConfig struct {
	BasePath string `mapstructure:"basePath"` // 本地存储路径，如 ./data/files
	BaseURL  string `mapstructure:"baseURL"`  // 访问URL，如 http://localhost:8080/static
}

type MaintenanceConfig struct {
	Enable bool   `mapstructure:"enable"`
	Cron   string `mapstructure:"cron"` // 完整性巡查的 cron 表达式
}

// LoadConfig 加载配置
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv() // 自动读取环境变量

	// 允许环境变量替换 YAML 中的 ${VAR}
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	// 显式展开环境变量
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.Contains(val, "${") {
			v.Set(key, os.ExpandEnv(val))
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
