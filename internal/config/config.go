package config

import (
	"fmt"

	"github.com/KamisAyaka/Crowdfunding/internal/logger"
	"github.com/KamisAyaka/Crowdfunding/internal/model"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Indexer   IndexerConfig   `mapstructure:"indexer"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// IndexerConfig 事件索引服务配置，Endpoint 为必填项
type IndexerConfig struct {
	Endpoint string `mapstructure:"endpoint"` // GraphQL查询地址
	Timeout  int    `mapstructure:"timeout"`  // 单次查询超时（秒）
}

// ChainConfig 链配置，只用于组装调用参数，本服务不连RPC节点
type ChainConfig struct {
	ChainId   int64                     `mapstructure:"chain_id"`
	Contracts map[string]ContractConfig `mapstructure:"contracts"`
}

// ContractConfig 单个合约配置
type ContractConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// SchedulerConfig 视图刷新任务配置
type SchedulerConfig struct {
	Interval int `mapstructure:"interval"`  // 秒
	PoolSize int `mapstructure:"pool_size"` // 并发刷新的协程数
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/cfv")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("indexer.timeout", 15)
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "crowdfunding_view")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("scheduler.interval", 60)
	viper.SetDefault("scheduler.pool_size", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}

// Validate 校验必填配置，索引服务地址缺失直接拒绝启动，不进入任何计算
func (c *Config) Validate() error {
	if c.Indexer.Endpoint == "" {
		return fmt.Errorf("indexer.endpoint: %w", model.ErrConfigMissing)
	}
	return nil
}

// ContractAddress 按名称取合约地址，未配置返回空串
func (c *ChainConfig) ContractAddress(name string) string {
	if c.Contracts == nil {
		return ""
	}
	return c.Contracts[name].Address
}
