package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Config 聚合了模拟器运行所需的全部配置项。
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Market  MarketConfig  `mapstructure:"market"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Broker  BrokerConfig  `mapstructure:"broker"`
	Journal JournalConfig `mapstructure:"journal"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AppConfig 控制应用级参数。
type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// MarketConfig 描述默认的历史数据查询。
type MarketConfig struct {
	Symbol    string `mapstructure:"symbol"`
	TimeFrame string `mapstructure:"time_frame"`
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`
	Frequency string `mapstructure:"frequency"`
	Source    string `mapstructure:"source"`
}

// FeedConfig 描述远端行情源连接信息。
type FeedConfig struct {
	Name      string      `mapstructure:"name"`
	Market    string      `mapstructure:"market"`
	APIKey    string      `mapstructure:"api_key"`
	APISecret string      `mapstructure:"api_secret"`
	Retry     RetryConfig `mapstructure:"retry"`
}

// RetryConfig 统一控制重试机制。
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	MinDelay    time.Duration `mapstructure:"min_delay"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
}

// BrokerConfig 控制模拟券商的初始账本。
type BrokerConfig struct {
	InitialCash float64 `mapstructure:"initial_cash"`
	MarketPrice float64 `mapstructure:"market_price"`
}

// JournalConfig 管理回执流水库。
type JournalConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	InMemory        bool          `mapstructure:"in_memory"`
}

// LoggingConfig 控制日志输出。
type LoggingConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// Validate 对配置进行基本校验。日期与频率的精细校验由
// market.NewQuery 在构造查询时完成。
func (c *Config) Validate() error {
	var err error

	if c.App.Environment == "" {
		err = multierr.Append(err, errors.New("app.environment 不能为空"))
	}
	if c.Market.Symbol == "" {
		err = multierr.Append(err, errors.New("market.symbol 不能为空"))
	}
	if c.Market.StartDate == "" || c.Market.EndDate == "" {
		err = multierr.Append(err, errors.New("market.start_date 与 market.end_date 不能为空"))
	}
	if c.Market.Frequency == "" {
		err = multierr.Append(err, errors.New("market.frequency 不能为空"))
	}
	if c.Market.Source == "" {
		err = multierr.Append(err, errors.New("market.source 不能为空"))
	}
	if c.Feed.Name == "" {
		err = multierr.Append(err, errors.New("feed.name 不能为空"))
	}
	if c.Feed.Retry.MaxAttempts <= 0 {
		err = multierr.Append(err, errors.New("feed.retry.max_attempts 必须大于0"))
	}
	if c.Feed.Retry.MinDelay <= 0 || c.Feed.Retry.MaxDelay <= 0 {
		err = multierr.Append(err, errors.New("feed.retry.delay 必须为正"))
	}
	if c.Feed.Retry.MinDelay > c.Feed.Retry.MaxDelay {
		err = multierr.Append(err, errors.New("feed.retry.min_delay 不能大于 max_delay"))
	}
	if c.Broker.InitialCash <= 0 {
		err = multierr.Append(err, errors.New("broker.initial_cash 必须大于0"))
	}
	if c.Broker.MarketPrice <= 0 {
		err = multierr.Append(err, errors.New("broker.market_price 必须大于0"))
	}
	if c.Journal.Path == "" && !c.Journal.InMemory {
		err = multierr.Append(err, errors.New("journal.path 不能为空"))
	}
	if c.Journal.MaxOpenConns <= 0 {
		err = multierr.Append(err, errors.New("journal.max_open_conns 必须大于0"))
	}
	if c.Journal.MaxIdleConns < 0 {
		err = multierr.Append(err, errors.New("journal.max_idle_conns 不能为负"))
	}
	if c.Journal.ConnMaxLifetime < 0 {
		err = multierr.Append(err, errors.New("journal.conn_max_lifetime 不能为负"))
	}
	if c.Logging.Level == "" {
		err = multierr.Append(err, errors.New("logging.level 不能为空"))
	}
	if c.Logging.Encoding == "" {
		err = multierr.Append(err, errors.New("logging.encoding 不能为空"))
	}
	if len(c.Logging.OutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.output_paths 至少包含一个输出目标"))
	}
	if len(c.Logging.ErrorOutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.error_output_paths 至少包含一个输出目标"))
	}

	if err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	return nil
}
