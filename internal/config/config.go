package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SecurityCfg struct {
	AdminKey      string `mapstructure:"adminKey"`      // HMAC key for the admin surface
	InternalToken string `mapstructure:"internalToken"` // shared token for /internal routes
	SignWindowSec int    `mapstructure:"signWindowSec"` // max age of a signed request
}
type LedgerCfg struct {
	ShardsPerMonth int    `mapstructure:"shardsPerMonth"`
	ShardStrategy  string `mapstructure:"shardStrategy"` // crc32 | mod
}
type CommissionCfg struct {
	MinFee   string `mapstructure:"minFee"` // floor for positive order amounts, e.g. "0.01"
	Currency string `mapstructure:"currency"`
}
type PayoutCfg struct {
	MinAmount        string `mapstructure:"minAmount"` // minimum payout threshold
	MaxAttempts      int    `mapstructure:"maxAttempts"`
	DefaultBatchSize int    `mapstructure:"defaultBatchSize"`
	MaxBatchSize     int    `mapstructure:"maxBatchSize"`
}
type ImpactCfg struct {
	WindowDays    int     `mapstructure:"windowDays"`
	HighPct       float64 `mapstructure:"highPct"`
	MediumPct     float64 `mapstructure:"mediumPct"`
	RateDeltaWarn float64 `mapstructure:"rateDeltaWarn"` // percentage-point increase worth flagging
}
type PaymentCfg struct {
	ApiUrl     string `mapstructure:"apiUrl"`
	AppId      string `mapstructure:"appId"`
	Secret     string `mapstructure:"secret"`
	TimeoutSec int    `mapstructure:"timeoutSec"`
}
type LogCfg struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}
type TelegramCfg struct {
	Enable bool   `mapstructure:"enable"`
	Token  string `mapstructure:"token"`
	ChatId string `mapstructure:"chatId"`
}

type Root struct {
	Server      ServerCfg     `mapstructure:"server"`
	MysqlMain   MysqlCfg      `mapstructure:"mysql_main"`
	MysqlLedger MysqlCfg      `mapstructure:"mysql_ledger"`
	RabbitMQ    RabbitCfg     `mapstructure:"rabbitmq"`
	Redis       RedisCfg      `mapstructure:"redis"`
	Security    SecurityCfg   `mapstructure:"security"`
	Ledger      LedgerCfg     `mapstructure:"ledger"`
	Commission  CommissionCfg `mapstructure:"commission"`
	Payout      PayoutCfg     `mapstructure:"payout"`
	Impact      ImpactCfg     `mapstructure:"impact"`
	Payment     PaymentCfg    `mapstructure:"payment"`
	Log         LogCfg        `mapstructure:"log"`
	Telegram    TelegramCfg   `mapstructure:"telegram"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if C.Ledger.ShardsPerMonth <= 0 {
		C.Ledger.ShardsPerMonth = 4
	}
	if strings.TrimSpace(C.Ledger.ShardStrategy) == "" {
		C.Ledger.ShardStrategy = "crc32"
	}
	if C.Security.SignWindowSec <= 0 {
		C.Security.SignWindowSec = 300
	}
	if strings.TrimSpace(C.Commission.MinFee) == "" {
		C.Commission.MinFee = "0.01"
	}
	if strings.TrimSpace(C.Commission.Currency) == "" {
		C.Commission.Currency = "USD"
	}
	if strings.TrimSpace(C.Payout.MinAmount) == "" {
		C.Payout.MinAmount = "1.00"
	}
	if C.Payout.MaxAttempts <= 0 {
		C.Payout.MaxAttempts = 3
	}
	if C.Payout.DefaultBatchSize <= 0 {
		C.Payout.DefaultBatchSize = 10
	}
	if C.Payout.MaxBatchSize <= 0 {
		C.Payout.MaxBatchSize = 50
	}
	if C.Impact.WindowDays <= 0 {
		C.Impact.WindowDays = 30
	}
	if C.Impact.HighPct <= 0 {
		C.Impact.HighPct = 10
	}
	if C.Impact.MediumPct <= 0 {
		C.Impact.MediumPct = 3
	}
	if C.Impact.RateDeltaWarn <= 0 {
		C.Impact.RateDeltaWarn = 2
	}
	if C.Payment.TimeoutSec <= 0 {
		C.Payment.TimeoutSec = 10
	}
	if strings.TrimSpace(C.Log.Dir) == "" {
		C.Log.Dir = "logs"
	}
}
