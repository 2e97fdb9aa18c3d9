package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/config"
	"mkt-settle-api/internal/dal"
	"mkt-settle-api/internal/handler"
	"mkt-settle-api/internal/idgen"
	"mkt-settle-api/internal/middleware"
	"mkt-settle-api/internal/mq"
	"mkt-settle-api/internal/shard"
	"mkt-settle-api/internal/system"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	dal.InitLedgerDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.InitFromEnv()

	// 分表引擎与系统参数缓存
	shard.InitShardEngines()
	system.Config()

	// start consumers
	go mq.StartConsumers()

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// 设置可信代理 IP（如本地或内网）
	r.SetTrustedProxies([]string{"127.0.0.1", "192.168.0.0/16"})
	r.Use(middleware.Recover(), middleware.RequestLogger(), middleware.TraceAuditMiddleware())

	sh := handler.NewScheduleHandler()
	ch := handler.NewCommissionHandler()
	ih := handler.NewImpactHandler()
	ph := handler.NewPayoutHandler()
	bh := handler.NewBatchHandler()
	th := handler.NewSettlementHandler()

	v1 := r.Group("/api/v1")
	{
		// 费率表：读接口开放，写接口走管理签名
		v1.POST("/schedule/get", sh.Get)
		v1.POST("/schedule/resolve", sh.Resolve)
		admin := v1.Group("", middleware.AdminAuth())
		{
			admin.POST("/schedule/category/set", sh.SetCategoryRate)
			admin.POST("/schedule/category/remove", sh.RemoveCategoryRate)
			admin.POST("/schedule/override/set", sh.SetSupplierOverride)
			admin.POST("/schedule/override/remove", sh.RemoveSupplierOverride)
			admin.POST("/schedule/tiers/update", sh.UpdateTierRates)
			admin.POST("/commission/adjust/apply", ch.ApplyAdjust)
			admin.POST("/payout/rail/enable", ph.EnableRail)
		}

		// 佣金
		v1.POST("/commission/compute", ch.Compute)
		v1.POST("/commission/adjust/preview", ch.PreviewAdjust)
		v1.POST("/impact/analyze", middleware.RateLimit(1, 2), ih.Analyze)

		// 出款队列
		v1.POST("/payout/enqueue", ph.Enqueue)
		v1.POST("/payout/retry", ph.Retry)
		v1.POST("/payout/cancel", ph.Cancel)
		v1.POST("/payout/intervention", ph.Intervention)

		// 批次调度，限流防止并发轧差
		v1.POST("/payout/batch/process", middleware.RateLimit(2, 4), bh.Process)
	}

	in := r.Group("/internal/v1", middleware.InternalAuth())
	{
		in.POST("/schedule/history", sh.History)
		in.POST("/commission/query", ch.Query)
		in.POST("/payout/list", ph.List)
		in.POST("/payout/detail", ph.Detail)
		in.POST("/batch/detail", bh.Detail)
		in.POST("/batch/list", bh.List)
		in.GET("/recon/discrepancies", th.Discrepancies)
	}

	// 代付服务回调
	r.POST("/callback/payment/settlement", th.Settlement)

	// 健康检查
	r.GET("/health", handler.NewHealthHandler().Check)

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
