package router

import (
	"BaziMeta/serve/almanac"
	"BaziMeta/serve/destiny"
	"BaziMeta/serve/lot_mgt"
	"BaziMeta/serve/points"
	"BaziMeta/serve/ranking"
	"BaziMeta/serve/stick"
	"BaziMeta/serve/user"

	"github.com/gin-gonic/gin"
)

// InitRoutes 初始化路由
func InitRoutes(r *gin.Engine) {

	userHandler := user.NewHandler()
	destinyHandler := destiny.NewHandler()
	pointsHandler := points.NewHandler()
	stickHandler := stick.NewHandler()
	lotMgtHandler := lot_mgt.NewHandler()
	rankingHandler := ranking.NewHandler()
	almanacHandler := almanac.NewHandler()

	// 路由组 /api
	api := r.Group("/api")
	{
		api.GET("/sms-code", userHandler.HandleSendSMSCode)   // 发送短信验证码
		api.POST("/login/by-sms", userHandler.HandleSMSLogin) // 短信验证码登录

		api.GET("/almanac/today", almanacHandler.HandleGetToday)          // 查询今日黄历
		api.POST("/ranking/query", rankingHandler.HandleQueryRankingList) // 查询积分排行榜

		// 需要认证的路由组
		authApi := api.Group("/")
		authApi.Use(user.AuthMiddleware())
		{
			authApi.POST("/logout", userHandler.HandleLogout)               // 退出登录
			authApi.GET("/user/me", userHandler.HandleGetCurrentUserInfo)   // 查询当前用户信息
			authApi.PUT("/user/profile", userHandler.HandleUpdateMyProfile) // 更新用户资料

			authApi.POST("/destiny/analysis", destinyHandler.HandleAnalyzeMyDestiny) // 八字命盘分析
			authApi.GET("/destiny/analysis", destinyHandler.HandleQueryMyDestiny)    // 查询我的命盘分析

			authApi.GET("/points/my", pointsHandler.HandleQueryMyPoints)       // 查询我的积分
			authApi.POST("/points/check-in", pointsHandler.HandleDailyCheckIn) // 每日签到
			authApi.POST("/points/logs", pointsHandler.HandleQueryMyPointsLog) // 查询我的积分流水
			authApi.GET("/ranking/my", rankingHandler.HandleQueryMyRank)       // 查询我的积分排名

			authApi.POST("/stick/draw", stickHandler.HandleDrawStick)        // 灵签抽签
			authApi.POST("/stick/draws", stickHandler.HandleQueryMyDraws)    // 查询我的抽签记录
			authApi.PUT("/stick/lots/reload", stickHandler.HandleReloadLots) // 刷新签池

			authApi.POST("/lot-mgt/lots/query", lotMgtHandler.HandleQueryLotList)  // 查询签文列表
			authApi.PUT("/lot-mgt/lot", lotMgtHandler.HandleUpsertLot)             // 新增或更新签文
			authApi.PUT("/lot-mgt/lot/enabled", lotMgtHandler.HandleSetLotEnabled) // 启用或禁用签文
		}
	}
}
