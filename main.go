package main

import (
	"os"
	"os/signal"
	"syscall"

	"blog/core"
	"blog/flags"
	"blog/global"
	"blog/service/corn_ser"
	"blog/utils"
)

func main() {
	// 初始化配置
	core.InitConf()
	// 初始化日志
	global.Log = core.NewLogManager(&global.Config.Log)
	// 初始化数据库
	global.DB = core.InitGorm()
	// 初始化redis
	global.Redis = core.InitRedis()
	// 初始化地址数据库
	global.AddrDB = core.InitAddrDB()
	// 初始化雪花ID
	utils.Init(global.Config.System.StartTime, global.Config.System.MachineID)
	// 初始化命令行参数
	flags.Newflags()
	// 初始化corn
	corn_ser.CornInit()

	// 常驻运行定时任务，收到信号后退出
	global.Log.Info("数据层服务启动完成")
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	global.Log.Info("数据层服务退出")
}
