package flags

import (
	"os"

	"blog/global"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func Newflags() {
	var app = cli.NewApp()
	app.Name = "博客数据层"
	app.Usage = "博客内容数据库的建表、播种与维护工具"
	app.Commands = []*cli.Command{
		{
			Name:    "database",
			Aliases: []string{"db"},
			Usage:   "建表并创建只读视图",
			Action:  DB,
		},
		{
			Name:    "seed",
			Aliases: []string{"s"},
			Usage:   "写入默认设置、分类和菜单（可重复执行）",
			Action:  SeedData,
		},
		{
			Name:    "user",
			Aliases: []string{"u"},
			Usage:   "创建用户",
			Action:  User,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "username",
					Aliases: []string{"n"},
					Usage:   "用户名",
					Value:   "admin",
				},
				&cli.StringFlag{
					Name:    "email",
					Aliases: []string{"e"},
					Usage:   "邮箱",
					Value:   "admin@example.com",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "密码",
					Value:   "changeme123",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Usage:   "用户角色 (admin/editor/author/subscriber)",
					Value:   "admin",
				},
			},
		},
		{
			Name:    "stats",
			Aliases: []string{"st"},
			Usage:   "统计站点内容总量",
			Action:  Stats,
		},
		{
			Name:    "reconcile",
			Aliases: []string{"rc"},
			Usage:   "把Redis计数立即回写到数据库",
			Action:  Reconcile,
		},
	}
	if len(os.Args) > 1 {
		err := app.Run(os.Args)
		if err != nil {
			global.Log.Fatal("初始化命令失败", zap.String("error", err.Error()))
		}
		os.Exit(0)

	}
}
