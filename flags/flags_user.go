package flags

import (
	"blog/global"
	"blog/models"
	"blog/models/ctypes"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func User(c *cli.Context) error {
	username := c.String("username")
	email := c.String("email")
	password := c.String("password")
	role := ctypes.UserRole(c.String("role"))

	user := &models.UserModel{
		Username: username,
		Email:    email,
		Password: password,
		Role:     role,
		IsActive: true,
	}

	if err := user.Create(); err != nil {
		global.Log.Error("用户创建失败",
			zap.String("error", err.Error()),
		)
		return err
	}

	global.Log.Infof("用户%s创建成功,id:%d,role:%s", username, user.ID, string(role))
	return nil
}
