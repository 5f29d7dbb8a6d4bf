package flags

import (
	"blog/global"
	"blog/models"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func Stats(c *cli.Context) error {
	var (
		users, posts, comments int64
		views, likes, subs     int64
	)

	// 六个计数互不相关，并发查询
	var g errgroup.Group
	g.Go(func() (err error) { users, err = models.GetTotalUsers(); return })
	g.Go(func() (err error) { posts, err = models.GetTotalPosts(); return })
	g.Go(func() (err error) { comments, err = models.GetTotalComments(); return })
	g.Go(func() (err error) { views, err = models.GetTotalViews(); return })
	g.Go(func() (err error) { likes, err = models.GetTotalLikes(); return })
	g.Go(func() (err error) { subs, err = models.GetTotalSubscribers(); return })
	if err := g.Wait(); err != nil {
		global.Log.Errorf("统计站点内容失败: %v", err)
		return err
	}

	global.Log.Infof("用户:%d 文章:%d 评论:%d 浏览:%d 点赞:%d 订阅:%d",
		users, posts, comments, views, likes, subs)
	return nil
}
