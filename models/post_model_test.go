package models

import (
	"errors"
	"testing"
	"time"

	"blog/models/ctypes"
)

func TestPostCreateDerivesFields(t *testing.T) {
	setupTestDB(t, "post-create")

	author := mustUser(t, "writer")
	post := &PostModel{
		Title:    "第一篇文章",
		Slug:     "first-post",
		Content:  "# 开头\n\n这是正文，Hello World。",
		AuthorID: author.ID,
	}
	if err := post.Create(); err != nil {
		t.Fatalf("创建文章失败: %v", err)
	}

	if post.Status != ctypes.PostStatusDraft {
		t.Fatalf("新文章应默认为草稿，实际: %s", post.Status)
	}
	if post.Excerpt == "" {
		t.Fatal("摘要应从内容推导")
	}
	if post.WordCount == 0 {
		t.Fatal("字数应从内容推导")
	}

	// 别名唯一
	dup := &PostModel{Title: "重复", Slug: "first-post", AuthorID: author.ID}
	if err := dup.Create(); !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("重复别名应返回约束冲突，实际: %v", err)
	}
	// 作者必须存在
	ghost := &PostModel{Title: "无主", Slug: "ghost", AuthorID: 9999}
	if err := ghost.Create(); !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("作者不存在应返回约束冲突，实际: %v", err)
	}
}

func TestPostStatusTransitions(t *testing.T) {
	db := setupTestDB(t, "post-status")

	author := mustUser(t, "statuswriter")
	post := mustPost(t, author.ID, "status-post")

	if err := post.Publish(); err != nil {
		t.Fatalf("发布文章失败: %v", err)
	}
	var fresh PostModel
	db.Take(&fresh, post.ID)
	if fresh.Status != ctypes.PostStatusPublished || fresh.PublishedAt == nil {
		t.Fatalf("发布后状态异常: status=%s published_at=%v", fresh.Status, fresh.PublishedAt)
	}

	// 定时发布必须在未来
	past := time.Now().Add(-time.Hour)
	if err := post.Schedule(past); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("过去的定时时间应被拒绝，实际: %v", err)
	}
	future := time.Now().Add(time.Hour)
	if err := post.Schedule(future); err != nil {
		t.Fatalf("定时发布失败: %v", err)
	}

	if err := post.Archive(); err != nil {
		t.Fatalf("归档失败: %v", err)
	}
	db.Take(&fresh, post.ID)
	if fresh.Status != ctypes.PostStatusArchived {
		t.Fatalf("归档后状态异常: %s", fresh.Status)
	}
	// 已归档不能直接发布
	if err := fresh.Publish(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("归档文章直接发布应被拒绝，实际: %v", err)
	}
}

func TestPostIncrementCounter(t *testing.T) {
	db := setupTestDB(t, "post-counter")

	author := mustUser(t, "counterwriter")
	post := mustPublishedPost(t, author.ID, "counted")

	for i := 0; i < 3; i++ {
		if err := post.IncrementCounter(ctypes.CounterView); err != nil {
			t.Fatalf("自增浏览数失败: %v", err)
		}
	}
	if err := post.IncrementCounter(ctypes.CounterLike); err != nil {
		t.Fatalf("自增点赞数失败: %v", err)
	}

	var fresh PostModel
	db.Take(&fresh, post.ID)
	if fresh.ViewCount != 3 || fresh.LikeCount != 1 || fresh.ShareCount != 0 {
		t.Fatalf("计数不符: view=%d like=%d share=%d", fresh.ViewCount, fresh.LikeCount, fresh.ShareCount)
	}

	// Redis未启用时分享计数走数据库
	if err := post.Share(); err != nil {
		t.Fatalf("自增分享数失败: %v", err)
	}
	db.Take(&fresh, post.ID)
	if fresh.ShareCount != 1 {
		t.Fatalf("分享计数不符: %d", fresh.ShareCount)
	}

	// 未知字段
	if err := post.IncrementCounter("bogus"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("未知计数字段应被拒绝，实际: %v", err)
	}
	// 文章不存在
	missing := &PostModel{MODEL: MODEL{ID: 9999}}
	if err := missing.IncrementCounter(ctypes.CounterView); !errors.Is(err, ErrNotFound) {
		t.Fatalf("文章不存在应返回不存在，实际: %v", err)
	}
}

func TestPostTagsReplaceAndCascade(t *testing.T) {
	db := setupTestDB(t, "post-tags")

	author := mustUser(t, "tagwriter")
	post := mustPost(t, author.ID, "tagged")

	golang := &TagModel{Name: "Go", Slug: "go"}
	web := &TagModel{Name: "Web", Slug: "web"}
	for _, tag := range []*TagModel{golang, web} {
		if err := tag.Create(); err != nil {
			t.Fatalf("创建标签失败: %v", err)
		}
	}

	if err := post.SetTags([]uint{golang.ID, web.ID}); err != nil {
		t.Fatalf("设置标签失败: %v", err)
	}
	var count int64
	db.Model(&PostTagModel{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 2 {
		t.Fatalf("关联行数不符: %d", count)
	}

	// 整体替换
	if err := post.SetTags([]uint{golang.ID}); err != nil {
		t.Fatalf("替换标签失败: %v", err)
	}
	db.Model(&PostTagModel{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 1 {
		t.Fatalf("替换后关联行数不符: %d", count)
	}

	// 不存在的标签
	if err := post.SetTags([]uint{golang.ID, 9999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的标签应返回不存在，实际: %v", err)
	}

	// 删除标签只清理关联行
	if err := golang.Delete(); err != nil {
		t.Fatalf("删除标签失败: %v", err)
	}
	db.Model(&PostTagModel{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Fatal("标签删除后关联行应被级联删除")
	}
	var freshPost PostModel
	if err := db.Take(&freshPost, post.ID).Error; err != nil {
		t.Fatalf("文章不应随标签删除而消失: %v", err)
	}
}

func TestPostDeleteCascadesEngagement(t *testing.T) {
	db := setupTestDB(t, "post-delete")

	author := mustUser(t, "delwriter")
	post := mustPublishedPost(t, author.ID, "del-post")

	comment := &CommentModel{PostID: post.ID, AuthorName: "访客", AuthorEmail: "guest@example.com", Content: "评论"}
	if err := comment.Create(); err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}
	if err := RecordPostView(post.ID, Identity{IP: "10.0.0.1"}, "go-test"); err != nil {
		t.Fatalf("记录浏览失败: %v", err)
	}
	if err := LikePost(post.ID, Identity{IP: "10.0.0.1"}); err != nil {
		t.Fatalf("点赞失败: %v", err)
	}

	if err := post.Delete(); err != nil {
		t.Fatalf("删除文章失败: %v", err)
	}

	var count int64
	db.Model(&CommentModel{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Fatal("文章删除后评论应被级联删除")
	}
	db.Model(&PostViewModel{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Fatal("文章删除后浏览记录应被级联删除")
	}
	db.Model(&PostLikeModel{}).Where("post_id = ?", post.ID).Count(&count)
	if count != 0 {
		t.Fatal("文章删除后点赞应被级联删除")
	}
}
