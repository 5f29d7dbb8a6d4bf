package models

import (
	"errors"
	"testing"
)

func TestRecordPostView(t *testing.T) {
	db := setupTestDB(t, "view-record")

	author := mustUser(t, "viewedauthor")
	reader := mustUser(t, "reader")
	post := mustPublishedPost(t, author.ID, "viewed")

	if err := RecordPostView(post.ID, Identity{UserID: &reader.ID}, "go-test"); err != nil {
		t.Fatalf("记录用户浏览失败: %v", err)
	}
	// 浏览不去重，同一IP可以反复浏览
	for i := 0; i < 2; i++ {
		if err := RecordPostView(post.ID, Identity{IP: "10.0.0.3"}, "go-test"); err != nil {
			t.Fatalf("记录访客浏览失败: %v", err)
		}
	}
	if err := RecordPostView(post.ID, Identity{}, "go-test"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("无来源浏览应被拒绝，实际: %v", err)
	}
	if err := RecordPostView(9999, Identity{IP: "10.0.0.3"}, "go-test"); !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("文章不存在应返回约束冲突，实际: %v", err)
	}

	count, err := PostViewCount(post.ID)
	if err != nil {
		t.Fatalf("统计浏览失败: %v", err)
	}
	if count != 3 {
		t.Fatalf("浏览记录数不符: %d", count)
	}
	var fresh PostModel
	db.Take(&fresh, post.ID)
	if fresh.ViewCount != 3 {
		t.Fatalf("缓存浏览计数不符: %d", fresh.ViewCount)
	}
}

func TestViewAnonymizedOnUserDelete(t *testing.T) {
	db := setupTestDB(t, "view-anonymize")

	author := mustUser(t, "remainauthor")
	reader := mustUser(t, "goneReader")
	post := mustPublishedPost(t, author.ID, "remain-post")

	if err := RecordPostView(post.ID, Identity{UserID: &reader.ID}, "go-test"); err != nil {
		t.Fatalf("记录浏览失败: %v", err)
	}
	if err := reader.Delete(); err != nil {
		t.Fatalf("删除用户失败: %v", err)
	}

	var view PostViewModel
	if err := db.Where("post_id = ?", post.ID).Take(&view).Error; err != nil {
		t.Fatalf("浏览记录不应随用户删除而消失: %v", err)
	}
	if view.UserID != nil {
		t.Fatal("用户删除后浏览记录应被匿名化")
	}
}
