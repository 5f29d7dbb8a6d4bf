package models

import (
	"errors"
	"testing"

	"blog/models/ctypes"
)

func TestSubscriberLifecycle(t *testing.T) {
	db := setupTestDB(t, "subscriber")

	sub, err := Subscribe("reader@example.com")
	if err != nil {
		t.Fatalf("订阅失败: %v", err)
	}
	if sub.Status != ctypes.SubscriberStatusPending || sub.ConfirmToken == "" {
		t.Fatalf("新订阅状态异常: %+v", sub)
	}

	// 邮箱唯一
	if _, err := Subscribe("reader@example.com"); !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("重复订阅应返回约束冲突，实际: %v", err)
	}
	// 非法邮箱
	if _, err := Subscribe("not-an-email"); err == nil {
		t.Fatal("非法邮箱应被拒绝")
	}

	// 确认
	if err := ConfirmSubscription("bogus"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("无效令牌应返回不存在，实际: %v", err)
	}
	if err := ConfirmSubscription(sub.ConfirmToken); err != nil {
		t.Fatalf("确认订阅失败: %v", err)
	}
	var fresh SubscriberModel
	db.Take(&fresh, sub.ID)
	if fresh.Status != ctypes.SubscriberStatusSubscribed || fresh.ConfirmedAt == nil {
		t.Fatalf("确认后状态异常: %+v", fresh)
	}
	if fresh.ConfirmToken != "" {
		t.Fatal("确认后令牌应被清空")
	}

	total, err := GetTotalSubscribers()
	if err != nil {
		t.Fatalf("统计订阅失败: %v", err)
	}
	if total != 1 {
		t.Fatalf("有效订阅数不符: %d", total)
	}

	// 退订
	if err := Unsubscribe("reader@example.com"); err != nil {
		t.Fatalf("退订失败: %v", err)
	}
	db.Take(&fresh, sub.ID)
	if fresh.Status != ctypes.SubscriberStatusUnsubscribed || fresh.UnsubscribedAt == nil {
		t.Fatalf("退订后状态异常: %+v", fresh)
	}
	if err := Unsubscribe("nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("退订不存在的邮箱应返回不存在，实际: %v", err)
	}

	total, _ = GetTotalSubscribers()
	if total != 0 {
		t.Fatalf("退订后有效订阅数不符: %d", total)
	}
}
