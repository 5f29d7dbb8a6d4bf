package models

import (
	"errors"
	"strings"
	"testing"

	"blog/models/ctypes"
)

func TestContactCreateSanitizes(t *testing.T) {
	setupTestDB(t, "contact")

	contact := &ContactModel{
		Name:    "来访者",
		Email:   "visitor@example.com",
		Subject: `咨询<script>alert(1)</script>`,
		Message: "你好，<b>想咨询一下</b>",
	}
	if err := contact.Create(); err != nil {
		t.Fatalf("创建留言失败: %v", err)
	}
	if contact.Status != ctypes.SubmissionStatusNew {
		t.Fatalf("新留言状态不符: %s", contact.Status)
	}
	if strings.Contains(contact.Subject, "<script>") || strings.Contains(contact.Message, "<b>") {
		t.Fatalf("留言内容应只保留纯文本: %q %q", contact.Subject, contact.Message)
	}

	bad := &ContactModel{Name: "无邮箱", Email: "nope", Message: "x"}
	if err := bad.Create(); err == nil {
		t.Fatal("非法邮箱应被拒绝")
	}
}

func TestContactStatusMonotonic(t *testing.T) {
	setupTestDB(t, "contact-status")

	contact := &ContactModel{Name: "来访者", Email: "visitor@example.com", Message: "留言"}
	if err := contact.Create(); err != nil {
		t.Fatalf("创建留言失败: %v", err)
	}

	if err := contact.AdvanceStatus(ctypes.SubmissionStatusRead); err != nil {
		t.Fatalf("推进到已读失败: %v", err)
	}
	if err := contact.AdvanceStatus(ctypes.SubmissionStatusReplied); err != nil {
		t.Fatalf("推进到已回复失败: %v", err)
	}
	// 回退被拒绝
	if err := contact.AdvanceStatus(ctypes.SubmissionStatusNew); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("状态回退应被拒绝，实际: %v", err)
	}
	// 同级重复推进允许
	if err := contact.AdvanceStatus(ctypes.SubmissionStatusReplied); err != nil {
		t.Fatalf("同级推进失败: %v", err)
	}
	if err := contact.AdvanceStatus("bogus"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("未知状态应被拒绝，实际: %v", err)
	}
	if err := contact.AdvanceStatus(ctypes.SubmissionStatusArchived); err != nil {
		t.Fatalf("归档失败: %v", err)
	}
}

func TestContactList(t *testing.T) {
	setupTestDB(t, "contact-list")

	for i := 0; i < 3; i++ {
		contact := &ContactModel{Name: "来访者", Email: "visitor@example.com", Message: "留言"}
		if err := contact.Create(); err != nil {
			t.Fatalf("创建留言失败: %v", err)
		}
	}
	handled := &ContactModel{Name: "来访者", Email: "visitor@example.com", Message: "已处理"}
	if err := handled.Create(); err != nil {
		t.Fatalf("创建留言失败: %v", err)
	}
	if err := handled.AdvanceStatus(ctypes.SubmissionStatusRead); err != nil {
		t.Fatalf("推进状态失败: %v", err)
	}

	list, total, err := ContactList(ctypes.SubmissionStatusNew, PageInfo{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("列出留言失败: %v", err)
	}
	if total != 3 {
		t.Fatalf("待处理留言总数不符: %d", total)
	}
	if len(list) != 2 {
		t.Fatalf("分页大小不符: %d", len(list))
	}

	_, total, err = ContactList("", PageInfo{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("列出全部留言失败: %v", err)
	}
	if total != 4 {
		t.Fatalf("留言总数不符: %d", total)
	}
}
