package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRenderMarkdownStripsScript(t *testing.T) {
	html, err := RenderMarkdown("# 标题\n\n正文<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if !strings.Contains(html, "<h1>") {
		t.Fatalf("标题未渲染: %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("脚本标签未移除: %s", html)
	}

	if _, err := RenderMarkdown("   "); err == nil {
		t.Fatal("空内容应返回错误")
	}
}

func TestMarkdownExcerpt(t *testing.T) {
	long := strings.Repeat("内容很长", 100)
	excerpt := MarkdownExcerpt(long, 20)
	if !strings.HasSuffix(excerpt, "...") {
		t.Fatalf("超长摘要应带省略号: %s", excerpt)
	}
	if utf8.RuneCountInString(excerpt) != 23 {
		t.Fatalf("摘要长度不符: %d", utf8.RuneCountInString(excerpt))
	}

	short := MarkdownExcerpt("短内容", 20)
	if short != "短内容" {
		t.Fatalf("短内容摘要不符: %s", short)
	}
}

func TestWordCount(t *testing.T) {
	// 中文按字计，英文按词计
	if got := WordCount("你好世界"); got != 4 {
		t.Fatalf("中文字数不符: %d", got)
	}
	if got := WordCount("hello world"); got != 2 {
		t.Fatalf("英文词数不符: %d", got)
	}
	if got := WordCount("Go语言 入门"); got != 5 {
		t.Fatalf("混排字数不符: %d", got)
	}
	if got := WordCount(""); got != 0 {
		t.Fatalf("空内容字数不符: %d", got)
	}
}
