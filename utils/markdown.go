package utils

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/russross/blackfriday"
)

var (
	ErrEmptyContent = errors.New("内容不能为空")
)

// RenderMarkdown 将 Markdown 内容转换为 HTML 并移除可能的恶意脚本标签
func RenderMarkdown(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	// 转换 Markdown 为 HTML
	unsafe := blackfriday.MarkdownCommon([]byte(content))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(unsafe)))
	if err != nil {
		return "", err
	}

	// 移除所有脚本标签
	doc.Find("script").Remove()

	return doc.Html()
}

// MarkdownPlainText 提取 Markdown 内容的纯文本
func MarkdownPlainText(content string) (string, error) {
	html, err := RenderMarkdown(content)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Text()), nil
}

// MarkdownExcerpt 截取 Markdown 内容的前n个字符作为摘要
func MarkdownExcerpt(content string, n int) string {
	text, err := MarkdownPlainText(content)
	if err != nil {
		return ""
	}
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n]) + "..."
}

// WordCount 统计 Markdown 内容的字数，中日韩字符按单字计，其余按空白分词
func WordCount(content string) int {
	text, err := MarkdownPlainText(content)
	if err != nil {
		return 0
	}

	count := 0
	inWord := false
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			count++
			inWord = false
		case unicode.IsSpace(r):
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}
