package ctypes

// PostStatus 文章状态
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusArchived  PostStatus = "archived"
)

// PostType 内容类型
type PostType string

const (
	PostTypePost   PostType = "post"
	PostTypePage   PostType = "page"
	PostTypeCustom PostType = "custom"
)

// CounterField 文章计数字段
type CounterField string

const (
	CounterView  CounterField = "view"
	CounterLike  CounterField = "like"
	CounterShare CounterField = "share"
)

// Column 计数字段对应的列名
func (c CounterField) Column() string {
	switch c {
	case CounterView:
		return "view_count"
	case CounterLike:
		return "like_count"
	case CounterShare:
		return "share_count"
	}
	return ""
}
