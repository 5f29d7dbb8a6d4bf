package ctypes

// SubscriberStatus 订阅者状态
type SubscriberStatus string

const (
	SubscriberStatusPending      SubscriberStatus = "pending"
	SubscriberStatusSubscribed   SubscriberStatus = "subscribed"
	SubscriberStatusUnsubscribed SubscriberStatus = "unsubscribed"
)

// SubmissionStatus 留言处理状态，按 new→read→replied→archived 单向推进
type SubmissionStatus string

const (
	SubmissionStatusNew      SubmissionStatus = "new"
	SubmissionStatusRead     SubmissionStatus = "read"
	SubmissionStatusReplied  SubmissionStatus = "replied"
	SubmissionStatusArchived SubmissionStatus = "archived"
)

// Rank 留言状态的推进序号
func (s SubmissionStatus) Rank() int {
	switch s {
	case SubmissionStatusNew:
		return 0
	case SubmissionStatusRead:
		return 1
	case SubmissionStatusReplied:
		return 2
	case SubmissionStatusArchived:
		return 3
	}
	return -1
}

// SettingType 配置项的值类型
type SettingType string

const (
	SettingTypeString  SettingType = "string"
	SettingTypeNumber  SettingType = "number"
	SettingTypeBoolean SettingType = "boolean"
	SettingTypeJSON    SettingType = "json"
)

// RelationType 关联文章的来源
type RelationType string

const (
	RelationManual RelationType = "manual"
	RelationAuto   RelationType = "auto"
)
