package config

type System struct {
	Env       string `mapstructure:"env"`        // debug/release
	StartTime string `mapstructure:"start_time"` // 雪花算法起始时间
	MachineID int64  `mapstructure:"machine_id"` // 机器ID (0-1023)
	AddrDB    string `mapstructure:"addr_db"`    // ip2region.xdb 文件路径
	Timezone  string `mapstructure:"timezone"`   // 定时任务时区
}
