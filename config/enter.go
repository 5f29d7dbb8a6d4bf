package config

type Config struct {
	Mysql  Mysql  `mapstructure:"mysql"`
	Redis  Redis  `mapstructure:"redis"`
	Log    Log    `mapstructure:"log"`
	System System `mapstructure:"system"`
}
