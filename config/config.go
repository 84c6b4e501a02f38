package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
	DemoData bool   `yaml:"demo_data" json:"demo_data"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	Secret    string `yaml:"secret" json:"secret"`
	JwtExpire int    `yaml:"jwt_expire" json:"jwt_expire"` // token lifetime in hours
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "AleenPos",
		Location: "Asia/Kolkata",
		Workdir:  "/var/aleenpos",
		Debug:    true,
		DemoData: false,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      1880,
		Secret:    "9b6de5cc-aleen-pos-b712-7aed3ec56cce",
		JwtExpire: 168,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "aleenpos",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/aleenpos/aleenpos.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue == "true" || evalue == "1" || evalue == "on")
	}
}

func setEnvIntValue(name string, f func(v int)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := strconv.Atoi(evalue)
	if err == nil {
		f(p)
	}
}

// LoadConfig reads the YAML configuration file and applies ALEENPOS_*
// environment overrides. A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := *DefaultAppConfig
	appconfig := &cfg
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, appconfig)
		}
	}

	setEnvValue("ALEENPOS_SYSTEM_WORKDIR", func(v string) { appconfig.System.Workdir = v })
	setEnvBoolValue("ALEENPOS_SYSTEM_DEBUG", func(v bool) { appconfig.System.Debug = v })
	setEnvBoolValue("ALEENPOS_SYSTEM_DEMO_DATA", func(v bool) { appconfig.System.DemoData = v })

	setEnvValue("ALEENPOS_WEB_HOST", func(v string) { appconfig.Web.Host = v })
	setEnvValue("ALEENPOS_WEB_SECRET", func(v string) { appconfig.Web.Secret = v })
	setEnvIntValue("ALEENPOS_WEB_PORT", func(v int) { appconfig.Web.Port = v })

	setEnvValue("ALEENPOS_DB_TYPE", func(v string) { appconfig.Database.Type = v })
	setEnvValue("ALEENPOS_DB_HOST", func(v string) { appconfig.Database.Host = v })
	setEnvIntValue("ALEENPOS_DB_PORT", func(v int) { appconfig.Database.Port = v })
	setEnvValue("ALEENPOS_DB_NAME", func(v string) { appconfig.Database.Name = v })
	setEnvValue("ALEENPOS_DB_USER", func(v string) { appconfig.Database.User = v })
	setEnvValue("ALEENPOS_DB_PWD", func(v string) { appconfig.Database.Passwd = v })
	setEnvBoolValue("ALEENPOS_DB_DEBUG", func(v bool) { appconfig.Database.Debug = v })

	setEnvValue("ALEENPOS_LOGGER_MODE", func(v string) { appconfig.Logger.Mode = v })
	setEnvBoolValue("ALEENPOS_LOGGER_FILE_ENABLE", func(v bool) { appconfig.Logger.FileEnable = v })

	return appconfig
}

// InitDirs creates the runtime directory layout under workdir.
func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "uploads"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0o755)
}

// UploadsDir is where product images land.
func (c *AppConfig) UploadsDir() string {
	return filepath.Join(c.System.Workdir, "uploads")
}
