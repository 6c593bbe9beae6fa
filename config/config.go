package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	JwtSecret string `yaml:"jwt_secret"`
}

type DBConfig struct {
	Type    string `yaml:"type"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Name    string `yaml:"name"`
	User    string `yaml:"user"`
	Passwd  string `yaml:"passwd"`
	MaxConn int    `yaml:"max_conn"`
	IdleConn int   `yaml:"idle_conn"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

// MailerConfig configures the transactional email relay. Transport is
// "brevo" (HTTP API) or "smtp".
type MailerConfig struct {
	Transport   string `yaml:"transport"`
	ApiKey      string `yaml:"api_key"`
	SenderEmail string `yaml:"sender_email"`
	SenderName  string `yaml:"sender_name"`
	SmtpHost    string `yaml:"smtp_host"`
	SmtpPort    int    `yaml:"smtp_port"`
	SmtpUser    string `yaml:"smtp_user"`
	SmtpPasswd  string `yaml:"smtp_passwd"`
}

type AdminConfig struct {
	Pin string `yaml:"pin"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system"`
	Web      WebConfig    `yaml:"web"`
	Database DBConfig     `yaml:"database"`
	Logger   LoggerConfig `yaml:"logger"`
	Mailer   MailerConfig `yaml:"mailer"`
	Admin    AdminConfig  `yaml:"admin"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "lahorisamosa",
		Location: "Asia/Karachi",
		Workdir:  "/var/lahorisamosa",
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 3001,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "lahorisamosa",
		User:     "postgres",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: false,
	},
	Mailer: MailerConfig{
		Transport:  "brevo",
		SenderName: "Lahori Samosa",
		SmtpPort:   587,
	},
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(c.GetLogDir(), 0o755)
	_ = os.MkdirAll(c.GetDataDir(), 0o755)
}

func setEnvValue(name string, f func(v string)) {
	if v := os.Getenv(name); v != "" {
		f(v)
	}
}

// LoadConfig reads the YAML config file if present and applies environment
// overrides. A missing file is not an error: defaults plus environment are
// enough to run.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err != nil {
				panic(err)
			}
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("LAHORI_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("LAHORI_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("LAHORI_WEB_PORT", func(v string) { fmt.Sscanf(v, "%d", &cfg.Web.Port) })
	setEnvValue("LAHORI_JWT_SECRET", func(v string) { cfg.Web.JwtSecret = v })
	setEnvValue("LAHORI_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("LAHORI_DB_PORT", func(v string) { fmt.Sscanf(v, "%d", &cfg.Database.Port) })
	setEnvValue("LAHORI_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("LAHORI_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("LAHORI_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("BREVO_API_KEY", func(v string) { cfg.Mailer.ApiKey = v })
	setEnvValue("BREVO_SENDER_EMAIL", func(v string) { cfg.Mailer.SenderEmail = v })
	setEnvValue("BREVO_SENDER_NAME", func(v string) { cfg.Mailer.SenderName = v })
	setEnvValue("ADMIN_PIN", func(v string) { cfg.Admin.Pin = v })

	cfg.initDirs()
	return cfg
}
