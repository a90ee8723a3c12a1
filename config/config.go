package config

import (
	"github.com/gotify/configor"
	"github.com/pkg/errors"
)

var Conf *Configuration

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageS3       = "s3"
	StorageMemory   = "memory"
)

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080" env:"APP_PORT"`
		BodyLimit  int64  `default:"10485760" env:"APP_BODY_LIMIT"`
	}
	Storage struct {
		Driver  string `default:"file" env:"STORAGE_DRIVER"`
		Key     string `default:"jobRequisitions" env:"STORAGE_KEY"`
		FileDir string `default:"./data" env:"STORAGE_FILE_DIR"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"job-requisition" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		Bucket          string `default:"job-requisition" env:"S3_BUCKET"`
		Prefix          string `default:"kv/" env:"S3_PREFIX"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Notify struct {
		From      string `default:"" env:"NOTIFY_FROM"`
		Recipient string `default:"" env:"NOTIFY_RECIPIENT"`
	}
	Requisition struct {
		ArtificialDelayMs int `default:"0" env:"REQ_ARTIFICIAL_DELAY_MS"`
		SaveAttempts      int `default:"3" env:"REQ_SAVE_ATTEMPTS"`
	}
}

func (c *Configuration) Validate() error {
	switch c.Storage.Driver {
	case StorageFile, StoragePostgres, StorageS3, StorageMemory:
	default:
		return errors.Errorf("неизвестный тип хранилища: %q", c.Storage.Driver)
	}
	if c.Requisition.ArtificialDelayMs < 0 {
		return errors.New("задержка не может быть отрицательной")
	}
	return nil
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf, err := Load(configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}

// Load чтение конфигурации из файлов и переменных окружения
func Load(files ...string) (*Configuration, error) {
	conf := new(Configuration)
	if err := configor.New(&configor.Config{}).Load(conf, files...); err != nil {
		return nil, errors.Wrap(err, "ошибка чтения конфигурации")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}
