package db

import (
	"fmt"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type Config struct {
	Host      string
	Port      string
	Name      string
	User      string
	Password  string
	DebugMode bool
	Migrate   bool
}

func (c Config) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", c.Host, c.Port, c.User, c.Name, c.Password)
}

func Connect(cfg Config) error {
	if DB != nil {
		return nil
	}
	gormCfg := &gorm.Config{
		Logger: gorm_logrus.New(),
		// ошибки драйвера приводятся к gorm.ErrDuplicatedKey и т.п.
		TranslateError: true,
	}
	if cfg.DebugMode {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}
	conn, err := gorm.Open(postgres.Open(cfg.dsn()), gormCfg)
	if err != nil {
		return errors.Wrap(err, "ошибка подключения к БД")
	}
	if cfg.DebugMode {
		conn = conn.Debug()
	}
	DB = conn
	if cfg.Migrate {
		if err = AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.Info("сервис успешно подключен к БД")
	return nil
}

func PingDB() error {
	db, err := DB.DB()
	if err != nil {
		return err
	}
	return db.Ping()
}
