package fiberlog

import "github.com/sirupsen/logrus"

// Config is config for middleware
type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// MaxBodyLen обрезает тела запроса и ответа в логе, 0 - без ограничения
	MaxBodyLen int
	// SkipBodyTypes ответы с такими Content-Type логируются без тела (файлы выгрузок)
	SkipBodyTypes []string
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
	MaxBodyLen: 4096,
}
