package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"job-requisition-backend/config"
	"job-requisition-backend/fiberlog"
	xlsexport "job-requisition-backend/lib/export/xls"
	requisitionhandler "job-requisition-backend/lib/requisition"
	requisitiondelay "job-requisition-backend/lib/requisition/delay"
	requisitionstore "job-requisition-backend/lib/requisition/store"
)

var LoggerConfig *fiberlog.Config

type Services struct {
	Requisition requisitionhandler.Provider
	Exporter    xlsexport.Provider
}

func InitAllServices(ctx context.Context) *Services {
	LoggerConfig = InitLogger()
	config.InitConfig()
	services, err := InitServices(ctx, config.Conf)
	if err != nil {
		panic(err.Error())
	}
	return services
}

// InitServices сборка сервиса заявок по конфигурации
func InitServices(ctx context.Context, conf *config.Configuration) (*Services, error) {
	backend, err := InitStorage(ctx, conf)
	if err != nil {
		return nil, err
	}
	store := requisitionstore.NewInstance(backend, conf.Storage.Key)
	service := requisitionhandler.NewHandler(store,
		requisitionhandler.WithNotifier(InitNotifier(conf)),
		requisitionhandler.WithSaveAttempts(conf.Requisition.SaveAttempts),
	)
	delay := time.Duration(conf.Requisition.ArtificialDelayMs) * time.Millisecond
	if delay > 0 {
		log.WithField("delay", delay.String()).Warn("включена искусственная задержка операций с заявками")
	}
	return &Services{
		Requisition: requisitiondelay.Wrap(service, delay),
		Exporter:    xlsexport.NewHandler(),
	}, nil
}
