package initializers

import (
	"job-requisition-backend/config"
	requisitionhandler "job-requisition-backend/lib/requisition"
	requisitionnotify "job-requisition-backend/lib/requisition-notify"
	"job-requisition-backend/lib/smtp"
)

func InitNotifier(conf *config.Configuration) requisitionhandler.Notifier {
	mail := smtp.NewInstance(smtp.Config{
		User:       conf.Smtp.User,
		Password:   conf.Smtp.Password,
		Host:       conf.Smtp.Host,
		Port:       conf.Smtp.Port,
		TLSEnabled: *conf.Smtp.TLSEnabled,
	})
	return requisitionnotify.NewInstance(mail, conf.Notify.From, conf.Notify.Recipient)
}
