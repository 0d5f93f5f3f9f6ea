package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"huntflow-sync/config"
	"huntflow-sync/lib/snapshot"
	s3client "huntflow-sync/s3"
)

// InitS3 без S3 снимки данных HuntFlow не сохраняются
func InitS3(ctx context.Context) {
	if config.Conf.S3.Endpoint == "" {
		log.Info("S3 не настроен, снимки данных HuntFlow отключены")
		return
	}
	minioClient, err := s3client.Connect(config.Conf.S3.Endpoint, config.Conf.S3.AccessKeyID,
		config.Conf.S3.SecretAccessKey, *config.Conf.S3.UseSSL)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}
	err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName)
	if err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет для снимков недоступен")
		return
	}
	s3client.Client = minioClient
	snapshot.NewHandler(minioClient, config.Conf.S3.BucketName)
	log.Info("S3 клиент успешно инициализирован")
}
