package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	KindStructure = "structure"
	KindVacancies = "vacancies"
)

// Provider архив сырых данных HuntFlow перед разрушающей записью в БД
type Provider interface {
	Save(ctx context.Context, kind string, payload interface{}) (objectName string, err error)
}

// ObjectStorage часть api minio, используемая для архива
type ObjectStorage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

var Instance Provider = Nop{}

func NewHandler(storage ObjectStorage, bucketName string) {
	if storage == nil {
		Instance = Nop{}
		return
	}
	Instance = impl{
		storage:    storage,
		bucketName: bucketName,
		now:        time.Now,
	}
}

type impl struct {
	storage    ObjectStorage
	bucketName string
	now        func() time.Time
}

func (i impl) Save(ctx context.Context, kind string, payload interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сериализации снимка")
	}
	objectName := fmt.Sprintf("%v/%v-%v.json", kind, i.now().UTC().Format("20060102T150405"), uuid.NewString())
	_, err = i.storage.PutObject(ctx, i.bucketName, objectName, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения снимка в S3")
	}
	log.
		WithField("bucket", i.bucketName).
		WithField("object", objectName).
		Debug("снимок данных HuntFlow сохранён")
	return objectName, nil
}

type Nop struct{}

func (Nop) Save(context.Context, string, interface{}) (string, error) {
	return "", nil
}
