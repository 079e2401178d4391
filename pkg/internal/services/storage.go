package services

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

var Mc *minio.Client

func SetupStorage() error {
	var err error
	Mc, err = minio.New(viper.GetString("storage.endpoint"), &minio.Options{
		Creds: credentials.NewStaticV4(
			viper.GetString("storage.access_key"),
			viper.GetString("storage.secret_key"),
			"",
		),
		Secure: viper.GetBool("storage.use_ssl"),
	})
	return err
}
