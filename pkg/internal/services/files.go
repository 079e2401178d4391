package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/database"
	"github.com/alfaz-studio/sonacove-sub000/pkg/internal/models"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/viper"
)

const presignLifespan = 15 * time.Minute

// NewSharedFile registers an upload and hands back a presigned PUT URL
// the client pushes the bytes to. The object never transits this service.
func NewSharedFile(user models.Account, file models.SharedFile) (models.SharedFile, string, error) {
	file.AccountEmail = user.Email
	file.ObjectKey = fmt.Sprintf("shared/%s/%s", uuid.NewString(), file.FileName)

	if err := database.C.Save(&file).Error; err != nil {
		return file, "", err
	}

	uploadURL, err := Mc.PresignedPutObject(
		context.Background(),
		viper.GetString("storage.bucket"),
		file.ObjectKey,
		presignLifespan,
	)
	if err != nil {
		database.C.Delete(&file)
		return file, "", fmt.Errorf("remote storage error: %v", err)
	}

	return file, uploadURL.String(), nil
}

func statSharedFile(file models.SharedFile) (minio.ObjectInfo, error) {
	return Mc.StatObject(
		context.Background(),
		viper.GetString("storage.bucket"),
		file.ObjectKey,
		minio.StatObjectOptions{},
	)
}

// ConfirmSharedFileUpload checks the object actually landed in the
// bucket and marks the record uploaded. The file.shared event only
// fires here, never at registration, so consumers never hear about
// abandoned presigned uploads.
func ConfirmSharedFileUpload(file models.SharedFile) (models.SharedFile, error) {
	if file.IsUploaded {
		return file, nil
	}

	stat, err := statSharedFile(file)
	if err != nil {
		return file, fmt.Errorf("object was never uploaded: %v", err)
	}

	file.IsUploaded = true
	file.Size = stat.Size
	if err := database.C.Save(&file).Error; err != nil {
		return file, err
	}

	DispatchWebhookEvent(file.AccountEmail, models.WebhookEventFileShared, map[string]any{
		"file_id":   file.ID,
		"file_name": file.FileName,
		"size":      file.Size,
	})

	return file, nil
}

func ListSharedFiles(user models.Account) ([]models.SharedFile, error) {
	var files []models.SharedFile
	if err := database.C.Where(models.SharedFile{
		AccountEmail: user.Email,
	}).Order("created_at DESC").Find(&files).Error; err != nil {
		return files, err
	}
	return files, nil
}

func GetSharedFile(user models.Account, id uint) (models.SharedFile, error) {
	var file models.SharedFile
	if err := database.C.Where(models.SharedFile{
		BaseModel:    models.BaseModel{ID: id},
		AccountEmail: user.Email,
	}).First(&file).Error; err != nil {
		return file, err
	}
	return file, nil
}

func GetSharedFileURL(file models.SharedFile) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))

	downloadURL, err := Mc.PresignedGetObject(
		context.Background(),
		viper.GetString("storage.bucket"),
		file.ObjectKey,
		presignLifespan,
		params,
	)
	if err != nil {
		return "", fmt.Errorf("remote storage error: %v", err)
	}
	return downloadURL.String(), nil
}

func DeleteSharedFile(file models.SharedFile) error {
	if err := Mc.RemoveObject(
		context.Background(),
		viper.GetString("storage.bucket"),
		file.ObjectKey,
		minio.RemoveObjectOptions{},
	); err != nil {
		return fmt.Errorf("remote storage error: %v", err)
	}

	if err := database.C.Delete(&file).Error; err != nil {
		return err
	}

	DispatchWebhookEvent(file.AccountEmail, models.WebhookEventFileDeleted, map[string]any{
		"file_id":   file.ID,
		"file_name": file.FileName,
	})
	return nil
}
