package service

import (
	"Mosaic/internal/api/dto"
	"Mosaic/internal/pkg/consts"
	"Mosaic/internal/pkg/minio"
	"Mosaic/internal/pkg/util"
	"bytes"
	"context"
	"io"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const thumbMaxSide = 480

type MediaService interface {
	Upload(ctx context.Context, fileName string, size int64, reader io.ReadSeeker) (*dto.MediaUploadDTO, error)
}

type mediaServiceImpl struct{}

func NewMediaService() MediaService {
	return &mediaServiceImpl{}
}

func (s *mediaServiceImpl) Upload(ctx context.Context, fileName string, size int64, reader io.ReadSeeker) (*dto.MediaUploadDTO, error) {
	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		return nil, ErrParamInvalid
	}

	isImage := strings.HasPrefix(contentType, consts.MimePrefixImage)
	isVideo := strings.HasPrefix(contentType, consts.MimePrefixVideo)
	if !isImage && !isVideo {
		return nil, ErrFileNotSupported
	}

	ext := path.Ext(fileName)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	var thumbURL *string
	if isImage {
		if thumbKey, err := s.uploadThumbnail(ctx, reader, objectName); err != nil {
			// 缩略图失败不阻塞上传，前端回退到原图
			log.WarnContext(ctx, "thumbnail generation failed", "object", objectName, "err", err)
		} else {
			thumbURL = util.PtrString(minio.GetPublicURL(thumbKey))
		}
		if _, err = reader.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
	}

	fileKey, err := minio.UploadFile(ctx, objectName, reader, size, contentType)
	if err != nil {
		log.ErrorContext(ctx, "MinIO upload failed", "err", err)
		return nil, UnExpectedError
	}

	log.InfoContext(ctx, "media upload success", "fileKey", fileKey, "type", contentType)
	return &dto.MediaUploadDTO{
		URL:      minio.GetPublicURL(fileKey),
		ThumbURL: thumbURL,
		MimeType: contentType,
	}, nil
}

// uploadThumbnail 等比缩放后以 JPEG 上传，对象名加 thumb/ 前缀
func (s *mediaServiceImpl) uploadThumbnail(ctx context.Context, reader io.ReadSeeker, objectName string) (string, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}

	thumb := imaging.Fit(img, thumbMaxSide, thumbMaxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return "", err
	}

	thumbName := "thumb/" + strings.TrimSuffix(objectName, path.Ext(objectName)) + ".jpg"
	return minio.UploadFile(ctx, thumbName, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "image/jpeg")
}
