package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chatia-cau/ofertas/model"
)

// DefaultFileType is used when a file request does not name one.
const DefaultFileType = "oferta"

const staticFileSize = 15000

// FileLocator resolves the metadata of a file attached to an offer.
type FileLocator interface {
	Locate(ctx context.Context, offerID, fileType string) (*model.FileInfo, error)
}

// OfferFilename is the name under which an offer document is published.
func OfferFilename(offerID string) string {
	return fmt.Sprintf("oferta_%s.md", offerID)
}

// StaticFileLocator reports every offer file as present with a fixed size.
type StaticFileLocator struct {
	now func() time.Time
}

func NewStaticFileLocator() *StaticFileLocator {
	return &StaticFileLocator{now: time.Now}
}

func (l *StaticFileLocator) Locate(_ context.Context, offerID, fileType string) (*model.FileInfo, error) {
	return &model.FileInfo{
		Filename:          OfferFilename(offerID),
		FileType:          fileType,
		Exists:            true,
		SizeEstimate:      staticFileSize,
		DownloadAvailable: true,
		LastModified:      l.now().Format(time.RFC3339),
	}, nil
}

// MinioFileLocator looks offer files up in a MinIO bucket under
// <file_type>/oferta_<offer_id>.md.
type MinioFileLocator struct {
	minio *MinioService
}

func NewMinioFileLocator(svc *MinioService) *MinioFileLocator {
	return &MinioFileLocator{minio: svc}
}

func (l *MinioFileLocator) Locate(ctx context.Context, offerID, fileType string) (*model.FileInfo, error) {
	filename := OfferFilename(offerID)
	objectName := fileType + "/" + filename

	info := &model.FileInfo{
		Filename: filename,
		FileType: fileType,
	}

	stat, err := l.minio.StatFile(ctx, objectName)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		return info, nil
	}

	url, err := l.minio.GetPresignedURL(ctx, objectName)
	if err != nil {
		return nil, err
	}

	info.Exists = true
	info.SizeEstimate = stat.Size
	info.DownloadAvailable = true
	info.DownloadURL = url
	info.LastModified = stat.LastModified.Format(time.RFC3339)
	return info, nil
}
