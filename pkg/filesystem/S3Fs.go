package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"emperror.dev/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Fs struct {
	s3       *minio.Client
	endpoint string
}

func NewS3Fs(Endpoint string,
	AccessKeyId string,
	SecretAccessKey string,
	UseSSL bool) (*S3Fs, error) {
	// connect to S3 / Minio
	s3, err := minio.New(Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(AccessKeyId, SecretAccessKey, ""),
		Secure: UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to s3 instance")
	}
	return &S3Fs{s3: s3, endpoint: Endpoint}, nil
}

func (fs *S3Fs) Protocol() string {
	return fmt.Sprintf("s3://%s", fs.endpoint)
}

func (fs *S3Fs) String() string {
	return fs.s3.EndpointURL().String()
}

func (fs *S3Fs) FileExists(folder, name string) (bool, error) {
	_, err := fs.s3.StatObject(context.Background(), folder, name, minio.StatObjectOptions{})
	if err != nil {
		s3Err, ok := err.(minio.ErrorResponse)
		if ok {
			if s3Err.StatusCode == http.StatusNotFound {
				return false, nil
			}
		}
		return false, errors.Wrapf(err, "cannot get file info for %v/%v", folder, name)
	}
	return true, nil
}

func (fs *S3Fs) FolderCreate(folder string, opts FolderCreateOptions) error {
	found, err := fs.s3.BucketExists(context.Background(), folder)
	if err != nil {
		return errors.Wrapf(err, "cannot check for bucket %v", folder)
	}
	if found {
		return nil
	}
	if err := fs.s3.MakeBucket(context.Background(), folder, minio.MakeBucketOptions{ObjectLocking: opts.ObjectLocking}); err != nil {
		return errors.Wrapf(err, "cannot create bucket %s", folder)
	}
	return nil
}

func (fs *S3Fs) FileGet(folder, name string, opts FileGetOptions) ([]byte, error) {
	object, err := fs.s3.GetObject(context.Background(), folder, name, minio.GetObjectOptions{VersionID: opts.VersionID})
	if err != nil {
		s3Err, ok := err.(minio.ErrorResponse)
		if ok {
			if s3Err.StatusCode == http.StatusNotFound {
				return nil, &NotFoundError{err: s3Err}
			}
		}
		return nil, errors.Wrapf(err, "cannot get file info for %v/%v", folder, name)
	}

	var b = &bytes.Buffer{}
	if _, err := io.Copy(b, object); err != nil {
		return nil, errors.Wrapf(err, "cannot copy data from %v/%v", folder, name)
	}
	return b.Bytes(), nil
}

func (fs *S3Fs) FilePut(folder, name string, data []byte, opts FilePutOptions) error {
	if _, err := fs.s3.PutObject(
		context.Background(),
		folder,
		name,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: opts.ContentType, Progress: opts.Progress},
	); err != nil {
		return errors.Wrapf(err, "cannot put %v/%v", folder, name)
	}
	return nil
}
