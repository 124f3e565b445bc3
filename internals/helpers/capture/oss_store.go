// file: internals/helpers/capture/oss_store.go
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	helper "github.com/jesusbritomolina/EscombrosApp-sub000/internals/helpers"
)

// OSSStore implementa Store sobre Aliyun OSS. El id del comprobante es el
// object key; renombrar = CopyObject + DeleteObject (OSS no tiene rename).
type OSSStore struct {
	Client     *oss.Client
	Bucket     *oss.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // opcional: "uploads"
	Timeout    time.Duration
}

func NewOSSStoreFromEnv(prefix string) (*OSSStore, error) {
	endpoint := strings.TrimSpace(os.Getenv("ALI_OSS_ENDPOINT"))
	ak := strings.TrimSpace(os.Getenv("ALI_OSS_ACCESS_KEY"))
	sk := strings.TrimSpace(os.Getenv("ALI_OSS_SECRET_KEY"))
	bucketName := strings.TrimSpace(os.Getenv("ALI_OSS_BUCKET"))
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	client, err := oss.New(endpoint, ak, sk)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}
	log.Printf("[OSS] bucket %s listo", bucketName)

	return &OSSStore{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		Timeout:    10 * time.Second,
	}, nil
}

// Upload re-encodea a webp y sube bajo prefix/folder/name.webp.
func (s *OSSStore) Upload(ctx context.Context, content io.Reader, name, folder string) (UploadResult, error) {
	webpData, err := helper.ConvertToWebP(content, name)
	if err != nil {
		return UploadResult{}, err
	}

	key := s.objectKey(folder, name)
	ctx, cancel := s.bound(ctx)
	defer cancel()

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("image/webp"),
		oss.ContentDisposition("inline"),
		oss.CacheControl("public, max-age=31536000, immutable"),
	}
	if err := s.Bucket.PutObject(key, bytes.NewReader(webpData), opts...); err != nil {
		return UploadResult{}, classify(err)
	}
	return UploadResult{ID: key, URL: s.PublicURL(key)}, nil
}

func (s *OSSStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("empty key")
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.Bucket.DeleteObject(id, oss.WithContext(ctx)); err != nil {
		return classify(err)
	}
	return nil
}

// Rename copia al key nuevo y borra el viejo, manteniendo el mismo folder.
func (s *OSSStore) Rename(ctx context.Context, id, newName string) (UploadResult, error) {
	if id == "" {
		return UploadResult{}, fmt.Errorf("empty key")
	}
	dstKey := path.Join(path.Dir(id), newName+".webp")
	if dstKey == id {
		return UploadResult{ID: id, URL: s.PublicURL(id)}, nil
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if _, err := s.Bucket.CopyObject(id, dstKey, oss.WithContext(ctx)); err != nil {
		return UploadResult{}, classify(err)
	}
	if err := s.Bucket.DeleteObject(id, oss.WithContext(ctx)); err != nil {
		// el copy ya quedó; reportamos pero devolvemos el key nuevo
		log.Printf("[OSS] warn: viejo key %s no se pudo borrar tras rename: %v", id, err)
	}
	return UploadResult{ID: dstKey, URL: s.PublicURL(dstKey)}, nil
}

func (s *OSSStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	if base := strings.TrimSpace(os.Getenv("ALI_OSS_PUBLIC_BASE")); base != "" {
		return strings.TrimRight(base, "/") + "/" + key
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, key)
}

func (s *OSSStore) objectKey(folder, name string) string {
	parts := make([]string, 0, 3)
	if s.Prefix != "" {
		parts = append(parts, s.Prefix)
	}
	if folder = strings.Trim(folder, "/"); folder != "" {
		parts = append(parts, folder)
	}
	parts = append(parts, name+".webp")
	return path.Join(parts...)
}

func (s *OSSStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	t := s.Timeout
	if t <= 0 {
		t = 10 * time.Second
	}
	return context.WithTimeout(ctx, t)
}

// classify: todo lo que venga del lado remoto se trata como inestable y
// reintentable, salvo errores 4xx del servicio (config/permisos, no red).
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se oss.ServiceError
	if errors.As(err, &se) && se.StatusCode < 500 {
		return err
	}
	return fmt.Errorf("%w: %v", ErrServiceUnstable, err)
}
