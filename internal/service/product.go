package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"flower-storefront/internal/cache"
	"flower-storefront/internal/client"
	"flower-storefront/internal/model"

	"github.com/labstack/gommon/log"
)

const (
	msgFetchProductsFailed = "取得產品列表失敗"
	msgFetchProductFailed  = "取得產品失敗"
	msgCreateProductFailed = "新增產品失敗"
	msgUpdateProductFailed = "更新產品失敗"
	msgDeleteProductFailed = "刪除產品失敗"
	msgUploadImageFailed   = "上傳圖片失敗"
	msgImageTooLarge       = "圖片大小不能超過3MB"
	msgImageWrongType      = "圖片格式不正確，圖片只能上傳：jpg, jpeg, png 格式。"
)

// MaxImageBytes is the largest product image accepted for upload.
const MaxImageBytes = 3 << 20

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ProductService interface {
	List(ctx context.Context, page int, category string) (*client.ProductPage, error)
	Get(ctx context.Context, id string) (*model.Product, error)

	AdminList(ctx context.Context, page int) (*client.ProductPage, error)
	Create(ctx context.Context, p model.Product) error
	Update(ctx context.Context, id string, p model.Product) error
	Delete(ctx context.Context, id string) error
	UploadImage(ctx context.Context, img ImageUpload) (string, error)
}

type productServiceImpl struct {
	storeClient client.StoreClient
	tokens      TokenSource
	catalog     cache.CatalogCache
	logger      *log.Logger
}

func NewProductService(
	storeClient client.StoreClient,
	tokens TokenSource,
	catalog cache.CatalogCache,
	logger *log.Logger,
) ProductService {
	return &productServiceImpl{
		storeClient: storeClient,
		tokens:      tokens,
		catalog:     catalog,
		logger:      logger,
	}
}

func (s *productServiceImpl) List(ctx context.Context, page int, category string) (*client.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if cached, ok := s.catalog.Get(ctx, category, page); ok {
		return cached, nil
	}

	res, err := s.storeClient.ListProducts(ctx, page, category)
	if err != nil {
		s.logger.Warnf("list products page %d %q: %v", page, category, err)
		return nil, fail(err, msgFetchProductsFailed)
	}
	s.catalog.Set(ctx, category, page, res)
	return res, nil
}

func (s *productServiceImpl) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.storeClient.GetProduct(ctx, id)
	if err != nil {
		return nil, fail(err, msgFetchProductFailed)
	}
	return p, nil
}

func (s *productServiceImpl) AdminList(ctx context.Context, page int) (*client.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, fail(err, msgFetchProductsFailed)
	}
	res, err := s.storeClient.ListAdminProducts(ctx, token, page)
	if err != nil {
		return nil, fail(err, msgFetchProductsFailed)
	}
	return res, nil
}

func (s *productServiceImpl) Create(ctx context.Context, p model.Product) error {
	return s.mutate(ctx, msgCreateProductFailed, func(token string) error {
		return s.storeClient.CreateProduct(ctx, token, p)
	})
}

func (s *productServiceImpl) Update(ctx context.Context, id string, p model.Product) error {
	return s.mutate(ctx, msgUpdateProductFailed, func(token string) error {
		return s.storeClient.UpdateProduct(ctx, token, id, p)
	})
}

func (s *productServiceImpl) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, msgDeleteProductFailed, func(token string) error {
		return s.storeClient.DeleteProduct(ctx, token, id)
	})
}

// UploadImage checks size and type locally, then hands the file to the
// backend's image host and returns its URL.
func (s *productServiceImpl) UploadImage(ctx context.Context, img ImageUpload) (string, error) {
	if img.Size > MaxImageBytes {
		return "", &Failure{Message: msgImageTooLarge, Err: fmt.Errorf("%w: %s is %d bytes", ErrInvalidImage, img.Filename, img.Size)}
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return "", &Failure{Message: msgImageWrongType, Err: fmt.Errorf("%w: %s has type %q", ErrInvalidImage, img.Filename, img.ContentType)}
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return "", fail(err, msgUploadImageFailed)
	}
	url, err := s.storeClient.UploadImage(ctx, token, client.ImageFile{
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Body:        img.Body,
	})
	if err != nil {
		s.logger.Warnf("upload image %s: %v", img.Filename, err)
		return "", fail(err, msgUploadImageFailed)
	}
	return url, nil
}

// mutate runs an admin write and drops cached storefront pages after it
// succeeds.
func (s *productServiceImpl) mutate(ctx context.Context, fallback string, call func(token string) error) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return fail(err, fallback)
	}
	if err := call(token); err != nil {
		s.logger.Warnf("%s: %v", fallback, err)
		return fail(err, fallback)
	}
	s.catalog.Invalidate(ctx)
	return nil
}
