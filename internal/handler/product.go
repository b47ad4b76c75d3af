package handler

import (
	"net/http"
	"strconv"

	"flower-storefront/internal/dto"
	"flower-storefront/internal/model"
	"flower-storefront/internal/service"
	"flower-storefront/internal/store"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	productService service.ProductService
	messages       *store.MessageStore
}

func NewProductHandler(productService service.ProductService, messages *store.MessageStore) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		messages:       messages,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	res, err := h.productService.List(c.Request().Context(), page, c.QueryParam("category"))
	if err != nil {
		return failed(h.messages, err)
	}
	return c.JSON(http.StatusOK, dto.ProductListResponse{Products: res.Products, Pagination: res.Pagination})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	p, err := h.productService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return failed(h.messages, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) AdminListProducts(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	res, err := h.productService.AdminList(c.Request().Context(), page)
	if err != nil {
		return failed(h.messages, err)
	}
	return c.JSON(http.StatusOK, dto.ProductListResponse{Products: res.Products, Pagination: res.Pagination})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var p model.Product
	if err := c.Bind(&p); err != nil {
		return failed(h.messages, echo.NewHTTPError(http.StatusBadRequest, msgInvalidForm).SetInternal(err))
	}

	if err := h.productService.Create(c.Request().Context(), p); err != nil {
		return failed(h.messages, err)
	}
	h.messages.Push(true, "新增產品成功")
	return c.NoContent(http.StatusCreated)
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var p model.Product
	if err := c.Bind(&p); err != nil {
		return failed(h.messages, echo.NewHTTPError(http.StatusBadRequest, msgInvalidForm).SetInternal(err))
	}

	if err := h.productService.Update(c.Request().Context(), c.Param("id"), p); err != nil {
		return failed(h.messages, err)
	}
	h.messages.Push(true, "更新產品成功")
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	if err := h.productService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return failed(h.messages, err)
	}
	h.messages.Push(true, "刪除產品成功")
	return c.NoContent(http.StatusNoContent)
}

// UploadImage accepts a multipart "file-to-upload" and returns the hosted URL
// for the product form.
func (h *ProductHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("file-to-upload")
	if err != nil {
		return failed(h.messages, echo.NewHTTPError(http.StatusBadRequest, "請選擇要上傳的圖片").SetInternal(err))
	}
	src, err := fh.Open()
	if err != nil {
		return failed(h.messages, echo.NewHTTPError(http.StatusBadRequest, msgInvalidForm).SetInternal(err))
	}
	defer src.Close()

	url, err := h.productService.UploadImage(c.Request().Context(), service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        src,
	})
	if err != nil {
		return failed(h.messages, err)
	}
	h.messages.Push(true, "圖片上傳成功")
	return c.JSON(http.StatusCreated, dto.UploadImageResponse{ImageURL: url})
}
