package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flower-storefront/internal/config"
	"flower-storefront/internal/model"
)

// StoreClient talks to the shop's REST backend. Admin calls take the session
// token explicitly.
type StoreClient interface {
	GetCart(ctx context.Context) (*model.Cart, error)
	AddToCart(ctx context.Context, productID string, qty int) error
	UpdateCartItem(ctx context.Context, lineID, productID string, qty int) error
	DeleteCartItem(ctx context.Context, lineID string) error
	ClearCart(ctx context.Context) error
	SubmitOrder(ctx context.Context, req *OrderRequest) (*SubmitOrderResult, error)

	ListProducts(ctx context.Context, page int, category string) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)

	SignIn(ctx context.Context, username, password string) (*SignInResult, error)
	ListOrders(ctx context.Context, token string, page int) (*OrderPage, error)
	DeleteOrder(ctx context.Context, token, id string) error
	UpdateOrder(ctx context.Context, token, id string, doc model.OrderUpdate) error
	ListAdminProducts(ctx context.Context, token string, page int) (*ProductPage, error)
	CreateProduct(ctx context.Context, token string, p model.Product) error
	UpdateProduct(ctx context.Context, token, id string, p model.Product) error
	DeleteProduct(ctx context.Context, token, id string) error
	UploadImage(ctx context.Context, token string, img ImageFile) (string, error)
}

type storeClientImpl struct {
	httpClient *http.Client
	baseURL    string
	apiPath    string
}

type CartLineRequest struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type OrderRequest struct {
	User          model.User `json:"user"`
	Message       string     `json:"message"`
	PaymentMethod string     `json:"payment_method"`
	IsPaid        bool       `json:"is_paid"`
}

type SubmitOrderResult struct {
	OrderID  string       `json:"orderId"`
	Total    model.Amount `json:"total"`
	CreateAt model.Unix   `json:"create_at"`
}

type OrderPage struct {
	Orders     []model.Order    `json:"orders"`
	Pagination model.Pagination `json:"pagination"`
}

type ProductPage struct {
	Products   []model.Product  `json:"products"`
	Pagination model.Pagination `json:"pagination"`
}

// ImageFile is one product image on its way to the backend's image host.
type ImageFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type SignInResult struct {
	UID     string
	Token   string
	Expired time.Time // zero when the backend did not say
}

type dataBody struct {
	Data any `json:"data"`
}

func NewStoreClient(backendCfg *config.Backend) StoreClient {
	return &storeClientImpl{
		httpClient: &http.Client{
			Timeout: backendCfg.Timeout,
		},
		baseURL: strings.TrimRight(backendCfg.APIBase, "/"),
		apiPath: strings.Trim(backendCfg.APIPath, "/"),
	}
}

func (c *storeClientImpl) apiURL(path string) string {
	return fmt.Sprintf("%s/api/%s%s", c.baseURL, c.apiPath, path)
}

func (c *storeClientImpl) GetCart(ctx context.Context) (*model.Cart, error) {
	var res struct {
		Data *model.Cart `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, c.apiURL("/cart"), "", nil, &res); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if res.Data == nil {
		cart := model.EmptyCart()
		return &cart, nil
	}
	return res.Data, nil
}

func (c *storeClientImpl) AddToCart(ctx context.Context, productID string, qty int) error {
	body := dataBody{Data: CartLineRequest{ProductID: productID, Qty: qty}}
	if err := c.do(ctx, http.MethodPost, c.apiURL("/cart"), "", body, nil); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

func (c *storeClientImpl) UpdateCartItem(ctx context.Context, lineID, productID string, qty int) error {
	body := dataBody{Data: CartLineRequest{ProductID: productID, Qty: qty}}
	if err := c.do(ctx, http.MethodPut, c.apiURL("/cart/"+url.PathEscape(lineID)), "", body, nil); err != nil {
		return fmt.Errorf("update cart item %s: %w", lineID, err)
	}
	return nil
}

func (c *storeClientImpl) DeleteCartItem(ctx context.Context, lineID string) error {
	if err := c.do(ctx, http.MethodDelete, c.apiURL("/cart/"+url.PathEscape(lineID)), "", nil, nil); err != nil {
		return fmt.Errorf("delete cart item %s: %w", lineID, err)
	}
	return nil
}

func (c *storeClientImpl) ClearCart(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, c.apiURL("/carts"), "", nil, nil); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (c *storeClientImpl) SubmitOrder(ctx context.Context, req *OrderRequest) (*SubmitOrderResult, error) {
	var res SubmitOrderResult
	if err := c.do(ctx, http.MethodPost, c.apiURL("/order"), "", dataBody{Data: req}, &res); err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	return &res, nil
}

func (c *storeClientImpl) ListProducts(ctx context.Context, page int, category string) (*ProductPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if category != "" {
		q.Set("category", category)
	}
	var res ProductPage
	if err := c.do(ctx, http.MethodGet, c.apiURL("/products?"+q.Encode()), "", nil, &res); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &res, nil
}

func (c *storeClientImpl) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var res struct {
		Product *model.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, c.apiURL("/product/"+url.PathEscape(id)), "", nil, &res); err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	if res.Product == nil {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "找不到產品"}
	}
	return res.Product, nil
}

func (c *storeClientImpl) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	body := map[string]string{"username": username, "password": password}
	var res struct {
		UID     string `json:"uid"`
		Token   string `json:"token"`
		Expired any    `json:"expired"`
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/admin/signin", "", body, &res); err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return &SignInResult{
		UID:     res.UID,
		Token:   res.Token,
		Expired: expiryTime(res.Expired),
	}, nil
}

func (c *storeClientImpl) ListOrders(ctx context.Context, token string, page int) (*OrderPage, error) {
	var res OrderPage
	if err := c.do(ctx, http.MethodGet, c.apiURL("/admin/orders?page="+strconv.Itoa(page)), token, nil, &res); err != nil {
		return nil, fmt.Errorf("list orders page %d: %w", page, err)
	}
	if res.Orders == nil {
		res.Orders = []model.Order{}
	}
	return &res, nil
}

func (c *storeClientImpl) DeleteOrder(ctx context.Context, token, id string) error {
	if err := c.do(ctx, http.MethodDelete, c.apiURL("/admin/order/"+url.PathEscape(id)), token, nil, nil); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

func (c *storeClientImpl) UpdateOrder(ctx context.Context, token, id string, doc model.OrderUpdate) error {
	if err := c.do(ctx, http.MethodPut, c.apiURL("/admin/order/"+url.PathEscape(id)), token, dataBody{Data: doc}, nil); err != nil {
		return fmt.Errorf("update order %s: %w", id, err)
	}
	return nil
}

func (c *storeClientImpl) ListAdminProducts(ctx context.Context, token string, page int) (*ProductPage, error) {
	var res ProductPage
	if err := c.do(ctx, http.MethodGet, c.apiURL("/admin/products?page="+strconv.Itoa(page)), token, nil, &res); err != nil {
		return nil, fmt.Errorf("list admin products page %d: %w", page, err)
	}
	return &res, nil
}

func (c *storeClientImpl) CreateProduct(ctx context.Context, token string, p model.Product) error {
	p.ID = ""
	if err := c.do(ctx, http.MethodPost, c.apiURL("/admin/product"), token, dataBody{Data: p.Normalize()}, nil); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (c *storeClientImpl) UpdateProduct(ctx context.Context, token, id string, p model.Product) error {
	if err := c.do(ctx, http.MethodPut, c.apiURL("/admin/product/"+url.PathEscape(id)), token, dataBody{Data: p.Normalize()}, nil); err != nil {
		return fmt.Errorf("update product %s: %w", id, err)
	}
	return nil
}

func (c *storeClientImpl) DeleteProduct(ctx context.Context, token, id string) error {
	if err := c.do(ctx, http.MethodDelete, c.apiURL("/admin/product/"+url.PathEscape(id)), token, nil, nil); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

// UploadImage posts img as multipart field "file-to-upload" and returns the
// hosted URL.
func (c *storeClientImpl) UploadImage(ctx context.Context, token string, img ImageFile) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file-to-upload"; filename="%s"`, quoteEscaper.Replace(img.Filename)))
	header.Set("Content-Type", img.ContentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("upload image: create part: %w", err)
	}
	if _, err := io.Copy(part, img.Body); err != nil {
		return "", fmt.Errorf("upload image: copy body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload image: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL("/admin/upload"), &buf)
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var res struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.send(req, token, &res); err != nil {
		return "", fmt.Errorf("upload image %s: %w", img.Filename, err)
	}
	if res.ImageURL == "" {
		return "", fmt.Errorf("upload image %s: response has no imageUrl", img.Filename)
	}
	return res.ImageURL, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// do sends one request and decodes the JSON response into out. Non-2xx
// statuses and bodies with "success": false become *APIError.
func (c *storeClientImpl) do(ctx context.Context, method, endpoint, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal req payload: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token, out)
}

// send attaches the token, runs req and decodes the response into out.
func (c *storeClientImpl) send(req *http.Request, token string, out any) error {
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	var env envelope
	_ = json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.text()}
	}
	if env.Success != nil && !*env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.text()}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// expiryTime reads the sign-in "expired" field, which is a millisecond or
// second epoch depending on the backend version.
func expiryTime(v any) time.Time {
	d, ok := model.Number(v)
	if !ok || d.IsZero() {
		return time.Time{}
	}
	n := d.IntPart()
	if n > 1e12 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}
