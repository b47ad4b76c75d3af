package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"flower-storefront/internal/model"
)

const (
	testAPIPath = "flowers"
	testToken   = "admin-token"
)

type fakeLine struct {
	id        string
	productID string
	qty       int
	unit      int64
}

// fakeBackend is a small in-memory stand-in for the shop API.
type fakeBackend struct {
	mu       sync.Mutex
	lines    []*fakeLine
	nextLine int
	products map[string]model.Product
	orders   []model.Order

	cartPuts    []int
	lastOrder   map[string]any
	lastUpdate  map[string]any
	deleteCalls int
	uploads     []string

	holdCart bool
	entered  chan struct{}
	release  chan struct{}
}

func newFakeBackend(t testing.TB) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{
		products: map[string]model.Product{},
	}
	srv := httptest.NewServer(b.routes())
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *fakeBackend) routes() http.Handler {
	p := "/api/" + testAPIPath
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+p+"/cart", b.getCart)
	mux.HandleFunc("POST "+p+"/cart", b.addCart)
	mux.HandleFunc("PUT "+p+"/cart/{id}", b.putCart)
	mux.HandleFunc("DELETE "+p+"/cart/{id}", b.deleteCart)
	mux.HandleFunc("DELETE "+p+"/carts", b.clearCart)
	mux.HandleFunc("POST "+p+"/order", b.submitOrder)
	mux.HandleFunc("GET "+p+"/products", b.listProducts)
	mux.HandleFunc("GET "+p+"/product/{id}", b.getProduct)
	mux.HandleFunc("POST /admin/signin", b.signIn)
	mux.HandleFunc("POST "+p+"/admin/upload", b.admin(b.uploadImage))
	mux.HandleFunc("GET "+p+"/admin/orders", b.admin(b.listOrders))
	mux.HandleFunc("PUT "+p+"/admin/order/{id}", b.admin(b.updateOrder))
	mux.HandleFunc("DELETE "+p+"/admin/order/{id}", b.admin(b.deleteOrder))
	mux.HandleFunc("GET "+p+"/admin/products", b.admin(b.listProducts))
	mux.HandleFunc("POST "+p+"/admin/product", b.admin(b.createProduct))
	return mux
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func reject(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "message": message})
}

func (b *fakeBackend) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != testToken {
			reject(w, http.StatusUnauthorized, "驗證錯誤, 請重新登入")
			return
		}
		next(w, r)
	}
}

// putLine seeds a cart line with a unit price.
func (b *fakeBackend) putLine(id, productID string, qty int, unit int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, &fakeLine{id: id, productID: productID, qty: qty, unit: unit})
}

func (b *fakeBackend) lineQty(id string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.lines {
		if l.id == id {
			return l.qty
		}
	}
	return 0
}

// holdNextCartFetch makes the next GET /cart compute its answer and then
// wait until releaseCart is called. The returned channel closes once that
// fetch has arrived.
func (b *fakeBackend) holdNextCartFetch() <-chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.holdCart = true
	b.entered = make(chan struct{})
	b.release = make(chan struct{})
	return b.entered
}

func (b *fakeBackend) releaseCart() {
	close(b.release)
}

func (b *fakeBackend) cartBody() map[string]any {
	carts := make([]map[string]any, 0, len(b.lines))
	var sum int64
	for _, l := range b.lines {
		total := l.unit * int64(l.qty)
		sum += total
		carts = append(carts, map[string]any{
			"id":          l.id,
			"product_id":  l.productID,
			"qty":         l.qty,
			"total":       total,
			"final_total": total,
			"product":     map[string]any{"id": l.productID, "title": "product " + l.productID, "price": l.unit},
		})
	}
	return map[string]any{
		"success": true,
		"data":    map[string]any{"carts": carts, "total": sum, "final_total": sum},
	}
}

func (b *fakeBackend) getCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	body := b.cartBody()
	hold, entered, release := b.holdCart, b.entered, b.release
	b.holdCart = false
	b.mu.Unlock()

	if hold {
		close(entered)
		<-release
	}
	writeJSON(w, http.StatusOK, body)
}

type cartPayload struct {
	Data struct {
		ProductID string `json:"product_id"`
		Qty       int    `json:"qty"`
	} `json:"data"`
}

func (b *fakeBackend) addCart(w http.ResponseWriter, r *http.Request) {
	var req cartPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reject(w, http.StatusBadRequest, "格式錯誤")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.products[req.Data.ProductID]
	if !ok {
		reject(w, http.StatusBadRequest, "找不到產品")
		return
	}
	for _, l := range b.lines {
		if l.productID == req.Data.ProductID {
			l.qty += req.Data.Qty
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "已加入購物車"})
			return
		}
	}
	b.nextLine++
	b.lines = append(b.lines, &fakeLine{
		id:        "line" + strconv.Itoa(b.nextLine),
		productID: p.ID,
		qty:       req.Data.Qty,
		unit:      p.Price.IntPart(),
	})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "已加入購物車"})
}

func (b *fakeBackend) putCart(w http.ResponseWriter, r *http.Request) {
	var req cartPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reject(w, http.StatusBadRequest, "格式錯誤")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cartPuts = append(b.cartPuts, req.Data.Qty)
	for _, l := range b.lines {
		if l.id == r.PathValue("id") {
			l.qty = req.Data.Qty
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "已更新購物車"})
			return
		}
	}
	reject(w, http.StatusNotFound, "找不到購物車項目")
}

func (b *fakeBackend) deleteCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.lines {
		if l.id == r.PathValue("id") {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
	}
	reject(w, http.StatusNotFound, "找不到購物車項目")
}

func (b *fakeBackend) clearCart(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *fakeBackend) submitOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data map[string]any `json:"data"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.lines) == 0 {
		reject(w, http.StatusBadRequest, "購物車內無資料")
		return
	}
	var total int64
	for _, l := range b.lines {
		total += l.unit * int64(l.qty)
	}
	b.lastOrder = req.Data
	b.lines = nil
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "已建立訂單",
		"total":     total,
		"create_at": 1700000000,
		"orderId":   "order-1",
	})
}

func (b *fakeBackend) addProduct(p model.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products[p.ID] = p
}

func (b *fakeBackend) listProducts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	category := r.URL.Query().Get("category")
	ids := make([]string, 0, len(b.products))
	for id := range b.products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	products := []model.Product{}
	for _, id := range ids {
		if category == "" || b.products[id].Category == category {
			products = append(products, b.products[id])
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"products":   products,
		"pagination": model.Pagination{TotalPages: 1, CurrentPage: 1, Category: category},
	})
}

func (b *fakeBackend) getProduct(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.products[r.PathValue("id")]
	if !ok {
		reject(w, http.StatusNotFound, "找不到產品")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "product": p})
}

func (b *fakeBackend) createProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data model.Product `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data.Title == "" {
		reject(w, http.StatusBadRequest, "標題為必填")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	req.Data.ID = fmt.Sprintf("p%d", len(b.products)+1)
	b.products[req.Data.ID] = req.Data
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "已建立產品"})
}

func (b *fakeBackend) uploadImage(w http.ResponseWriter, r *http.Request) {
	file, fh, err := r.FormFile("file-to-upload")
	if err != nil {
		reject(w, http.StatusBadRequest, "請選擇檔案")
		return
	}
	defer file.Close()
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		reject(w, http.StatusBadRequest, "檔案格式錯誤")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads = append(b.uploads, fh.Filename)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"imageUrl": "https://img.example/" + fh.Filename,
	})
}

func (b *fakeBackend) signIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Password != "secret" {
		reject(w, http.StatusBadRequest, "登入失敗")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"uid":     "uid-1",
		"token":   testToken,
		"expired": 4102444800000,
	})
}

// putOrder seeds an order on the current page.
func (b *fakeBackend) putOrder(raw string) {
	var o model.Order
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		panic(err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.orders = append(b.orders, o)
}

func (b *fakeBackend) orderIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, 0, len(b.orders))
	for _, o := range b.orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func (b *fakeBackend) listOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"orders":     b.orders,
		"pagination": model.Pagination{TotalPages: 1, CurrentPage: page},
	})
}

func (b *fakeBackend) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reject(w, http.StatusBadRequest, "格式錯誤")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastUpdate = req.Data
	for i, o := range b.orders {
		if o.ID == r.PathValue("id") {
			paid, _ := req.Data["is_paid"].(bool)
			b.orders[i].IsPaid = model.PaidFrom(paid)
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "已更新訂單"})
			return
		}
	}
	reject(w, http.StatusNotFound, "找不到訂單")
}

func (b *fakeBackend) deleteOrder(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleteCalls++
	for i, o := range b.orders {
		if o.ID != r.PathValue("id") {
			continue
		}
		if o.Paid() {
			reject(w, http.StatusBadRequest, "cannot delete paid order")
			return
		}
		b.orders = append(b.orders[:i], b.orders[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "已刪除"})
		return
	}
	reject(w, http.StatusNotFound, "找不到訂單")
}
