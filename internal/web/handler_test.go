package web

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/xenking/budogu-admin/internal/catalog"
	"github.com/xenking/budogu-admin/internal/dashboard"
	"github.com/xenking/budogu-admin/internal/domain/product"
	"github.com/xenking/budogu-admin/internal/handler"
	"github.com/xenking/budogu-admin/internal/storage/memory"
)

// --- Mock catalog ---

type mockCatalog struct {
	mu        sync.Mutex
	products  []product.Product
	listErrs  []error // consumed one per list call
	createErr error
	lists     int
	deletes   []int64
	creates   []product.Input
}

func (m *mockCatalog) ListProducts(context.Context) ([]product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	if len(m.listErrs) > 0 {
		err := m.listErrs[0]
		m.listErrs = m.listErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return append([]product.Product(nil), m.products...), nil
}

func (m *mockCatalog) setProducts(products ...product.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
}

func (m *mockCatalog) listCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lists
}

func (m *mockCatalog) CreateProduct(_ context.Context, in product.Input) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates = append(m.creates, in)
	return nil, m.createErr
}

func (m *mockCatalog) UpdateProduct(context.Context, int64, product.Input) error {
	return nil
}

func (m *mockCatalog) DeleteProduct(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, id)
	return nil
}

// --- Helpers ---

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newBrowser(t *testing.T, h http.Handler) *browser {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{
		t:    t,
		base: srv.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) get(path string) (int, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp.StatusCode, string(body)
}

func (b *browser) post(path string, form url.Values) *http.Response {
	b.t.Helper()
	resp, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	_ = resp.Body.Close()
	return resp
}

func newDashboard(t *testing.T, cat dashboard.Catalog) *browser {
	t.Helper()
	mux := http.NewServeMux()
	NewHandler(cat, Config{}).Register(mux)
	return newBrowser(t, mux)
}

func draftForm() url.Values {
	return url.Values{
		"name_en":        {"Gloves A"},
		"name_jp":        {"グローブA"},
		"name_cn":        {"手套A"},
		"category":       {"gloves"},
		"brand":          {"X"},
		"price":          {"5000"},
		"image":          {"http://i/1.png"},
		"description_en": {"en"},
		"description_jp": {"jp"},
		"description_cn": {"cn"},
	}
}

// --- Tests ---

func TestDashboard_EmptyList(t *testing.T) {
	b := newDashboard(t, &mockCatalog{})

	code, body := b.get("/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "商品がありません")
	assert.Contains(t, body, "Copyright © 2025")
}

func TestDashboard_Language(t *testing.T) {
	b := newDashboard(t, &mockCatalog{})

	_, body := b.get("/?lang=en")
	assert.Contains(t, body, "No products")

	// The choice sticks through the cookie.
	_, body = b.get("/")
	assert.Contains(t, body, `<html lang="en">`)
}

func TestDashboard_ReloadRefetches(t *testing.T) {
	cat := &mockCatalog{products: []product.Product{{ID: 1, NameJP: "グローブA", Price: 5000}}}
	b := newDashboard(t, cat)

	_, body := b.get("/")
	assert.Contains(t, body, "グローブA")

	cat.setProducts(
		product.Product{ID: 1, NameJP: "グローブA", Price: 5000},
		product.Product{ID: 2, NameJP: "ミットB", Price: 7000},
	)
	_, body = b.get("/")
	assert.Contains(t, body, "ミットB")
	assert.Equal(t, 2, cat.listCalls())
}

func TestDashboard_ReloadRetriesFailedFetch(t *testing.T) {
	cat := &mockCatalog{
		products: []product.Product{{ID: 1, NameJP: "グローブA", Price: 5000}},
		listErrs: []error{errors.New("connection refused")},
	}
	b := newDashboard(t, cat)

	_, body := b.get("/")
	assert.Contains(t, body, "商品がありません")

	_, body = b.get("/")
	assert.Contains(t, body, "グローブA")
	assert.NotContains(t, body, "商品がありません")
	assert.Equal(t, 2, cat.listCalls())
}

func TestDashboard_RedirectAfterMutationSkipsFetch(t *testing.T) {
	cat := &mockCatalog{}
	b := newDashboard(t, cat)
	b.get("/")
	require.Equal(t, 1, cat.listCalls())

	b.post("/form/new", nil)
	b.get("/")
	assert.Equal(t, 1, cat.listCalls())

	// Submit re-fetches once itself; its redirect reuses that list.
	b.post("/form/submit", draftForm())
	require.Equal(t, 2, cat.listCalls())
	b.get("/")
	assert.Equal(t, 2, cat.listCalls())

	// A later plain reload fetches again.
	b.get("/")
	assert.Equal(t, 3, cat.listCalls())
}

func TestDashboard_RedirectAfterFailedFetchRetries(t *testing.T) {
	cat := &mockCatalog{listErrs: []error{errors.New("connection refused")}}
	b := newDashboard(t, cat)
	b.get("/")

	b.post("/form/new", nil)
	b.get("/")
	assert.Equal(t, 2, cat.listCalls())
}

func TestDashboard_FormLifecycle(t *testing.T) {
	cat := &mockCatalog{}
	b := newDashboard(t, cat)
	b.get("/")

	resp := b.post("/form/new", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	_, body := b.get("/")
	assert.Contains(t, body, "product-form")

	b.post("/form/field", url.Values{"field": {"brand"}, "value": {"Y"}})
	_, body = b.get("/")
	assert.Contains(t, body, `name="brand" value="Y"`)

	b.post("/form/cancel", nil)
	_, body = b.get("/")
	assert.NotContains(t, body, "product-form")
	assert.Empty(t, cat.creates)
}

func TestDashboard_FieldErrors(t *testing.T) {
	b := newDashboard(t, &mockCatalog{})

	resp := b.post("/form/field", url.Values{"field": {"brand"}, "value": {"Y"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	b.post("/form/new", nil)
	resp = b.post("/form/field", url.Values{"field": {"colour"}, "value": {"red"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboard_SubmitFailureKeepsForm(t *testing.T) {
	cat := &mockCatalog{createErr: errors.New("500 Internal Server Error")}
	b := newDashboard(t, cat)

	b.post("/form/new", nil)
	resp := b.post("/form/submit", draftForm())
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Len(t, cat.creates, 1)

	_, body := b.get("/")
	assert.Contains(t, body, "product-form")
	assert.Contains(t, body, `name="name_jp" value="グローブA"`)
	assert.Contains(t, body, "商品がありません")
}

func TestDashboard_EditUnknownProduct(t *testing.T) {
	b := newDashboard(t, &mockCatalog{})
	b.get("/")

	assert.Equal(t, http.StatusNotFound, b.post("/form/edit/9", nil).StatusCode)
	assert.Equal(t, http.StatusBadRequest, b.post("/form/edit/x", nil).StatusCode)
}

func TestDashboard_DeleteRequiresConfirmation(t *testing.T) {
	cat := &mockCatalog{products: []product.Product{{ID: 1, NameJP: "グローブA", Price: 5000}}}
	b := newDashboard(t, cat)
	b.get("/")

	code, body := b.get("/products/1/delete")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "本当に削除しますか？")
	assert.Empty(t, cat.deletes)

	b.post("/products/1/delete", url.Values{"confirm": {"no"}})
	b.post("/products/1/delete", nil)
	assert.Empty(t, cat.deletes)

	resp := b.post("/products/1/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, []int64{1}, cat.deletes)
}

func TestDashboard_SessionsAreIsolated(t *testing.T) {
	mux := http.NewServeMux()
	NewHandler(&mockCatalog{}, Config{}).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	newBrowserAt(t, srv.URL).post("/form/new", nil)

	_, body := newBrowserAt(t, srv.URL).get("/")
	assert.NotContains(t, body, "product-form")
}

func newBrowserAt(t *testing.T, base string) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, base: base, client: &http.Client{Jar: jar}}
}

func TestSessions_Evict(t *testing.T) {
	ss := newSessions(&mockCatalog{}, time.Minute, 0, false)
	ss.get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, 1, ss.len())

	assert.Equal(t, 0, ss.evict(time.Now()))
	assert.Equal(t, 1, ss.evict(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, ss.len())
}

func TestSessions_LimitDropsLeastRecentlySeen(t *testing.T) {
	ss := newSessions(&mockCatalog{}, time.Hour, 2, false)
	first := ss.get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	second := ss.get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	first.touch(time.Now().Add(time.Minute))

	third := ss.get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 2, ss.len())
	assert.Contains(t, ss.byID, first.id)
	assert.NotContains(t, ss.byID, second.id)
	assert.Contains(t, ss.byID, third.id)
}

func TestSession_FreshMark(t *testing.T) {
	s := &session{}
	now := time.Now()
	assert.False(t, s.takeFresh(now))

	s.markFresh(now)
	assert.True(t, s.takeFresh(now.Add(time.Second)))
	assert.False(t, s.takeFresh(now.Add(time.Second)), "mark is consumed")

	s.markFresh(now)
	assert.False(t, s.takeFresh(now.Add(freshWindow)), "mark expires")
}

func TestSessions_ReuseCookie(t *testing.T) {
	ss := newSessions(&mockCatalog{}, time.Minute, 0, true)

	w := httptest.NewRecorder()
	s := ss.get(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	assert.Same(t, s, ss.get(w, r))
	assert.Empty(t, w.Result().Cookies())
}

// TestDashboard_EndToEnd drives the dashboard against the real catalog API
// backed by the in-memory store.
func TestDashboard_EndToEnd(t *testing.T) {
	api, err := handler.NewHandler(memory.NewProductRepository(), nil, noop.NewMeterProvider())
	require.NoError(t, err)
	apiMux := http.NewServeMux()
	api.Register(apiMux)
	apiSrv := httptest.NewServer(apiMux)
	t.Cleanup(apiSrv.Close)

	client := catalog.New(catalog.Config{BaseURL: apiSrv.URL}, tracenoop.NewTracerProvider())
	b := newDashboard(t, client)

	_, body := b.get("/")
	assert.Contains(t, body, "商品がありません")

	b.post("/form/new", nil)
	b.post("/form/submit", draftForm())
	_, body = b.get("/")
	assert.NotContains(t, body, "product-form")
	assert.Contains(t, body, `<td class="price">¥5,000</td>`)

	b.post("/form/edit/1", nil)
	form := draftForm()
	form.Set("price", "12000")
	b.post("/form/submit", form)
	_, body = b.get("/")
	assert.Contains(t, body, `<td class="price">¥12,000</td>`)

	b.post("/products/1/delete", url.Values{"confirm": {"yes"}})
	_, body = b.get("/")
	assert.Contains(t, body, "商品がありません")
	assert.NotContains(t, body, "グローブA")
}
