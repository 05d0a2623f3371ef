package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mdwaseel/batsdatacollection/internal/dto"
	"github.com/Mdwaseel/batsdatacollection/internal/model"
)

// ── ProductService stub ──────────────────────────────────────────────────────

type stubProductService struct {
	lastReq    dto.CreateProductRequest
	lastImages dto.ImageSet
	deleteHits map[uuid.UUID]int
}

func newStubProductService() *stubProductService {
	return &stubProductService{deleteHits: make(map[uuid.UUID]int)}
}

func (s *stubProductService) Create(_ context.Context, req dto.CreateProductRequest, images dto.ImageSet) (dto.CreateProductResponse, error) {
	s.lastReq = req
	s.lastImages = images
	return dto.CreateProductResponse{
		Product: model.Product{
			ID:           uuid.New(),
			ProductName:  req.ProductName,
			ProductType:  req.ProductType,
			RegularPrice: req.RegularPrice,
		},
	}, nil
}

func (s *stubProductService) ListAll(context.Context) (dto.ProductListResponse, error) {
	return dto.ProductListResponse{Data: []model.Product{}}, nil
}

func (s *stubProductService) Search(_ context.Context, q string) (dto.SearchResponse, error) {
	return dto.SearchResponse{Data: []model.Product{}}, nil
}

func (s *stubProductService) Delete(_ context.Context, id uuid.UUID) (dto.DeleteOutcome, error) {
	s.deleteHits[id]++
	if s.deleteHits[id] == 1 {
		return dto.DeleteOutcome{ConfirmRequired: true}, nil
	}
	return dto.DeleteOutcome{Deleted: true}, nil
}

func (s *stubProductService) Count(context.Context) (int64, error) { return 0, nil }

// ── Helpers ──────────────────────────────────────────────────────────────────

func newTestRouter(svc *stubProductService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewProductsHandler(svc)
	r.POST("/v1/products", h.Create)
	r.GET("/v1/products/search", h.Search)
	r.DELETE("/v1/products/:id", h.Delete)
	return r
}

func multipartBody(t *testing.T, productJSON any, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	raw, err := json.Marshal(productJSON)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("product", string(raw)))

	for field, data := range files {
		fw, err := w.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateProductMultipart(t *testing.T) {
	svc := newStubProductService()
	r := newTestRouter(svc)

	body, contentType := multipartBody(t, gin.H{
		"product_name":  "Reserve Bat",
		"product_type":  "simple",
		"regular_price": "4999.00",
	}, map[string][]byte{
		"main_image":     []byte("fake png"),
		"gallery_images": []byte("fake png 2"),
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.CreateProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Reserve Bat", resp.Product.ProductName)
	assert.True(t, resp.Product.RegularPrice.Equal(decimal.RequireFromString("4999.00")))

	require.NotNil(t, svc.lastImages.Main)
	assert.Equal(t, "main_image.png", svc.lastImages.Main.Filename)
	require.Len(t, svc.lastImages.Gallery, 1)
}

func TestCreateProductRejectsMissingName(t *testing.T) {
	r := newTestRouter(newStubProductService())

	body, contentType := multipartBody(t, gin.H{
		"product_type":  "simple",
		"regular_price": "100",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "ProductName")
}

func TestCreateProductRejectsZeroPrice(t *testing.T) {
	r := newTestRouter(newStubProductService())

	body, contentType := multipartBody(t, gin.H{
		"product_name":  "Freebie Bat",
		"product_type":  "simple",
		"regular_price": "0",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/products", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSearchRequiresQuery(t *testing.T) {
	r := newTestRouter(newStubProductService())

	req := httptest.NewRequest(http.MethodGet, "/v1/products/search", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTwoStepStatusCodes(t *testing.T) {
	r := newTestRouter(newStubProductService())
	id := uuid.NewString()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/products/"+id, nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `"confirm_required":true`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/products/"+id, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":true`)
}

func TestDeleteRejectsInvalidID(t *testing.T) {
	r := newTestRouter(newStubProductService())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/products/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
