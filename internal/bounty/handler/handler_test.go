package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/starbounty/bounty-service/internal/bounty/model"
	"github.com/starbounty/bounty-service/internal/github"
	"github.com/starbounty/bounty-service/internal/middleware"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Create(ctx context.Context, callerID string, req *model.CreateBountyRequest) (*model.BountyResponse, error) {
	args := m.Called(ctx, callerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BountyResponse), args.Error(1)
}

func (m *mockService) Get(ctx context.Context, id string) (*model.BountyResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BountyResponse), args.Error(1)
}

func (m *mockService) List(ctx context.Context) (*model.BountyListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BountyListResponse), args.Error(1)
}

func (m *mockService) Progress(ctx context.Context, id string) (*model.ProgressResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProgressResponse), args.Error(1)
}

func (m *mockService) FundEscrow(ctx context.Context, req *model.FundEscrowRequest) (*model.EscrowResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EscrowResponse), args.Error(1)
}

func (m *mockService) ReleaseEscrow(ctx context.Context, req *model.ReleaseEscrowRequest) (*model.EscrowResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EscrowResponse), args.Error(1)
}

func (m *mockService) ListForReconcile(ctx context.Context, limit int) ([]model.Bounty, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Bounty), args.Error(1)
}

func setupHandler(svc *mockService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc, zap.NewNop().Sugar())

	r := gin.New()
	r.POST("/bounties", middleware.Auth(), h.Create)
	r.GET("/bounties", h.List)
	r.GET("/bounties/:id", h.Get)
	r.POST("/bounties/:id/progress", h.Progress)
	r.POST("/escrow/fund", h.FundEscrow)
	r.POST("/escrow/release", h.ReleaseEscrow)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Create(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		r := setupHandler(new(mockService))

		w := doJSON(r, http.MethodPost, "/bounties", `{"title":"x"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, "user-1", mock.Anything).Return(nil, model.ErrMissingFields)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/bounties", `{"title":"x"}`, map[string]string{"X-User-ID": "user-1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
	})

	t.Run("duplicate issue", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, "user-1", mock.Anything).Return(nil, model.ErrBountyExists)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/bounties", `{"title":"x"}`, map[string]string{"X-User-ID": "user-1"})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "BOUNTY_EXISTS")
	})

	t.Run("created", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Create", mock.Anything, "user-1", mock.Anything).
			Return(&model.BountyResponse{Bounty: model.Bounty{ID: "b1", Status: model.StatusOpen}}, nil)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/bounties", `{"title":"x"}`, map[string]string{"X-User-ID": "user-1"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"b1"`)
	})
}

func TestHandler_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Get", mock.Anything, "missing").Return(nil, model.ErrBountyNotFound)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodGet, "/bounties/missing", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})
}

func TestHandler_Progress(t *testing.T) {
	t.Run("upstream status code propagates", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Progress", mock.Anything, "b1").
			Return(nil, &github.FetchError{StatusCode: http.StatusBadGateway, URL: "u"})
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/bounties/b1/progress", "", nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "UPSTREAM_ERROR")
	})

	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("Progress", mock.Anything, "b1").
			Return(&model.ProgressResponse{Status: model.StatusInProgress}, nil)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/bounties/b1/progress", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"IN_PROGRESS"`)
	})
}

func TestHandler_FundEscrow(t *testing.T) {
	t.Run("missing params", func(t *testing.T) {
		svc := new(mockService)
		svc.On("FundEscrow", mock.Anything, mock.Anything).Return(nil, model.ErrMissingFields)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/escrow/fund", `{}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"Missing params"}`, w.Body.String())
	})

	t.Run("unknown bounty", func(t *testing.T) {
		svc := new(mockService)
		svc.On("FundEscrow", mock.Anything, mock.Anything).Return(nil, model.ErrBountyNotFound)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/escrow/fund", `{"bounty_id":"x"}`, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"Bounty not found"}`, w.Body.String())
	})

	t.Run("already funded", func(t *testing.T) {
		svc := new(mockService)
		svc.On("FundEscrow", mock.Anything, mock.Anything).Return(nil, model.ErrEscrowAlreadyCreated)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/escrow/fund", `{"bounty_id":"x"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"Escrow already created"}`, w.Body.String())
	})

	t.Run("gateway rejection surfaces the gateway error", func(t *testing.T) {
		svc := new(mockService)
		svc.On("FundEscrow", mock.Anything, mock.Anything).
			Return(&model.EscrowResponse{OK: false, Error: "insufficient funds"}, model.ErrEscrowRejected)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/escrow/fund", `{"bounty_id":"x"}`, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"insufficient funds"}`, w.Body.String())
	})

	t.Run("rejection without a gateway response gets a fallback message", func(t *testing.T) {
		svc := new(mockService)
		svc.On("FundEscrow", mock.Anything, mock.Anything).Return(nil, model.ErrEscrowRejected)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/escrow/fund", `{"bounty_id":"x"}`, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"escrow transaction rejected"}`, w.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("FundEscrow", mock.Anything, mock.Anything).
			Return(&model.EscrowResponse{OK: true, TxHash: "0xhash", ContractID: "contract-7"}, nil)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/escrow/fund", `{"bounty_id":"x","amount":"1","beneficiary_wallet":"0xabc"}`, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"tx_hash":"0xhash","contract_id":"contract-7"}`, w.Body.String())
	})
}

func TestHandler_ReleaseEscrow(t *testing.T) {
	t.Run("missing bounty id", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ReleaseEscrow", mock.Anything, mock.Anything).Return(nil, model.ErrMissingFields)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/escrow/release", `{}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"Missing bountyId"}`, w.Body.String())
	})

	t.Run("no escrow for bounty", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ReleaseEscrow", mock.Anything, mock.Anything).Return(nil, model.ErrEscrowNotFound)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/escrow/release", `{"bounty_id":"x"}`, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"ok":false,"error":"Escrow not found for bounty"}`, w.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		svc := new(mockService)
		svc.On("ReleaseEscrow", mock.Anything, mock.Anything).
			Return(&model.EscrowResponse{OK: true, TxHash: "0xrelease"}, nil)
		r := setupHandler(svc)

		w := doJSON(r, http.MethodPost, "/escrow/release", `{"bounty_id":"x"}`, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"tx_hash":"0xrelease"}`, w.Body.String())
	})
}
