package api

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/auth"
	"github.com/lalith-99/lawdesk/internal/middleware"
	"github.com/lalith-99/lawdesk/internal/models"
)

const testSecret = "api-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	clients     *fakeClients
	matters     *fakeMatters
	invoices    *fakeInvoices
	timeEntries *fakeTimeEntries
	reports     *fakeReports
	auth        *fakeAuth
	pinger      fakePinger
	limiter     middleware.Limiter
	logs        *observer.ObservedLogs
}

func newTestEnv() *testEnv {
	return &testEnv{
		clients:     &fakeClients{},
		matters:     &fakeMatters{},
		invoices:    &fakeInvoices{},
		timeEntries: &fakeTimeEntries{},
		reports:     &fakeReports{},
		auth:        &fakeAuth{},
		limiter:     middleware.NewMemoryLimiter(100),
	}
}

func (e *testEnv) router() *gin.Engine {
	core, logs := observer.New(zapcore.InfoLevel)
	e.logs = logs
	logger := zap.New(core)

	h := Handlers{
		Health:         NewHealthHandler(e.pinger, "test", logger),
		Auth:           NewAuthHandler(e.auth, logger),
		Users:          NewUserHandler(nil, logger),
		Clients:        NewClientHandler(e.clients, e.matters, logger),
		Matters:        NewMatterHandler(e.matters, e.timeEntries, nil, nil, nil, logger),
		Invoices:       NewInvoiceHandler(e.invoices, logger),
		TimeEntries:    NewTimeEntryHandler(e.timeEntries, logger),
		Tasks:          NewTaskHandler(nil, logger),
		Documents:      NewDocumentHandler(nil, logger),
		Communications: NewCommunicationHandler(nil, logger),
		Calendar:       NewCalendarHandler(nil, logger),
		Conflicts:      NewConflictHandler(nil, logger),
		Reports:        NewReportHandler(e.reports, logger),
		Activities:     NewActivityHandler(nil, logger),
	}
	return NewRouter(RouterConfig{
		JWTSecret:      testSecret,
		AllowedOrigin:  "http://localhost:3000",
		RequestTimeout: 5 * time.Second,
		AuthLimiter:    e.limiter,
	}, h, logger)
}

var caller = models.User{ID: 7, Email: "jane@firm.test", Role: models.RoleAttorney}

func bearer(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(&caller, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

type response struct {
	Success    bool                `json:"success"`
	Data       json.RawMessage     `json:"data"`
	Message    string              `json:"message"`
	Pagination *models.Pagination  `json:"pagination"`
	Errors     []apperr.FieldError `json:"errors"`
}

func do(t *testing.T, r http.Handler, method, path, body string, authed bool) (*httptest.ResponseRecorder, response) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", bearer(t))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res response
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	}
	return w, res
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		status  string
		success bool
	}{
		{"db up", nil, http.StatusOK, "ok", true},
		{"db down", errDown, http.StatusServiceUnavailable, "unavailable", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.pinger = fakePinger{err: tt.err}

			w, _ := do(t, env.router(), http.MethodGet, "/api/health", "", false)
			require.Equal(t, tt.code, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body["status"])
			assert.Equal(t, tt.success, body["success"])
			assert.Equal(t, "test", body["version"])
			assert.NotEmpty(t, body["timestamp"])
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEnv().router()
	for _, path := range []string{"/api/clients", "/api/auth/me", "/api/reports/aging", "/api/users"} {
		w, res := do(t, r, http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.False(t, res.Success)
	}
}

func TestClientList_Pagination(t *testing.T) {
	env := newTestEnv()
	env.clients.ListFunc = func(_ context.Context, f models.ClientFilter, p models.Page) (models.List[models.Client], error) {
		require.NotNil(t, f.Status)
		assert.Equal(t, "active", *f.Status)
		assert.Nil(t, f.Search)
		assert.Equal(t, models.Page{Page: 2, Limit: 1}, p)
		return models.List[models.Client]{
			Items:      []models.Client{{ID: 2, FirstName: "Ann", LastName: "Lee"}},
			Pagination: models.NewPagination(p, 3),
		}, nil
	}

	w, res := do(t, env.router(), http.MethodGet, "/api/clients?status=active&page=2&limit=1", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, res.Success)
	require.NotNil(t, res.Pagination)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 1, TotalCount: 3, TotalPages: 3}, *res.Pagination)

	var items []models.Client
	require.NoError(t, json.Unmarshal(res.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Ann", items[0].FirstName)
}

func TestListQueryValidation(t *testing.T) {
	r := newTestEnv().router()

	tests := []struct {
		query string
		field string
		msg   string
	}{
		{"page=0", "page", "Page must be a positive integer"},
		{"page=abc", "page", "Page must be a positive integer"},
		{"limit=0", "limit", "Limit must be between 1 and 100"},
		{"limit=101", "limit", "Limit must be between 1 and 100"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w, res := do(t, r, http.MethodGet, "/api/clients?"+tt.query, "", true)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Validation failed", res.Message)
			assert.Equal(t, []apperr.FieldError{{Field: tt.field, Message: tt.msg}}, res.Errors)
		})
	}
}

func TestClientCreate(t *testing.T) {
	env := newTestEnv()
	env.clients.CreateFunc = func(_ context.Context, actor models.Actor, in models.ClientInput) (*models.Client, error) {
		assert.Equal(t, caller.ID, actor.ID)
		return &models.Client{ID: 1, FirstName: in.FirstName, LastName: in.LastName, ClientType: "individual", Status: "active"}, nil
	}
	r := env.router()

	t.Run("created", func(t *testing.T) {
		w, res := do(t, r, http.MethodPost, "/api/clients", `{"first_name":"John","last_name":"Smith"}`, true)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Client created successfully", res.Message)

		var c models.Client
		require.NoError(t, json.Unmarshal(res.Data, &c))
		assert.Equal(t, "John", c.FirstName)
	})

	t.Run("missing names", func(t *testing.T) {
		w, res := do(t, r, http.MethodPost, "/api/clients", `{"email":"john@example.com"}`, true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation failed", res.Message)
		assert.ElementsMatch(t, []apperr.FieldError{
			{Field: "first_name", Message: "First name is required"},
			{Field: "last_name", Message: "Last name is required"},
		}, res.Errors)
	})

	t.Run("bad enum", func(t *testing.T) {
		w, res := do(t, r, http.MethodPost, "/api/clients", `{"first_name":"J","last_name":"S","client_type":"alien"}`, true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []apperr.FieldError{
			{Field: "client_type", Message: "Client type must be one of: individual, corporate"},
		}, res.Errors)
	})

	t.Run("malformed", func(t *testing.T) {
		w, res := do(t, r, http.MethodPost, "/api/clients", `{"first_name":`, true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Malformed JSON body", res.Message)
	})
}

func TestClientUpdate_UnknownFieldRejected(t *testing.T) {
	env := newTestEnv()
	env.clients.UpdateFunc = func(context.Context, models.Actor, int64, models.ClientUpdate) (*models.Client, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}

	w, res := do(t, env.router(), http.MethodPut, "/api/clients/4", `{"created_by":99}`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", res.Message)
	assert.Equal(t, []apperr.FieldError{{Field: "created_by", Message: "Unknown field"}}, res.Errors)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"not found", apperr.NotFound("Client"), http.StatusNotFound, "Client not found"},
		{"bare not found", apperr.ErrNotFound, http.StatusNotFound, "Resource not found"},
		{"conflict", apperr.AlreadyExists("Client with this email already exists"), http.StatusConflict, "Client with this email already exists"},
		{"bad reference", apperr.ErrInvalidReference, http.StatusBadRequest, "Referenced resource does not exist"},
		{"state", apperr.InvalidState("Cannot delete client with existing matters"), http.StatusBadRequest, "Cannot delete client with existing matters"},
		{"forbidden", apperr.Forbidden("Nope"), http.StatusForbidden, "Nope"},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, "Request timed out"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.clients.GetFunc = func(context.Context, int64) (*models.Client, error) { return nil, tt.err }

			w, res := do(t, env.router(), http.MethodGet, "/api/clients/9", "", true)
			assert.Equal(t, tt.code, w.Code)
			assert.False(t, res.Success)
			assert.Equal(t, tt.msg, res.Message)
		})
	}
}

func TestInternalErrorIsLogged(t *testing.T) {
	env := newTestEnv()
	env.clients.GetFunc = func(context.Context, int64) (*models.Client, error) {
		return nil, assert.AnError
	}
	r := env.router()

	w, res := do(t, r, http.MethodGet, "/api/clients/9", "", true)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, res.Message, assert.AnError.Error())

	entries := env.logs.FilterMessage("request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/clients/:id", entries[0].ContextMap()["route"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

func TestInvalidPathID(t *testing.T) {
	r := newTestEnv().router()
	for _, id := range []string{"abc", "0", "-3"} {
		w, res := do(t, r, http.MethodGet, "/api/clients/"+id, "", true)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		assert.Equal(t, []apperr.FieldError{{Field: "id", Message: "Valid ID is required"}}, res.Errors)
	}
}

func TestClientDelete_MessageOnly(t *testing.T) {
	env := newTestEnv()
	var deleted int64
	env.clients.DeleteFunc = func(_ context.Context, _ models.Actor, id int64) error {
		deleted = id
		return nil
	}

	w, res := do(t, env.router(), http.MethodDelete, "/api/clients/12", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(12), deleted)
	assert.Equal(t, "Client deleted successfully", res.Message)
	assert.Empty(t, res.Data)
	assert.NotContains(t, w.Body.String(), `"data"`)
}

func TestClientMatters_ScopedToClient(t *testing.T) {
	env := newTestEnv()
	env.matters.ListFunc = func(_ context.Context, f models.MatterFilter, p models.Page) (models.List[models.Matter], error) {
		require.NotNil(t, f.ClientID)
		assert.Equal(t, int64(5), *f.ClientID)
		return models.List[models.Matter]{Items: []models.Matter{}, Pagination: models.NewPagination(p, 0)}, nil
	}

	w, res := do(t, env.router(), http.MethodGet, "/api/clients/5/matters", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(res.Data))
	assert.Equal(t, 0, res.Pagination.TotalPages)
}

func TestInvoiceSend_WrongStatus(t *testing.T) {
	env := newTestEnv()
	env.invoices.SendFunc = func(context.Context, models.Actor, int64) (*models.Invoice, error) {
		return nil, apperr.InvalidState("Only draft invoices can be sent")
	}

	w, res := do(t, env.router(), http.MethodPost, "/api/invoices/3/send", "", true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Only draft invoices can be sent", res.Message)
}

func TestInvoicePay_OptionalBody(t *testing.T) {
	env := newTestEnv()
	var got models.PaymentInput
	env.invoices.PayFunc = func(_ context.Context, _ models.Actor, _ int64, in models.PaymentInput) (*models.Invoice, error) {
		got = in
		return &models.Invoice{ID: 3, Status: models.InvoiceStatusPaid}, nil
	}
	r := env.router()

	w, res := do(t, r, http.MethodPost, "/api/invoices/3/pay", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Invoice marked as paid", res.Message)
	assert.Nil(t, got.PaymentMethod)

	w, _ = do(t, r, http.MethodPost, "/api/invoices/3/pay", `{"payment_method":"wire","payment_date":"2026-03-20"}`, true)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got.PaymentMethod)
	assert.Equal(t, "wire", *got.PaymentMethod)
	require.NotNil(t, got.PaymentDate)
	assert.Equal(t, "2026-03-20", got.PaymentDate.String())
}

func TestInvoiceCreate_LineItemsOptional(t *testing.T) {
	env := newTestEnv()
	calls := 0
	env.invoices.CreateFunc = func(_ context.Context, _ models.Actor, in models.InvoiceInput) (*models.Invoice, error) {
		calls++
		return &models.Invoice{ID: 1, ClientID: in.ClientID, TotalAmount: in.Total()}, nil
	}
	r := env.router()

	for _, body := range []string{`{"client_id":1}`, `{"client_id":1,"line_items":[]}`} {
		w, res := do(t, r, http.MethodPost, "/api/invoices", body, true)
		require.Equal(t, http.StatusCreated, w.Code, body)
		assert.Equal(t, "Invoice created successfully", res.Message)
	}
	assert.Equal(t, 2, calls)

	w, res := do(t, r, http.MethodPost, "/api/invoices", `{"client_id":1,"line_items":[{"quantity":1,"rate":10}]}`, true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "line_items[0].description", res.Errors[0].Field)
	assert.Equal(t, 2, calls)
}

func TestTimeEntrySummary_NotShadowedByID(t *testing.T) {
	env := newTestEnv()
	env.timeEntries.SummaryFunc = func(_ context.Context, actor models.Actor, userID int64, rng models.ReportRange) (*models.TimeSummary, error) {
		assert.Equal(t, caller.ID, actor.ID)
		assert.Equal(t, int64(0), userID)
		require.NotNil(t, rng.StartDate)
		assert.Equal(t, "2026-03-01", rng.StartDate.String())
		assert.Nil(t, rng.EndDate)
		return &models.TimeSummary{TotalHours: 1.5}, nil
	}

	w, _ := do(t, env.router(), http.MethodGet, "/api/time-entries/summary?start_date=2026-03-01", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	w, res := do(t, env.router(), http.MethodGet, "/api/time-entries/summary?start_date=03/01/2026", "", true)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "start_date", res.Errors[0].Field)
}

func TestAgingReport(t *testing.T) {
	asOf := models.NewDate(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	report := &models.AgingReport{
		AsOfDate: asOf,
		ClientBreakdown: []models.ClientAging{{
			ClientID:   4,
			ClientName: "Bob Brief",
			AgingBuckets: models.AgingBuckets{
				InvoiceCount:     2,
				TotalOutstanding: decimal.RequireFromString("1500"),
				Current0To30:     decimal.RequireFromString("500"),
				Overdue90Plus:    decimal.RequireFromString("1000"),
			},
		}},
	}

	env := newTestEnv()
	env.reports.AgingFunc = func(_ context.Context, d *models.Date) (*models.AgingReport, error) {
		require.NotNil(t, d)
		assert.Equal(t, "2026-03-20", d.String())
		return report, nil
	}
	r := env.router()

	t.Run("json", func(t *testing.T) {
		w, res := do(t, r, http.MethodGet, "/api/reports/aging?as_of_date=2026-03-20", "", true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(res.Data), `"as_of_date":"2026-03-20"`)
		assert.Contains(t, string(res.Data), `"overdue_90_plus":1000`)
	})

	t.Run("csv", func(t *testing.T) {
		w, _ := do(t, r, http.MethodGet, "/api/reports/aging?as_of_date=2026-03-20&format=csv", "", true)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "aging-2026-03-20.csv")

		rows, err := csv.NewReader(w.Body).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "client_name", rows[0][1])
		assert.Equal(t, []string{"4", "Bob Brief", "2", "500.00", "0.00", "0.00", "1000.00", "1500.00"}, rows[1])
	})

	t.Run("bad format", func(t *testing.T) {
		w, res := do(t, r, http.MethodGet, "/api/reports/aging?format=xml", "", true)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "format", res.Errors[0].Field)
	})
}

func TestLogin_RateLimited(t *testing.T) {
	env := newTestEnv()
	env.limiter = middleware.NewMemoryLimiter(2)
	env.auth.LoginFunc = func(context.Context, models.LoginInput) (*models.AuthResult, error) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	r := env.router()

	body := `{"email":"jane@firm.test","password":"wrong-password"}`
	for i := 0; i < 2; i++ {
		w, res := do(t, r, http.MethodPost, "/api/auth/login", body, false)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", res.Message)
	}

	w, _ := do(t, r, http.MethodPost, "/api/auth/login", body, false)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestUnknownRoute(t *testing.T) {
	w, res := do(t, newTestEnv().router(), http.MethodGet, "/api/nope", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", res.Message)
}
