package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spamoverflow/internal/query"
	"spamoverflow/pkg/domain"
	"spamoverflow/pkg/serrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeIngestor struct {
	email *domain.Email
	err   error

	gotCustomerID string
	gotRequest    domain.IngestRequest
}

func (f *fakeIngestor) Ingest(_ context.Context,
	customerID string,
	req domain.IngestRequest) (*domain.Email, error) {
	f.gotCustomerID = customerID
	f.gotRequest = req

	return f.email, f.err
}

type fakeQuerier struct {
	emails []domain.Email
	email  *domain.Email
	report *domain.Report
	err    error

	gotCustomerID string
	gotEmailID    string
	gotParams     query.ListParams
}

func (f *fakeQuerier) ListEmails(_ context.Context,
	customerID string,
	params query.ListParams) ([]domain.Email, error) {
	f.gotCustomerID = customerID
	f.gotParams = params

	return f.emails, f.err
}

func (f *fakeQuerier) Email(_ context.Context, customerID string, emailID string) (*domain.Email, error) {
	f.gotCustomerID = customerID
	f.gotEmailID = emailID

	return f.email, f.err
}

func (f *fakeQuerier) MaliciousSenders(_ context.Context, customerID string) (*domain.Report, error) {
	f.gotCustomerID = customerID

	return f.report, f.err
}

func (f *fakeQuerier) MaliciousDomains(_ context.Context, customerID string) (*domain.Report, error) {
	f.gotCustomerID = customerID

	return f.report, f.err
}

func (f *fakeQuerier) MaliciousRecipients(_ context.Context, customerID string) (*domain.Report, error) {
	f.gotCustomerID = customerID

	return f.report, f.err
}

func newTestRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := New(deps)
	router := gin.New()

	v1 := router.Group("/api/v1")
	v1.GET("/health", h.Health)
	v1.POST("/customers/:customer_id/emails", h.CreateEmail)
	v1.GET("/customers/:customer_id/emails", h.ListEmails)
	v1.GET("/customers/:customer_id/emails/:id", h.GetEmail)
	v1.GET("/customers/:customer_id/reports/actors", h.Actors)
	v1.GET("/customers/:customer_id/reports/domains", h.Domains)
	v1.GET("/customers/:customer_id/reports/recipients", h.Recipients)

	return router
}

func perform(t *testing.T, router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func testEmail() *domain.Email {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	return &domain.Email{
		ID:         domain.EmailID(uuid.MustParse("a4418b4a-9a4c-4623-9b45-e94b3bbc992b")),
		CustomerID: domain.CustomerID(uuid.New()),
		To:         "victim@corp.com",
		From:       "attacker@evil.com",
		Subject:    "Urgent",
		Body:       "visit http://evil.com",
		Metadata:   "1|14",
		Status:     domain.EmailStatusScanned,
		Malicious:  true,
		Domains:    []string{"evil.com"},
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(Deps{})

	rec := perform(t, router, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateEmail(t *testing.T) {
	ingestor := &fakeIngestor{email: testEmail()}
	router := newTestRouter(Deps{Ingestor: ingestor})

	customerID := uuid.NewString()
	body := `{
		"contents": {"to": "victim@corp.com", "from": "attacker@evil.com", "subject": "Urgent", "body": "visit http://evil.com"},
		"metadata": {"spamhammer": "1|14"}
	}`

	rec := perform(t, router, http.MethodPost, "/api/v1/customers/"+customerID+"/emails", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, customerID, ingestor.gotCustomerID)
	require.Equal(t, "victim@corp.com", ingestor.gotRequest.Contents.To)
	require.Equal(t, "1|14", ingestor.gotRequest.Metadata.SpamHammer)

	var view EmailView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Equal(t, "a4418b4a-9a4c-4623-9b45-e94b3bbc992b", view.ID)
	require.Equal(t, "2024-03-01T10:30:00Z", view.CreatedAt)
	require.Equal(t, view.CreatedAt, view.UpdatedAt)
	require.Equal(t, "victim@corp.com", view.Contents.To)
	require.Equal(t, "scanned", view.Status)
	require.True(t, view.Malicious)
	require.Equal(t, []string{"evil.com"}, view.Domains)
	require.Equal(t, "1|14", view.Metadata.SpamHammer)

	// The body never appears in responses.
	require.NotContains(t, rec.Body.String(), "visit http://evil.com")
	require.NotContains(t, rec.Body.String(), `"body"`)
}

func TestCreateEmailMalformedJSON(t *testing.T) {
	router := newTestRouter(Deps{Ingestor: &fakeIngestor{}})

	rec := perform(t, router, http.MethodPost, "/api/v1/customers/"+uuid.NewString()+"/emails", "{not json")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEmailErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "bad request", err: serrors.With(serrors.ErrBadRequest, "invalid customer id"), want: http.StatusBadRequest},
		{name: "scan failed", err: serrors.With(serrors.ErrScanFailed, "engine crashed"), want: http.StatusBadRequest},
		{name: "storage failure", err: serrors.KindOnly(serrors.ErrInternal), want: http.StatusInternalServerError},
	}

	body := `{"contents":{"to":"a@b.com","from":"c@d.com","subject":"s","body":"b"},"metadata":{"spamhammer":"1|1"}}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(Deps{Ingestor: &fakeIngestor{err: tt.err}})

			rec := perform(t, router, http.MethodPost, "/api/v1/customers/"+uuid.NewString()+"/emails", body)
			require.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	router := newTestRouter(Deps{Querier: &fakeQuerier{err: serrors.With(serrors.ErrInternal, "pool exhausted on pg-3")}})

	rec := perform(t, router, http.MethodGet, "/api/v1/customers/"+uuid.NewString()+"/emails", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestListEmailsForwardsParams(t *testing.T) {
	querier := &fakeQuerier{emails: []domain.Email{*testEmail()}}
	router := newTestRouter(Deps{Querier: querier})

	customerID := uuid.NewString()
	rec := perform(t, router, http.MethodGet,
		"/api/v1/customers/"+customerID+"/emails?limit=5&offset=10&from=a%40b.com&only_malicious=true&state=scanned", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, customerID, querier.gotCustomerID)
	require.Equal(t, "5", querier.gotParams.Limit)
	require.Equal(t, "10", querier.gotParams.Offset)
	require.Equal(t, "a@b.com", querier.gotParams.From)
	require.Equal(t, "true", querier.gotParams.OnlyMalicious)
	require.Equal(t, "scanned", querier.gotParams.State)

	var views []EmailView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
}

func TestListEmailsEmptyResult(t *testing.T) {
	router := newTestRouter(Deps{Querier: &fakeQuerier{}})

	rec := perform(t, router, http.MethodGet, "/api/v1/customers/"+uuid.NewString()+"/emails", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetEmail(t *testing.T) {
	querier := &fakeQuerier{email: testEmail()}
	router := newTestRouter(Deps{Querier: querier})

	customerID := uuid.NewString()
	emailID := querier.email.ID.String()

	rec := perform(t, router, http.MethodGet, "/api/v1/customers/"+customerID+"/emails/"+emailID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, customerID, querier.gotCustomerID)
	require.Equal(t, emailID, querier.gotEmailID)
}

func TestGetEmailNotFound(t *testing.T) {
	router := newTestRouter(Deps{Querier: &fakeQuerier{err: serrors.With(serrors.ErrNotFound, "email not found")}})

	rec := perform(t, router, http.MethodGet,
		"/api/v1/customers/"+uuid.NewString()+"/emails/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReports(t *testing.T) {
	report := &domain.Report{
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Total:       1,
		Data:        []domain.ReportEntry{{ID: "evil.com", Count: 4}},
	}

	for _, path := range []string{"actors", "domains", "recipients"} {
		t.Run(path, func(t *testing.T) {
			querier := &fakeQuerier{report: report}
			router := newTestRouter(Deps{Querier: querier})

			customerID := uuid.NewString()
			rec := perform(t, router, http.MethodGet, "/api/v1/customers/"+customerID+"/reports/"+path, "")
			require.Equal(t, http.StatusOK, rec.Code)
			require.Equal(t, customerID, querier.gotCustomerID)

			var view ReportView
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
			require.Equal(t, "2024-03-01T12:00:00Z", view.GeneratedAt)
			require.Equal(t, 1, view.Total)
			require.Equal(t, report.Data, view.Data)
		})
	}
}

func TestReportBadCustomerID(t *testing.T) {
	router := newTestRouter(Deps{Querier: &fakeQuerier{err: serrors.With(serrors.ErrBadRequest, "invalid customer id")}})

	rec := perform(t, router, http.MethodGet, "/api/v1/customers/nope/reports/actors", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
