package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masar-app/masar/internal/config"
	"github.com/masar-app/masar/internal/db"
	"github.com/masar-app/masar/internal/export"
	"github.com/masar-app/masar/internal/payment"
	"github.com/masar-app/masar/internal/types"
)

// stubUserStore is an in-memory UserStore.
type stubUserStore struct {
	users map[uuid.UUID]*db.User
	txns  map[uuid.UUID][]db.BillingTransaction
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{
		users: make(map[uuid.UUID]*db.User),
		txns:  make(map[uuid.UUID][]db.BillingTransaction),
	}
}

func (s *stubUserStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now()
	s.users[id] = &db.User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Plan:         types.PlanFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return id, nil
}

func (s *stubUserStore) GetUser(_ context.Context, userID uuid.UUID) (*db.User, error) {
	return s.users[userID], nil
}

func (s *stubUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) UpgradePlan(_ context.Context, userID uuid.UUID, plan types.Plan, paymentRef string, ends time.Time) error {
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user not found: %s", userID)
	}
	u.Plan = plan
	u.SubscriptionActive = true
	u.SubscriptionEnds = &ends
	s.txns[userID] = append(s.txns[userID], db.BillingTransaction{
		ID:         uuid.New(),
		UserID:     userID,
		PaymentRef: paymentRef,
		Plan:       plan,
		Amount:     plan.Price(),
		CreatedAt:  time.Now(),
	})
	return nil
}

func (s *stubUserStore) ListBillingTransactions(_ context.Context, userID uuid.UUID) ([]db.BillingTransaction, error) {
	return s.txns[userID], nil
}

// stubDocStore is an in-memory DocumentStore.
type stubDocStore struct {
	docs map[uuid.UUID]*db.CVDocument
	apps map[uuid.UUID]*db.JobApplication
}

func newStubDocStore() *stubDocStore {
	return &stubDocStore{
		docs: make(map[uuid.UUID]*db.CVDocument),
		apps: make(map[uuid.UUID]*db.JobApplication),
	}
}

func (s *stubDocStore) SaveCVDocument(_ context.Context, userID uuid.UUID, cv *types.CVRecord) error {
	doc, ok := s.docs[userID]
	if !ok {
		doc = &db.CVDocument{UserID: userID}
		s.docs[userID] = doc
	}
	doc.Content = *cv
	doc.UpdatedAt = time.Now()
	return nil
}

func (s *stubDocStore) GetCVDocument(_ context.Context, userID uuid.UUID) (*db.CVDocument, error) {
	return s.docs[userID], nil
}

func (s *stubDocStore) SetShareSlug(_ context.Context, userID uuid.UUID, slug string) error {
	doc, ok := s.docs[userID]
	if !ok {
		return fmt.Errorf("no cv document for user: %s", userID)
	}
	doc.ShareSlug = slug
	return nil
}

func (s *stubDocStore) GetCVByShareSlug(_ context.Context, slug string) (*db.CVDocument, error) {
	if slug == "" {
		return nil, nil
	}
	for _, doc := range s.docs {
		if doc.ShareSlug == slug {
			return doc, nil
		}
	}
	return nil, nil
}

func (s *stubDocStore) CreateApplication(_ context.Context, userID uuid.UUID, company, roleTitle, notes string) (uuid.UUID, error) {
	id := uuid.New()
	now := time.Now()
	s.apps[id] = &db.JobApplication{
		ID:        id,
		UserID:    userID,
		Company:   company,
		RoleTitle: roleTitle,
		Status:    db.ApplicationApplied,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return id, nil
}

func (s *stubDocStore) GetApplication(_ context.Context, id uuid.UUID) (*db.JobApplication, error) {
	return s.apps[id], nil
}

func (s *stubDocStore) ListApplications(_ context.Context, userID uuid.UUID) ([]db.JobApplication, error) {
	var out []db.JobApplication
	for _, a := range s.apps {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubDocStore) UpdateApplicationStatus(_ context.Context, id uuid.UUID, status, notes string) error {
	a, ok := s.apps[id]
	if !ok {
		return fmt.Errorf("application not found: %s", id)
	}
	a.Status = status
	a.Notes = notes
	a.UpdatedAt = time.Now()
	return nil
}

func (s *stubDocStore) DeleteApplication(_ context.Context, id uuid.UUID) error {
	if _, ok := s.apps[id]; !ok {
		return fmt.Errorf("application not found: %s", id)
	}
	delete(s.apps, id)
	return nil
}

// stubExporter returns canned bytes without a browser.
type stubExporter struct {
	err error
}

func (e *stubExporter) Export(_ context.Context, req export.Request) ([]byte, string, error) {
	if e.err != nil {
		return nil, "", e.err
	}
	return []byte("%PDF-1.4 stub"), export.Filename(req.Filename), nil
}

func newTestServer(t *testing.T) (*Server, *stubUserStore, *stubDocStore) {
	t.Helper()

	users := newStubUserStore()
	docs := newStubDocStore()
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}

	s := &Server{
		users:       users,
		docs:        docs,
		gateway:     payment.NewGateway("http://localhost:8080"),
		userService: NewUserService(users, passwordConfig),
		jwtService:  NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1}),
		exporter:    &stubExporter{},
	}
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)
	return s, users, docs
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// registerUser registers an account through the API and returns its token.
func registerUser(t *testing.T, handler http.Handler, email string) (string, *types.User) {
	t.Helper()

	rec := doJSON(t, handler, "POST", "/auth/register", "", types.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doJSON(t, s.routes(), "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()

	token, user := registerUser(t, handler, "amal@example.com")
	assert.Equal(t, "amal@example.com", user.Email)
	assert.Equal(t, types.PlanFree, user.Plan)
	assert.NotEmpty(t, token)

	// Duplicate email
	rec := doJSON(t, handler, "POST", "/auth/register", "", types.RegisterRequest{
		Name: "Other", Email: "amal@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Login with correct credentials
	rec = doJSON(t, handler, "POST", "/auth/login", "", types.LoginRequest{
		Email: "amal@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong password gets the same generic 401
	rec = doJSON(t, handler, "POST", "/auth/login", "", types.LoginRequest{
		Email: "amal@example.com", Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown email too
	rec = doJSON(t, handler, "POST", "/auth/login", "", types.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()

	tests := []struct {
		name string
		req  types.RegisterRequest
	}{
		{"missing name", types.RegisterRequest{Email: "a@b.co", Password: "password123"}},
		{"bad email", types.RegisterRequest{Name: "A", Email: "not-an-email", Password: "password123"}},
		{"short password", types.RegisterRequest{Name: "A", Email: "a@b.co", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, "POST", "/auth/register", "", tt.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()

	for _, path := range []string{"/cv", "/me"} {
		rec := doJSON(t, handler, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := doJSON(t, handler, "GET", "/cv", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCVRoundTrip(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "cv@example.com")

	// Fresh account gets the default record
	rec := doJSON(t, handler, "GET", "/cv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fresh types.CVRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fresh))
	assert.Equal(t, types.LanguageArabic, fresh.Language)
	assert.Empty(t, fresh.FullName)

	cv := types.NewCVRecord()
	cv.FullName = "سارة المطيري"
	cv.JobTitle = "محللة بيانات"

	rec = doJSON(t, handler, "PUT", "/cv", token, cv)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, handler, "GET", "/cv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded types.CVRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	assert.Equal(t, "سارة المطيري", loaded.FullName)
	assert.Equal(t, types.LanguageArabic, loaded.Language)
}

func TestPutCVSavesVerbatim(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "verbatim@example.com")

	// Saving without changing templates is not a template switch; the
	// record reads back exactly as sent, language/template mismatch and all.
	cv := types.NewCVRecord()
	cv.Language = types.LanguageEnglish

	rec := doJSON(t, handler, "PUT", "/cv", token, cv)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var saved types.CVRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, types.LanguageEnglish, saved.Language)
	assert.Equal(t, types.TemplateARATS, saved.TemplateID)

	rec = doJSON(t, handler, "GET", "/cv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded types.CVRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	assert.Equal(t, types.LanguageEnglish, loaded.Language)
}

func TestPutCVTemplateSwitchSnapsLanguage(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "switch@example.com")

	cv := types.NewCVRecord()
	rec := doJSON(t, handler, "PUT", "/cv", token, cv)
	require.Equal(t, http.StatusOK, rec.Code)

	// Changing the template is the explicit switch that snaps language
	cv.TemplateID = types.TemplateENModernPro
	rec = doJSON(t, handler, "PUT", "/cv", token, cv)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var saved types.CVRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, types.LanguageEnglish, saved.Language)
}

func TestPutCVUnknownTemplate(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "tpl@example.com")

	// An unknown template id is not a persistence failure; the renderer
	// falls back to the plain linear layout at display time.
	cv := types.NewCVRecord()
	cv.Language = types.LanguageEnglish
	cv.TemplateID = types.TemplateID("no_such_template")

	rec := doJSON(t, handler, "PUT", "/cv", token, cv)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var saved types.CVRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, types.TemplateID("no_such_template"), saved.TemplateID)
	assert.Equal(t, types.LanguageEnglish, saved.Language)
}

func TestListTemplates(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()

	rec := doJSON(t, handler, "GET", "/templates", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 20)

	rec = doJSON(t, handler, "GET", "/templates?lang=en", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var english []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &english))
	assert.Len(t, english, 10)

	rec = doJSON(t, handler, "GET", "/templates?lang=fr", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewRendersHTML(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()

	cv := types.NewCVRecord()
	cv.FullName = "Preview Person"

	rec := doJSON(t, handler, "POST", "/cv/preview", "", cv)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Preview Person")
	assert.Contains(t, rec.Body.String(), `id="cv-root"`)
}

func TestValidateEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()

	rec := doJSON(t, handler, "POST", "/cv/validate", "", types.NewCVRecord())
	require.Equal(t, http.StatusOK, rec.Code)

	var problems map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problems))
	assert.Len(t, problems, 6)
}

func completeCV() *types.CVRecord {
	cv := types.NewCVRecord()
	cv.FullName = "Complete Person"
	cv.JobTitle = "Engineer"
	cv.Summary = "A summary."
	cv.Skills = []string{"Go", "SQL", "Docker"}
	cv.Experience = []types.ExperienceEntry{{ID: "e1", Title: "Dev", Company: "Acme"}}
	cv.Education = []types.EducationEntry{{ID: "ed1", Degree: "BSc", School: "KSU"}}
	return cv
}

func TestExport(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "export@example.com")

	rec := doJSON(t, handler, "POST", "/cv/export", token, completeCV())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Complete_Person_CV.pdf")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestExportIncompleteCV(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "export2@example.com")

	rec := doJSON(t, handler, "POST", "/cv/export", token, types.NewCVRecord())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "problems")
}

func TestExportBusy(t *testing.T) {
	s, _, _ := newTestServer(t)
	s.exporter = &stubExporter{err: &export.BusyError{}}
	handler := s.routes()
	token, _ := registerUser(t, handler, "busy@example.com")

	rec := doJSON(t, handler, "POST", "/cv/export", token, completeCV())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestShareFlow(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "share@example.com")

	// Nothing saved yet
	rec := doJSON(t, handler, "POST", "/cv/share", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	cv := completeCV()
	rec = doJSON(t, handler, "PUT", "/cv", token, cv)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, "POST", "/cv/share", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var share map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &share))
	require.NotEmpty(t, share["slug"])

	// Sharing again reuses the slug
	rec = doJSON(t, handler, "POST", "/cv/share", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var again map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, share["slug"], again["slug"])

	// Public fetch renders without auth
	rec = doJSON(t, handler, "GET", "/share/"+share["slug"], "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Complete Person")

	rec = doJSON(t, handler, "GET", "/share/unknown-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentFlow(t *testing.T) {
	s, users, _ := newTestServer(t)
	handler := s.routes()
	token, user := registerUser(t, handler, "pay@example.com")

	rec := doJSON(t, handler, "POST", "/payment/checkout", token, checkoutRequest{Plan: types.PlanPro})
	require.Equal(t, http.StatusOK, rec.Code)

	var session payment.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, types.PlanPro.Price(), session.Amount)

	// Follow the callback the gateway built
	callbackPath := session.RedirectURL[len("http://localhost:8080"):]
	rec = doJSON(t, handler, "GET", callbackPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var upgraded types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upgraded))
	assert.Equal(t, types.PlanPro, upgraded.Plan)
	assert.True(t, upgraded.SubscriptionActive)
	require.NotNil(t, upgraded.SubscriptionEnds)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *upgraded.SubscriptionEnds, time.Minute)
	require.Len(t, upgraded.BillingHistory, 1)
	assert.Equal(t, types.PlanPro.Price(), upgraded.BillingHistory[0].Amount)

	// The store really changed
	id, err := uuid.Parse(user.ID)
	require.NoError(t, err)
	stored := users.users[id]
	assert.Equal(t, types.PlanPro, stored.Plan)
}

func TestPaymentCallbackFailedLeavesAccountUntouched(t *testing.T) {
	s, users, _ := newTestServer(t)
	handler := s.routes()
	token, user := registerUser(t, handler, "fail@example.com")

	rec := doJSON(t, handler, "GET", "/payment/callback?status=failed&id=pay_x&plan=pro", token, nil)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	id, err := uuid.Parse(user.ID)
	require.NoError(t, err)
	stored := users.users[id]
	assert.Equal(t, types.PlanFree, stored.Plan)
	assert.False(t, stored.SubscriptionActive)
	assert.Empty(t, users.txns[id])
}

func TestCheckoutFreePlanRejected(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "free@example.com")

	rec := doJSON(t, handler, "POST", "/payment/checkout", token, checkoutRequest{Plan: types.PlanFree})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationsPlanGate(t *testing.T) {
	s, users, _ := newTestServer(t)
	handler := s.routes()
	token, user := registerUser(t, handler, "apps@example.com")

	// Free tier is rejected
	rec := doJSON(t, handler, "GET", "/applications", token, nil)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	// A paid plan below guaranteed is still rejected
	id, err := uuid.Parse(user.ID)
	require.NoError(t, err)
	require.NoError(t, users.UpgradePlan(context.Background(), id, types.PlanBasic, "pay_t", time.Now().Add(time.Hour)))

	rec = doJSON(t, handler, "GET", "/applications", token, nil)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	require.NoError(t, users.UpgradePlan(context.Background(), id, types.PlanGuaranteed, "pay_t", time.Now().Add(time.Hour)))

	rec = doJSON(t, handler, "GET", "/applications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestApplicationsExpiredSubscription(t *testing.T) {
	s, users, _ := newTestServer(t)
	handler := s.routes()
	token, user := registerUser(t, handler, "expired@example.com")

	// A subscription whose end date has passed no longer grants access
	id, err := uuid.Parse(user.ID)
	require.NoError(t, err)
	ends := time.Now().Add(-60 * 24 * time.Hour)
	require.NoError(t, users.UpgradePlan(context.Background(), id, types.PlanGuaranteed, "pay_t", ends))

	rec := doJSON(t, handler, "GET", "/applications", token, nil)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestApplicationsCRUD(t *testing.T) {
	s, users, _ := newTestServer(t)
	handler := s.routes()
	token, user := registerUser(t, handler, "crud@example.com")

	id, err := uuid.Parse(user.ID)
	require.NoError(t, err)
	require.NoError(t, users.UpgradePlan(context.Background(), id, types.PlanGuaranteed, "pay_t", time.Now().Add(time.Hour)))

	rec := doJSON(t, handler, "POST", "/applications", token, applicationRequest{
		Company: "نيوم", RoleTitle: "مهندس برمجيات",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created db.JobApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, db.ApplicationApplied, created.Status)

	rec = doJSON(t, handler, "PUT", "/applications/"+created.ID.String(), token, applicationRequest{
		Status: db.ApplicationInterview, Notes: "onsite next week",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated db.JobApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, db.ApplicationInterview, updated.Status)

	rec = doJSON(t, handler, "PUT", "/applications/"+created.ID.String(), token, applicationRequest{
		Status: "ghosted",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, "DELETE", "/applications/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, handler, "DELETE", "/applications/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplicationsOwnershipHidden(t *testing.T) {
	s, users, _ := newTestServer(t)
	handler := s.routes()

	tokenA, userA := registerUser(t, handler, "owner-a@example.com")
	tokenB, userB := registerUser(t, handler, "owner-b@example.com")
	for _, u := range []*types.User{userA, userB} {
		id, err := uuid.Parse(u.ID)
		require.NoError(t, err)
		require.NoError(t, users.UpgradePlan(context.Background(), id, types.PlanGuaranteed, "pay_t", time.Now().Add(time.Hour)))
	}

	rec := doJSON(t, handler, "POST", "/applications", tokenA, applicationRequest{
		Company: "Acme", RoleTitle: "Engineer",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created db.JobApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Another user sees 404, nothing reveals the record exists
	rec = doJSON(t, handler, "DELETE", "/applications/"+created.ID.String(), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAIFallbacksWithoutService(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "ai@example.com")

	rec := doJSON(t, handler, "POST", "/ai/summary", token, summaryRequest{
		Summary: "my original summary", JobTitle: "Engineer", Language: types.LanguageEnglish,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"summary":"my original summary"}`, rec.Body.String())

	rec = doJSON(t, handler, "POST", "/ai/bullets", token, bulletsRequest{
		Description: "did things", Language: types.LanguageEnglish,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"description":"did things"}`, rec.Body.String())

	rec = doJSON(t, handler, "POST", "/ai/skills", token, skillsRequest{JobTitle: "Engineer"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"skills":[]}`, rec.Body.String())

	rec = doJSON(t, handler, "POST", "/ai/analyze", token, types.NewCVRecord())
	require.Equal(t, http.StatusOK, rec.Code)
	var analysis types.ATSAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, 75, analysis.Score)

	rec = doJSON(t, handler, "POST", "/ai/from-text", token, fromTextRequest{Text: "some cv text"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProfile(t *testing.T) {
	s, _, _ := newTestServer(t)
	handler := s.routes()
	token, _ := registerUser(t, handler, "me@example.com")

	rec := doJSON(t, handler, "GET", "/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user types.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "me@example.com", user.Email)
	assert.NotNil(t, user.BillingHistory)
}
