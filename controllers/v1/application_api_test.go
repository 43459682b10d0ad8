package apiv1

import (
	"bytes"
	"collab-backend/config"
	applicationhandler "collab-backend/lib/application"
	authhandler "collab-backend/lib/auth"
	apperrors "collab-backend/lib/utils/app-errors"
	authutils "collab-backend/lib/utils/auth-utils"
	"collab-backend/models"
	applicationapimodels "collab-backend/models/api/application"
	authapimodels "collab-backend/models/api/auth"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type authMock struct {
	active bool
}

func (a authMock) Login(email, password string) (authapimodels.JWTResponse, error) {
	return authapimodels.JWTResponse{}, nil
}

func (a authMock) IsTokenActive(token string) (bool, error) {
	return a.active, nil
}

func (a authMock) Logout(token string) error {
	return nil
}

func (a authMock) LogoutAll(userID string) error {
	return nil
}

func (a authMock) CleanupExpired(now time.Time) (tokens, resetCodes int64, err error) {
	return 0, 0, nil
}

func initTestAuth(t *testing.T, active bool) string {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	config.Conf.Auth.CookieName = "authorization"
	authhandler.Instance = authMock{active: active}
	token, _, err := authutils.GetToken("user-1", "john", "john@mail.com")
	require.Nil(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, url, token string, body interface{}) (int, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.Nil(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.Nil(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	return resp.StatusCode, data
}

type applicationMock struct {
	err        error
	ownerID    string
	applicants []applicationapimodels.ApplicantView
}

func (a *applicationMock) Create(applicantID, positionID string) (applicationapimodels.ApplicationView, error) {
	return applicationapimodels.ApplicationView{ID: "app-1", PositionID: positionID, UserID: applicantID}, a.err
}

func (a *applicationMock) ListByPosition(ownerID, positionID string, status models.ApplicationStatus) ([]applicationapimodels.ApplicantView, error) {
	a.ownerID = ownerID
	return a.applicants, a.err
}

func (a *applicationMock) Accept(ownerID, positionID, applicantID string) error {
	a.ownerID = ownerID
	return a.err
}

func (a *applicationMock) Decline(ownerID, positionID, applicantID string) error {
	return a.err
}

func (a *applicationMock) Revoke(applicantID, applicationID string) error {
	return a.err
}

func (a *applicationMock) Export(ownerID, positionID string, status models.ApplicationStatus) (*bytes.Buffer, error) {
	if a.err != nil {
		return nil, a.err
	}
	return bytes.NewBufferString("xlsx"), nil
}

func newApplicationApp(mock *applicationMock) *fiber.App {
	applicationhandler.Instance = mock
	app := fiber.New()
	InitApplicationApiRouters(app)
	return app
}

func TestApplicationApi(t *testing.T) {
	resolve := applicationapimodels.ResolveRequest{PositionID: "pos-1", ApplicantID: "user-2"}

	t.Run(`no token`, func(t *testing.T) {
		initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{})
		status, _ := doRequest(t, app, http.MethodPost, "/application/accept", "", resolve)
		require.Equal(t, fiber.StatusUnauthorized, status)
	})
	t.Run(`revoked token`, func(t *testing.T) {
		token := initTestAuth(t, false)
		app := newApplicationApp(&applicationMock{})
		status, _ := doRequest(t, app, http.MethodPost, "/application/accept", token, resolve)
		require.Equal(t, fiber.StatusUnauthorized, status)
	})
	t.Run(`create`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{})
		status, _ := doRequest(t, app, http.MethodPost, "/application", token, applicationapimodels.ApplyRequest{PositionID: "pos-1"})
		require.Equal(t, fiber.StatusCreated, status)
	})
	t.Run(`create on closed position`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{err: apperrors.Unprocessable("позиция закрыта")})
		status, _ := doRequest(t, app, http.MethodPost, "/application", token, applicationapimodels.ApplyRequest{PositionID: "pos-1"})
		require.Equal(t, fiber.StatusUnprocessableEntity, status)
	})
	t.Run(`create without position`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{})
		status, _ := doRequest(t, app, http.MethodPost, "/application", token, applicationapimodels.ApplyRequest{})
		require.Equal(t, fiber.StatusBadRequest, status)
	})
	t.Run(`accept passes owner from token`, func(t *testing.T) {
		token := initTestAuth(t, true)
		mock := &applicationMock{}
		app := newApplicationApp(mock)
		status, _ := doRequest(t, app, http.MethodPost, "/application/accept", token, resolve)
		require.Equal(t, fiber.StatusOK, status)
		require.Equal(t, "user-1", mock.ownerID)
	})
	t.Run(`accept without vacancies`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{err: apperrors.NoVacancy("нет свободных мест")})
		status, _ := doRequest(t, app, http.MethodPost, "/application/accept", token, resolve)
		require.Equal(t, fiber.StatusNotFound, status)
	})
	t.Run(`decline not pending`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{err: apperrors.Conflict("отклик уже обработан")})
		status, _ := doRequest(t, app, http.MethodPost, "/application/decline", token, resolve)
		require.Equal(t, fiber.StatusNotFound, status)
	})
	t.Run(`decline foreign position`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{err: apperrors.NotAuthorized("нет доступа")})
		status, _ := doRequest(t, app, http.MethodPost, "/application/decline", token, resolve)
		require.Equal(t, fiber.StatusNotFound, status)
	})
	t.Run(`revoke foreign application`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{err: apperrors.NotAuthorized("чужой отклик")})
		status, _ := doRequest(t, app, http.MethodDelete, "/application/revoke?id=app-1", token, nil)
		require.Equal(t, fiber.StatusUnauthorized, status)
	})
	t.Run(`revoke resolved application`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{err: apperrors.Conflict("отклик уже обработан")})
		status, _ := doRequest(t, app, http.MethodDelete, "/application/revoke?id=app-1", token, nil)
		require.Equal(t, fiber.StatusConflict, status)
	})
	t.Run(`revoke without id`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{})
		status, _ := doRequest(t, app, http.MethodDelete, "/application/revoke", token, nil)
		require.Equal(t, fiber.StatusBadRequest, status)
	})
	t.Run(`list with bad status`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{})
		status, _ := doRequest(t, app, http.MethodGet, "/application/pos-1?status=unknown", token, nil)
		require.Equal(t, fiber.StatusBadRequest, status)
	})
	t.Run(`list applicants`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{applicants: []applicationapimodels.ApplicantView{{Username: "kate"}}})
		status, body := doRequest(t, app, http.MethodGet, "/application/pos-1", token, nil)
		require.Equal(t, fiber.StatusOK, status)
		require.Contains(t, string(body), "kate")
	})
	t.Run(`storage error is hidden`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{err: apperrors.New(apperrors.KindStorage, "pq: connection refused")})
		status, body := doRequest(t, app, http.MethodGet, "/application/pos-1", token, nil)
		require.Equal(t, fiber.StatusInternalServerError, status)
		require.NotContains(t, string(body), "connection refused")
	})
	t.Run(`export`, func(t *testing.T) {
		token := initTestAuth(t, true)
		app := newApplicationApp(&applicationMock{})
		req := httptest.NewRequest(http.MethodGet, "/application/pos-1/export", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment; filename=\"applicants-")
	})
}
