package userhandler

import (
	apperrors "collab-backend/lib/utils/app-errors"
	testdb "collab-backend/lib/utils/test-db"
	authapimodels "collab-backend/models/api/auth"
	userapimodels "collab-backend/models/api/user"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type mailerMock struct {
	to      string
	subject string
	message string
}

func (m *mailerMock) SendEMail(to, subject, message string) error {
	m.to = to
	m.subject = subject
	m.message = message
	return nil
}

var (
	selectByEmail     = regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)
	selectByResetCode = regexp.QuoteMeta(`SELECT * FROM "users" WHERE reset_code = $1`)
	selectTaken       = regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 or username = $2`)
	updateUser        = regexp.QuoteMeta(`UPDATE "users" SET`)
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newHandler(t *testing.T, mailer *mailerMock) (impl, sqlmock.Sqlmock) {
	gormDB, mock := testdb.New(t)
	handler := NewInstance(gormDB, log.New(), mailer, Config{
		ResetLink: "https://collab.dev/password-reset/",
		ResetTTL:  time.Hour,
	}).(impl)
	handler.now = func() time.Time { return fixedNow }
	return handler, mock
}

func TestForgotPassword(t *testing.T) {
	t.Run(`unknown email is not reported`, func(t *testing.T) {
		mailer := &mailerMock{}
		handler, mock := newHandler(t, mailer)
		mock.ExpectQuery(selectByEmail).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		require.Nil(t, handler.ForgotPassword("nobody@mail.com"))
		require.Empty(t, mailer.to)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`reset link is sent`, func(t *testing.T) {
		mailer := &mailerMock{}
		handler, mock := newHandler(t, mailer)
		mock.ExpectQuery(selectByEmail).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow("u1", "john@mail.com"))
		mock.ExpectExec(updateUser).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.Nil(t, handler.ForgotPassword("John@mail.com"))
		require.Equal(t, "john@mail.com", mailer.to)
		require.Contains(t, mailer.message, "https://collab.dev/password-reset/")
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestPasswordReset(t *testing.T) {
	data := authapimodels.PasswordResetRequest{Password: "secret123", ConfirmPassword: "secret123"}
	t.Run(`expired code`, func(t *testing.T) {
		handler, mock := newHandler(t, &mailerMock{})
		expired := fixedNow.Add(-time.Minute)
		mock.ExpectQuery(selectByResetCode).
			WillReturnRows(sqlmock.NewRows([]string{"id", "reset_code", "reset_code_expires_at"}).AddRow("u1", "code", expired))

		err := handler.PasswordReset("code", data)
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`unknown code`, func(t *testing.T) {
		handler, mock := newHandler(t, &mailerMock{})
		mock.ExpectQuery(selectByResetCode).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := handler.PasswordReset("code", data)
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`password is replaced and sessions are closed`, func(t *testing.T) {
		handler, mock := newHandler(t, &mailerMock{})
		mock.ExpectQuery(selectByResetCode).
			WillReturnRows(sqlmock.NewRows([]string{"id", "reset_code", "reset_code_expires_at"}).AddRow("u1", "code", fixedNow.Add(time.Minute)))
		mock.ExpectBegin()
		mock.ExpectExec(updateUser).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "bearer_tokens" WHERE user_id = $1`)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		require.Nil(t, handler.PasswordReset("code", data))
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestRegister(t *testing.T) {
	t.Run(`email already taken`, func(t *testing.T) {
		handler, mock := newHandler(t, &mailerMock{})
		mock.ExpectQuery(selectTaken).
			WithArgs("john@mail.com", "john").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username"}).AddRow("u1", "john@mail.com", "other"))

		_, err := handler.Register(userapimodels.RegisterRequest{
			Email:    " John@mail.com ",
			Username: "john",
			Password: "secret123",
		})
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
		require.Nil(t, mock.ExpectationsWereMet())
	})
}
