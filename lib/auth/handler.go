package authhandler

import (
	"collab-backend/db"
	tokenstore "collab-backend/lib/auth/token-store"
	userstore "collab-backend/lib/user/store"
	apperrors "collab-backend/lib/utils/app-errors"
	authutils "collab-backend/lib/utils/auth-utils"
	authapimodels "collab-backend/models/api/auth"
	userapimodels "collab-backend/models/api/user"
	dbmodels "collab-backend/models/db"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Login(email, password string) (authapimodels.JWTResponse, error)
	IsTokenActive(token string) (bool, error)
	Logout(token string) error
	LogoutAll(userID string) error
	CleanupExpired(now time.Time) (tokens, resetCodes int64, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, log.StandardLogger())
}

func NewInstance(DB *gorm.DB, logger *log.Logger) Provider {
	return impl{
		db:         DB,
		userStore:  userstore.NewInstance(DB),
		tokenStore: tokenstore.NewInstance(DB),
		logger:     logger,
	}
}

type impl struct {
	db         *gorm.DB
	userStore  userstore.Provider
	tokenStore tokenstore.Provider
	logger     *log.Logger
}

// IssueToken выдает JWT и сохраняет его в bearer_tokens, tx может быть транзакцией
func IssueToken(tx *gorm.DB, user dbmodels.User) (string, error) {
	token, expiresAt, err := authutils.GetToken(user.ID, user.Username, user.Email)
	if err != nil {
		return "", errors.Wrap(err, "ошибка генерации токена")
	}
	err = tokenstore.NewInstance(tx).Create(dbmodels.BearerToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (i impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	rec, err := i.userStore.FindByEmail(email)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if rec == nil || !authutils.CheckPassword(rec.Password, password) {
		return authapimodels.JWTResponse{}, apperrors.Unauthenticated("неверная почта или пароль")
	}
	user, err := i.userStore.GetByID(rec.ID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		return authapimodels.JWTResponse{}, apperrors.Unauthenticated("неверная почта или пароль")
	}
	token, err := IssueToken(i.db, *user)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	i.logger.WithField("user_id", user.ID).Info("пользователь вошел в систему")
	return authapimodels.JWTResponse{
		Token: token,
		User:  userapimodels.UserConvert(*user),
	}, nil
}

func (i impl) IsTokenActive(token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return i.tokenStore.Exist(token, time.Now())
}

func (i impl) Logout(token string) error {
	return i.tokenStore.Delete(token)
}

func (i impl) LogoutAll(userID string) error {
	err := i.tokenStore.DeleteByUser(userID, "")
	if err != nil {
		return err
	}
	i.logger.WithField("user_id", userID).Info("все сессии пользователя завершены")
	return nil
}

func (i impl) CleanupExpired(now time.Time) (tokens, resetCodes int64, err error) {
	tokens, err = i.tokenStore.DeleteExpired(now)
	if err != nil {
		return 0, 0, err
	}
	resetCodes, err = i.userStore.ClearExpiredResetCodes(now)
	if err != nil {
		return tokens, 0, err
	}
	return tokens, resetCodes, nil
}
