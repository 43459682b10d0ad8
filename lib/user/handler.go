package userhandler

import (
	"collab-backend/config"
	"collab-backend/db"
	authhandler "collab-backend/lib/auth"
	tokenstore "collab-backend/lib/auth/token-store"
	dictstore "collab-backend/lib/dicts/store"
	technologystore "collab-backend/lib/dicts/technology/store"
	collaboratorstore "collab-backend/lib/project/collaborator-store"
	projectstore "collab-backend/lib/project/store"
	"collab-backend/lib/smtp"
	userstore "collab-backend/lib/user/store"
	apperrors "collab-backend/lib/utils/app-errors"
	authutils "collab-backend/lib/utils/auth-utils"
	"collab-backend/lib/utils/helpers"
	"collab-backend/models"
	authapimodels "collab-backend/models/api/auth"
	userapimodels "collab-backend/models/api/user"
	dbmodels "collab-backend/models/db"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Register(data userapimodels.RegisterRequest) (authapimodels.JWTResponse, error)
	GetProfile(userID string) (userapimodels.ProfileView, error)
	UpdateDetails(userID string, data userapimodels.UpdateDetailsRequest) (userapimodels.UserView, error)
	UpdateUsername(userID string, data userapimodels.UpdateUsernameRequest) error
	UpdateEmail(userID string, data userapimodels.UpdateEmailRequest) error
	UpdatePassword(userID, currentToken string, data userapimodels.UpdatePasswordRequest) error
	Delete(userID string) error
	ForgotPassword(email string) error
	PasswordReset(code string, data authapimodels.PasswordResetRequest) error
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, log.StandardLogger(), smtp.Instance, Config{
		ResetLink: config.Conf.Smtp.PasswordResetLink,
		ResetTTL:  time.Duration(config.Conf.Auth.ResetCodeExpireInSec) * time.Second,
	})
}

type Config struct {
	ResetLink string        // ссылка на страницу сброса пароля, код добавляется в конец
	ResetTTL  time.Duration // время жизни кода сброса
}

func NewInstance(DB *gorm.DB, logger *log.Logger, mailer smtp.Provider, cfg Config) Provider {
	return impl{
		db:                DB,
		store:             userstore.NewInstance(DB),
		technologyStore:   dictstore.NewInstance(DB, dictstore.TableTechnologies),
		languageStore:     dictstore.NewInstance(DB, dictstore.TableLanguages),
		projectStore:      projectstore.NewInstance(DB),
		collaboratorStore: collaboratorstore.NewInstance(DB),
		tokenStore:        tokenstore.NewInstance(DB),
		mailer:            mailer,
		cfg:               cfg,
		logger:            logger,
		now:               time.Now,
	}
}

type impl struct {
	db                *gorm.DB
	store             userstore.Provider
	technologyStore   dictstore.Provider
	languageStore     dictstore.Provider
	projectStore      projectstore.Provider
	collaboratorStore collaboratorstore.Provider
	tokenStore        tokenstore.Provider
	mailer            smtp.Provider
	cfg               Config
	logger            *log.Logger
	now               func() time.Time
}

func (i impl) getLogger(userID string) *log.Entry {
	logger := log.NewEntry(i.logger)
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

func (i impl) checkTags(technologies, languages []string) error {
	technologies = helpers.Unique(technologies)
	count, err := i.technologyStore.CountByIDs(technologies, models.DictStatusAccepted)
	if err != nil {
		return err
	}
	if count != int64(len(technologies)) {
		return apperrors.Validation("указаны несуществующие технологии")
	}
	languages = helpers.Unique(languages)
	count, err = i.languageStore.CountByIDs(languages, models.DictStatusAccepted)
	if err != nil {
		return err
	}
	if count != int64(len(languages)) {
		return apperrors.Validation("указаны несуществующие языки")
	}
	return nil
}

func (i impl) Register(data userapimodels.RegisterRequest) (authapimodels.JWTResponse, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	username := strings.TrimSpace(data.Username)
	existed, err := i.store.FindByEmailOrUsername(email, username)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	for _, rec := range existed {
		if rec.Email == email {
			return authapimodels.JWTResponse{}, apperrors.Conflict("почта уже используется")
		}
		if rec.Username == username {
			return authapimodels.JWTResponse{}, apperrors.Conflict("имя пользователя уже используется")
		}
	}
	if err = i.checkTags(data.Technologies, data.Languages); err != nil {
		return authapimodels.JWTResponse{}, err
	}
	passwordHash, err := authutils.HashPassword(data.Password)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	social := helpers.BuildSocialURLs(data.GithubURL, data.GitlabURL, data.BitbucketURL, data.LinkedinURL)
	rec := dbmodels.User{
		Avatar:       helpers.GravatarURL(email),
		Username:     username,
		Email:        email,
		Password:     passwordHash,
		GithubURL:    social.Github,
		GitlabURL:    social.Gitlab,
		BitbucketURL: social.Bitbucket,
		LinkedinURL:  social.Linkedin,
		Bio:          data.Bio,
	}

	token := ""
	err = i.db.Transaction(func(tx *gorm.DB) error {
		id, err := userstore.NewInstance(tx).Create(rec)
		if err != nil {
			if apperrors.IsDuplicate(err) {
				return apperrors.Conflict("почта или имя пользователя уже используются")
			}
			return errors.Wrap(err, "ошибка создания пользователя")
		}
		rec.ID = id
		relations := technologystore.NewInstance(tx)
		if err = relations.ReplaceUserRelations(id, helpers.Unique(data.Technologies)); err != nil {
			return err
		}
		if err = relations.ReplaceUserLanguages(id, helpers.Unique(data.Languages)); err != nil {
			return err
		}
		token, err = authhandler.IssueToken(tx, rec)
		return err
	})
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	i.getLogger(rec.ID).Info("зарегистрирован пользователь")

	user, err := i.store.GetByID(rec.ID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		user = &rec
	}
	return authapimodels.JWTResponse{
		Token: token,
		User:  userapimodels.UserConvert(*user),
	}, nil
}

func (i impl) GetProfile(userID string) (userapimodels.ProfileView, error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return userapimodels.ProfileView{}, err
	}
	if rec == nil {
		return userapimodels.ProfileView{}, apperrors.NotFound("пользователь не найден")
	}
	owned, err := i.projectStore.ListByOwner(userID)
	if err != nil {
		return userapimodels.ProfileView{}, err
	}
	collaborations, err := i.collaboratorStore.ListByUser(userID)
	if err != nil {
		return userapimodels.ProfileView{}, err
	}
	result := userapimodels.ProfileView{
		UserView:       userapimodels.UserConvert(*rec),
		Projects:       make([]userapimodels.ProjectRef, 0, len(owned)),
		Collaborations: make([]userapimodels.ProjectRef, 0, len(collaborations)),
	}
	for _, project := range owned {
		result.Projects = append(result.Projects, userapimodels.ProjectRef{
			ID:           project.ID,
			Name:         project.Name,
			HasPositions: project.HasPositions,
		})
	}
	for _, item := range collaborations {
		ref := userapimodels.ProjectRef{
			ID:       item.ProjectID,
			Position: item.Position,
		}
		if item.Project != nil {
			ref.Name = item.Project.Name
			ref.HasPositions = item.Project.HasPositions
		}
		result.Collaborations = append(result.Collaborations, ref)
	}
	return result, nil
}

func (i impl) UpdateDetails(userID string, data userapimodels.UpdateDetailsRequest) (userapimodels.UserView, error) {
	if err := i.checkTags(data.Technologies, data.Languages); err != nil {
		return userapimodels.UserView{}, err
	}
	social := helpers.BuildSocialURLs(data.GithubURL, data.GitlabURL, data.BitbucketURL, data.LinkedinURL)
	err := i.db.Transaction(func(tx *gorm.DB) error {
		updMap := map[string]interface{}{
			"bio":          data.Bio,
			"githuburl":    social.Github,
			"gitlaburl":    social.Gitlab,
			"bitbucketurl": social.Bitbucket,
			"linkedinurl":  social.Linkedin,
		}
		err := userstore.NewInstance(tx).Update(userID, updMap)
		if err != nil {
			return err
		}
		relations := technologystore.NewInstance(tx)
		if err = relations.ReplaceUserRelations(userID, helpers.Unique(data.Technologies)); err != nil {
			return err
		}
		return relations.ReplaceUserLanguages(userID, helpers.Unique(data.Languages))
	})
	if err != nil {
		return userapimodels.UserView{}, err
	}
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return userapimodels.UserView{}, err
	}
	if rec == nil {
		return userapimodels.UserView{}, apperrors.NotFound("пользователь не найден")
	}
	return userapimodels.UserConvert(*rec), nil
}

func (i impl) UpdateUsername(userID string, data userapimodels.UpdateUsernameRequest) error {
	username := strings.TrimSpace(data.Username)
	exist, err := i.store.ExistByUsername(username, userID)
	if err != nil {
		return err
	}
	if exist {
		return apperrors.Conflict("имя пользователя уже используется")
	}
	err = i.store.Update(userID, map[string]interface{}{"username": username})
	if err != nil {
		if apperrors.IsDuplicate(err) {
			return apperrors.Conflict("имя пользователя уже используется")
		}
		return err
	}
	return nil
}

func (i impl) UpdateEmail(userID string, data userapimodels.UpdateEmailRequest) error {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	exist, err := i.store.ExistByEmail(email, userID)
	if err != nil {
		return err
	}
	if exist {
		return apperrors.Conflict("почта уже используется")
	}
	updMap := map[string]interface{}{
		"email":  email,
		"avatar": helpers.GravatarURL(email),
	}
	err = i.store.Update(userID, updMap)
	if err != nil {
		if apperrors.IsDuplicate(err) {
			return apperrors.Conflict("почта уже используется")
		}
		return err
	}
	return nil
}

func (i impl) UpdatePassword(userID, currentToken string, data userapimodels.UpdatePasswordRequest) error {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("пользователь не найден")
	}
	if !authutils.CheckPassword(rec.Password, data.OldPassword) {
		return apperrors.Unauthenticated("неверный текущий пароль")
	}
	passwordHash, err := authutils.HashPassword(data.Password)
	if err != nil {
		return err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		err := userstore.NewInstance(tx).Update(userID, map[string]interface{}{"password": passwordHash})
		if err != nil {
			return err
		}
		// остальные сессии завершаются, текущая остается
		return tokenstore.NewInstance(tx).DeleteByUser(userID, currentToken)
	})
	if err != nil {
		return err
	}
	i.getLogger(userID).Info("пароль изменен")
	return nil
}

func (i impl) Delete(userID string) error {
	err := i.store.Delete(userID)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления пользователя")
	}
	i.getLogger(userID).Info("пользователь удален")
	return nil
}

func (i impl) ForgotPassword(email string) error {
	logger := i.getLogger("").WithField("email", email)
	rec, err := i.store.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if rec == nil {
		logger.Info("запрошен сброс пароля для неизвестной почты")
		return nil
	}
	code := uuid.NewString()
	expiresAt := i.now().Add(i.cfg.ResetTTL)
	updMap := map[string]interface{}{
		"reset_code":            code,
		"reset_code_expires_at": expiresAt,
	}
	if err = i.store.Update(rec.ID, updMap); err != nil {
		return err
	}
	link := fmt.Sprintf("%s/%s", strings.TrimRight(i.cfg.ResetLink, "/"), code)
	message := fmt.Sprintf("Для сброса пароля перейдите по ссылке: %s\r\nСсылка действительна до %s.",
		link, expiresAt.Format("02.01.2006 15:04"))
	if err = i.mailer.SendEMail(rec.Email, "Сброс пароля", message); err != nil {
		return err
	}
	logger.WithField("user_id", rec.ID).Info("отправлена ссылка для сброса пароля")
	return nil
}

func (i impl) PasswordReset(code string, data authapimodels.PasswordResetRequest) error {
	rec, err := i.store.GetByResetCode(code)
	if err != nil {
		return err
	}
	if rec == nil || rec.ResetCodeExpiresAt == nil || rec.ResetCodeExpiresAt.Before(i.now()) {
		return apperrors.NotFound("ссылка для сброса пароля недействительна")
	}
	passwordHash, err := authutils.HashPassword(data.Password)
	if err != nil {
		return err
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		updMap := map[string]interface{}{
			"password":              passwordHash,
			"reset_code":            nil,
			"reset_code_expires_at": nil,
		}
		if err := userstore.NewInstance(tx).Update(rec.ID, updMap); err != nil {
			return err
		}
		return tokenstore.NewInstance(tx).DeleteByUser(rec.ID, "")
	})
	if err != nil {
		return err
	}
	i.getLogger(rec.ID).Info("пароль сброшен")
	return nil
}
