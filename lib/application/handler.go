package applicationhandler

import (
	"bytes"
	"collab-backend/db"
	applicationstore "collab-backend/lib/application/store"
	xlsexport "collab-backend/lib/export/xls"
	"collab-backend/lib/metrics"
	positionstore "collab-backend/lib/position/store"
	collaboratorstore "collab-backend/lib/project/collaborator-store"
	projectstore "collab-backend/lib/project/store"
	apperrors "collab-backend/lib/utils/app-errors"
	"collab-backend/models"
	applicationapimodels "collab-backend/models/api/application"
	dbmodels "collab-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(applicantID, positionID string) (applicationapimodels.ApplicationView, error)
	ListByPosition(ownerID, positionID string, status models.ApplicationStatus) ([]applicationapimodels.ApplicantView, error)
	Accept(ownerID, positionID, applicantID string) error
	Decline(ownerID, positionID, applicantID string) error
	Revoke(applicantID, applicationID string) error
	Export(ownerID, positionID string, status models.ApplicationStatus) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, log.StandardLogger(), xlsexport.Instance)
}

func NewInstance(DB *gorm.DB, logger *log.Logger, exporter xlsexport.Provider) Provider {
	return impl{
		db:            DB,
		store:         applicationstore.NewInstance(DB),
		positionStore: positionstore.NewInstance(DB),
		exporter:      exporter,
		logger:        logger,
	}
}

type impl struct {
	db            *gorm.DB
	store         applicationstore.Provider
	positionStore positionstore.Provider
	exporter      xlsexport.Provider
	logger        *log.Logger
}

func (i impl) getLogger(positionID, userID string) *log.Entry {
	logger := log.NewEntry(i.logger)
	if positionID != "" {
		logger = logger.WithField("position_id", positionID)
	}
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}

func (i impl) Create(applicantID, positionID string) (applicationapimodels.ApplicationView, error) {
	rec := dbmodels.Application{
		UserID:     applicantID,
		PositionID: positionID,
		Status:     models.ApplicationStatusPending,
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		position, err := positionstore.NewInstance(tx).GetForApply(positionID, applicantID)
		if err != nil {
			return err
		}
		if position == nil {
			return apperrors.Unprocessable("невозможно откликнуться на позицию")
		}
		id, err := applicationstore.NewInstance(tx).Create(rec)
		if err != nil {
			if apperrors.IsDuplicate(err) {
				return apperrors.Conflict("отклик на позицию уже отправлен")
			}
			return errors.Wrap(err, "ошибка создания отклика")
		}
		rec.ID = id
		return nil
	})
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	metrics.ApplicationCreated()
	i.getLogger(positionID, applicantID).
		WithField("application_id", rec.ID).
		Info("создан отклик")
	return applicationapimodels.ApplicationConvert(rec), nil
}

func (i impl) ListByPosition(ownerID, positionID string, status models.ApplicationStatus) ([]applicationapimodels.ApplicantView, error) {
	list, err := i.store.ListApplicants(ownerID, positionID, status)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, apperrors.NotFound("позиция не принадлежит пользователю или откликов нет")
	}
	result := make([]applicationapimodels.ApplicantView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ApplicantConvert(rec))
	}
	return result, nil
}

// Accept принимает отклик: место списывается, кандидат становится участником проекта,
// has_positions проекта пересчитывается. Все шаги в одной транзакции.
func (i impl) Accept(ownerID, positionID, applicantID string) error {
	logger := i.getLogger(positionID, ownerID).WithField("applicant_id", applicantID)
	err := i.db.Transaction(func(tx *gorm.DB) error {
		positions := positionstore.NewInstance(tx)
		position, err := positions.GetOwned(positionID, ownerID)
		if err != nil {
			return err
		}
		if position == nil {
			return apperrors.NotFound("позиция не найдена")
		}
		_, ok, err := positions.DecrementVacancy(positionID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.NoVacancy("на позиции не осталось свободных мест")
		}
		_, err = collaboratorstore.NewInstance(tx).Create(dbmodels.Collaborator{
			UserID:    applicantID,
			ProjectID: position.ProjectID,
			Position:  position.Title,
		})
		if err != nil {
			if apperrors.IsDuplicate(err) {
				return apperrors.Conflict("пользователь уже участник проекта")
			}
			return errors.Wrap(err, "ошибка добавления участника проекта")
		}
		updated, err := applicationstore.NewInstance(tx).Resolve(positionID, applicantID, models.ApplicationStatusAccepted)
		if err != nil {
			return err
		}
		if !updated {
			return apperrors.NotFound("отклик в ожидании не найден")
		}
		return projectstore.NewInstance(tx).RecomputeHasPositions(position.ProjectID)
	})
	if err != nil {
		return err
	}
	metrics.ApplicationResolved(string(models.ApplicationStatusAccepted))
	logger.Info("отклик принят")
	return nil
}

func (i impl) Decline(ownerID, positionID, applicantID string) error {
	logger := i.getLogger(positionID, ownerID).WithField("applicant_id", applicantID)
	position, err := i.positionStore.GetOwned(positionID, ownerID)
	if err != nil {
		return err
	}
	if position == nil {
		return apperrors.NotAuthorized("позиция не принадлежит пользователю")
	}
	updated, err := i.store.Resolve(positionID, applicantID, models.ApplicationStatusDeclined)
	if err != nil {
		return err
	}
	if !updated {
		return apperrors.Conflict("отклик уже рассмотрен или не найден")
	}
	metrics.ApplicationResolved(string(models.ApplicationStatusDeclined))
	logger.Info("отклик отклонен")
	return nil
}

func (i impl) Revoke(applicantID, applicationID string) error {
	rec, err := i.store.GetByID(applicationID)
	if err != nil {
		return err
	}
	if rec == nil {
		return apperrors.NotFound("отклик не найден")
	}
	if rec.UserID != applicantID {
		return apperrors.NotAuthorized("отклик принадлежит другому пользователю")
	}
	if rec.Status != models.ApplicationStatusPending {
		return apperrors.Conflict("отозвать можно только отклик в ожидании")
	}
	if err = i.store.Delete(applicationID); err != nil {
		return err
	}
	i.getLogger(rec.PositionID, applicantID).
		WithField("application_id", applicationID).
		Info("отклик отозван")
	return nil
}

func (i impl) Export(ownerID, positionID string, status models.ApplicationStatus) (*bytes.Buffer, error) {
	position, err := i.positionStore.GetOwned(positionID, ownerID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, apperrors.NotFound("позиция не принадлежит пользователю")
	}
	list, err := i.store.ListApplicants(ownerID, positionID, status)
	if err != nil {
		return nil, err
	}
	return i.exporter.ExportApplicants(position.Title, list)
}
