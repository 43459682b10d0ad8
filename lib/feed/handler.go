package feedhandler

import (
	"collab-backend/db"
	applicationstore "collab-backend/lib/application/store"
	positionstore "collab-backend/lib/position/store"
	projectstore "collab-backend/lib/project/store"
	userstore "collab-backend/lib/user/store"
	applicationapimodels "collab-backend/models/api/application"
	feedapimodels "collab-backend/models/api/feed"
	positionapimodels "collab-backend/models/api/position"
	projectapimodels "collab-backend/models/api/project"
	dbmodels "collab-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const feedLimit = 10

type Provider interface {
	GetUserFeed(userID string) (feedapimodels.Feed, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, log.StandardLogger())
}

func NewInstance(DB *gorm.DB, logger *log.Logger) Provider {
	return impl{
		userStore:        userstore.NewInstance(DB),
		projectStore:     projectstore.NewInstance(DB),
		positionStore:    positionstore.NewInstance(DB),
		applicationStore: applicationstore.NewInstance(DB),
		logger:           logger,
	}
}

type impl struct {
	userStore        userstore.Provider
	projectStore     projectstore.Provider
	positionStore    positionstore.Provider
	applicationStore applicationstore.Provider
	logger           *log.Logger
}

func (i impl) GetUserFeed(userID string) (feedapimodels.Feed, error) {
	projects, err := i.projectStore.Latest(feedLimit)
	if err != nil {
		return feedapimodels.Feed{}, errors.Wrap(err, "ошибка получения последних проектов")
	}
	technologies, err := i.userStore.TechnologyIDs(userID)
	if err != nil {
		return feedapimodels.Feed{}, err
	}
	positions, err := i.positionStore.ListRecommended(userID, technologies, feedLimit)
	if err != nil {
		return feedapimodels.Feed{}, errors.Wrap(err, "ошибка получения позиций")
	}
	applications, err := i.applicationStore.ListPendingByOwner(userID, feedLimit)
	if err != nil {
		return feedapimodels.Feed{}, err
	}
	result := feedapimodels.Feed{
		Projects:     make([]projectapimodels.ProjectView, 0, len(projects)),
		Positions:    make([]positionapimodels.PositionView, 0, len(positions)),
		Applications: make([]applicationapimodels.ApplicantView, 0, len(applications)),
	}
	for _, rec := range projects {
		result.Projects = append(result.Projects, projectapimodels.ProjectConvert(dbmodels.ProjectExt{Project: rec}))
	}
	for _, rec := range positions {
		result.Positions = append(result.Positions, positionapimodels.PositionConvert(rec))
	}
	for _, rec := range applications {
		result.Applications = append(result.Applications, applicationapimodels.ApplicantConvert(rec))
	}
	log.NewEntry(i.logger).
		WithField("user_id", userID).
		WithField("positions", len(result.Positions)).
		Debug("сформирована лента")
	return result, nil
}
