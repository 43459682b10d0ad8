package positionhandler

import (
	apperrors "collab-backend/lib/utils/app-errors"
	testdb "collab-backend/lib/utils/test-db"
	positionapimodels "collab-backend/models/api/position"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const (
	ownerID    = "owner-1"
	projectID  = "project-1"
	positionID = "position-1"
)

var (
	selectRole          = regexp.QuoteMeta(`SELECT * FROM "roles" WHERE id = $1`)
	selectLevel         = regexp.QuoteMeta(`SELECT * FROM "levels" WHERE id = $1`)
	lockProjectOwner    = regexp.QuoteMeta(`SELECT "owner_id" FROM "projects" WHERE id = $1 FOR UPDATE`)
	selectProjectTech   = regexp.QuoteMeta(`SELECT "technology_id" FROM "projects_technologies_relations" WHERE project_id = $1`)
	insertPosition      = regexp.QuoteMeta(`INSERT INTO "positions"`)
	selectPositionByID  = regexp.QuoteMeta(`SELECT * FROM "positions" WHERE id = $1 ORDER BY`)
	updatePosition      = regexp.QuoteMeta(`UPDATE "positions" SET`)
	setHasPositions     = regexp.QuoteMeta(`UPDATE "projects" SET "has_positions"=$1`)
	deletePositionTech  = regexp.QuoteMeta(`DELETE FROM "positions_technologies_relations" WHERE position_id = $1`)
	insertPositionTech  = regexp.QuoteMeta(`INSERT INTO "positions_technologies_relations"`)
	selectOpenPosition  = regexp.QuoteMeta(`WHERE positions.id = $1 AND positions.vacancies > 0`)
	preloadLevel        = regexp.QuoteMeta(`SELECT * FROM "levels" WHERE "levels"."id" = $1`)
	preloadProject      = regexp.QuoteMeta(`SELECT * FROM "projects" WHERE "projects"."id" = $1`)
	preloadRole         = regexp.QuoteMeta(`SELECT * FROM "roles" WHERE "roles"."id" = $1`)
	preloadTechnologies = regexp.QuoteMeta(`SELECT * FROM "positions_technologies_relations" WHERE "positions_technologies_relations"."position_id" = $1`)
	selectOwnedPosition = regexp.QuoteMeta(`SELECT * FROM "positions" WHERE id = $1 AND user_id = $2`)
	deletePosition      = regexp.QuoteMeta(`DELETE FROM "positions" WHERE id = $1 AND user_id = $2`)
	recomputeProject    = regexp.QuoteMeta(`UPDATE "projects" SET "has_positions"=EXISTS (select 1 from positions where project_id = $1 and vacancies > 0)`)
)

func newHandler(t *testing.T) (Provider, sqlmock.Sqlmock) {
	gormDB, mock := testdb.New(t)
	return NewInstance(gormDB, log.New()), mock
}

func positionData(technologies ...string) positionapimodels.PositionData {
	return positionapimodels.PositionData{
		ProjectID:    projectID,
		Title:        "Backend developer",
		Description:  "Разработка сервисов на Go",
		RoleID:       "role-1",
		LevelID:      "level-1",
		Vacancies:    2,
		Technologies: technologies,
	}
}

func expectDictionaries(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(selectRole).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).AddRow("role-1", "Backend"))
	mock.ExpectQuery(selectLevel).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).AddRow("level-1", "Middle"))
}

func expectOwner(mock sqlmock.Sqlmock, owner string) {
	mock.ExpectQuery(lockProjectOwner).
		WithArgs(projectID).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(owner))
}

func expectOpenPosition(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(selectOpenPosition).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "user_id", "title", "vacancies", "role_id", "level_id", "applicants"}).
			AddRow(positionID, projectID, ownerID, "Backend developer", 2, "role-1", "level-1", 0))
	mock.ExpectQuery(preloadLevel).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).AddRow("level-1", "Middle"))
	mock.ExpectQuery(preloadProject).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(projectID, "Collab"))
	mock.ExpectQuery(preloadRole).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).AddRow("role-1", "Backend"))
	mock.ExpectQuery(preloadTechnologies).
		WillReturnRows(sqlmock.NewRows([]string{"position_id", "technology_id"}))
}

func TestCreate(t *testing.T) {
	t.Run(`technologies of the project are accepted`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectBegin()
		expectDictionaries(mock)
		expectOwner(mock, ownerID)
		mock.ExpectQuery(selectProjectTech).
			WithArgs(projectID).
			WillReturnRows(sqlmock.NewRows([]string{"technology_id"}).AddRow("go").AddRow("postgres").AddRow("docker"))
		mock.ExpectQuery(insertPosition).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(positionID))
		mock.ExpectExec(setHasPositions).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(deletePositionTech).
			WithArgs(positionID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(insertPositionTech).
			WithArgs(positionID, "go", positionID, "postgres").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()
		expectOpenPosition(mock)

		view, err := handler.Create(ownerID, positionData("go", "postgres", "go"))
		require.Nil(t, err)
		require.Equal(t, positionID, view.ID)
		require.Equal(t, "Middle", view.Level.Label)
		require.Equal(t, "Backend", view.Role.Label)
		require.Equal(t, "Collab", view.ProjectName)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`requester is not project owner`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectBegin()
		expectDictionaries(mock)
		expectOwner(mock, ownerID)
		mock.ExpectRollback()

		_, err := handler.Create("stranger", positionData("go"))
		require.True(t, apperrors.Is(err, apperrors.KindNotAuthorized))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`missing project`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectBegin()
		expectDictionaries(mock)
		mock.ExpectQuery(lockProjectOwner).
			WithArgs(projectID).
			WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))
		mock.ExpectRollback()

		_, err := handler.Create(ownerID, positionData("go"))
		require.True(t, apperrors.Is(err, apperrors.KindNotAuthorized))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`technology outside of project`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectBegin()
		expectDictionaries(mock)
		expectOwner(mock, ownerID)
		mock.ExpectQuery(selectProjectTech).
			WillReturnRows(sqlmock.NewRows([]string{"technology_id"}).AddRow("go"))
		mock.ExpectRollback()

		_, err := handler.Create(ownerID, positionData("go", "rust"))
		require.True(t, apperrors.Is(err, apperrors.KindInvalidTechnologySet))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`unknown role`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectRole).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := handler.Create(ownerID, positionData("go"))
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestUpdate(t *testing.T) {
	expectStored := func(mock sqlmock.Sqlmock) {
		mock.ExpectQuery(selectPositionByID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "user_id", "vacancies"}).AddRow(positionID, projectID, ownerID, 2))
	}

	t.Run(`technologies are checked again and relations replaced`, func(t *testing.T) {
		handler, mock := newHandler(t)
		expectStored(mock)
		mock.ExpectBegin()
		expectDictionaries(mock)
		expectOwner(mock, ownerID)
		mock.ExpectQuery(selectProjectTech).
			WithArgs(projectID).
			WillReturnRows(sqlmock.NewRows([]string{"technology_id"}).AddRow("go").AddRow("postgres").AddRow("docker"))
		mock.ExpectExec(updatePosition).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(deletePositionTech).
			WithArgs(positionID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(insertPositionTech).
			WithArgs(positionID, "docker").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(recomputeProject).
			WithArgs(projectID, sqlmock.AnyArg(), projectID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		expectOpenPosition(mock)

		data := positionData("docker")
		data.ProjectID = "other-project"
		view, err := handler.Update(positionID, ownerID, data)
		require.Nil(t, err)
		require.Equal(t, positionID, view.ID)
		require.Equal(t, projectID, view.ProjectID)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`technology removed from project is rejected`, func(t *testing.T) {
		handler, mock := newHandler(t)
		expectStored(mock)
		mock.ExpectBegin()
		expectDictionaries(mock)
		expectOwner(mock, ownerID)
		mock.ExpectQuery(selectProjectTech).
			WillReturnRows(sqlmock.NewRows([]string{"technology_id"}).AddRow("go"))
		mock.ExpectRollback()

		_, err := handler.Update(positionID, ownerID, positionData("go", "postgres"))
		require.True(t, apperrors.Is(err, apperrors.KindInvalidTechnologySet))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`requester is not project owner`, func(t *testing.T) {
		handler, mock := newHandler(t)
		expectStored(mock)
		mock.ExpectBegin()
		expectDictionaries(mock)
		expectOwner(mock, ownerID)
		mock.ExpectRollback()

		_, err := handler.Update(positionID, "stranger", positionData("go"))
		require.True(t, apperrors.Is(err, apperrors.KindNotAuthorized))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`missing position`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectQuery(selectPositionByID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := handler.Update(positionID, ownerID, positionData("go"))
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestGetByID(t *testing.T) {
	t.Run(`closed position is not found`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectQuery(selectOpenPosition).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := handler.GetByID(positionID)
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	t.Run(`owner deletes position`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectQuery(selectOwnedPosition).
			WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "user_id"}).AddRow(positionID, projectID, ownerID))
		mock.ExpectBegin()
		mock.ExpectExec(deletePosition).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(recomputeProject).
			WithArgs(projectID, sqlmock.AnyArg(), projectID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.Nil(t, handler.Delete(positionID, ownerID))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`position of another user`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectQuery(selectOwnedPosition).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		err := handler.Delete(positionID, "stranger")
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestIsSubset(t *testing.T) {
	require.True(t, isSubset([]string{"go", "postgres"}, []string{"postgres", "go", "docker"}))
	require.True(t, isSubset([]string{}, []string{"go"}))
	require.False(t, isSubset([]string{"go", "rust"}, []string{"go"}))
	require.False(t, isSubset([]string{"go"}, nil))
}
