package projecthandler

import (
	apperrors "collab-backend/lib/utils/app-errors"
	testdb "collab-backend/lib/utils/test-db"
	projectapimodels "collab-backend/models/api/project"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var (
	lockOwner          = regexp.QuoteMeta(`SELECT "owner_id" FROM "projects" WHERE id = $1 FOR UPDATE`)
	countTechnologies  = regexp.QuoteMeta(`SELECT count(*) FROM "technologies" WHERE id in ($1,$2)`)
	selectProjectTech  = regexp.QuoteMeta(`SELECT "technology_id" FROM "projects_technologies_relations" WHERE project_id = $1`)
	selectUsedTech     = regexp.QuoteMeta(`positions_technologies_relations ptr`)
	deleteCollaborator = regexp.QuoteMeta(`DELETE FROM "collaborators" WHERE project_id = $1 AND user_id = $2`)
)

func newHandler(t *testing.T) (Provider, sqlmock.Sqlmock) {
	gormDB, mock := testdb.New(t)
	return NewInstance(gormDB, log.New()), mock
}

func projectData(technologies ...string) projectapimodels.ProjectData {
	return projectapimodels.ProjectData{
		Name:         "Collab",
		Description:  "Платформа для поиска команды",
		Technologies: technologies,
	}
}

func TestUpdate(t *testing.T) {
	t.Run(`technology used by position can not be removed`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockOwner).
			WithArgs("project-1").
			WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner-1"))
		mock.ExpectQuery(countTechnologies).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(selectProjectTech).
			WithArgs("project-1").
			WillReturnRows(sqlmock.NewRows([]string{"technology_id"}).AddRow("go").AddRow("postgres").AddRow("docker"))
		mock.ExpectQuery(selectUsedTech).
			WithArgs("project-1", "docker").
			WillReturnRows(sqlmock.NewRows([]string{"technology_id"}).AddRow("docker"))
		mock.ExpectRollback()

		_, err := handler.Update("project-1", "owner-1", projectData("go", "postgres"))
		require.True(t, apperrors.Is(err, apperrors.KindInvalidTechnologySet))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`unknown technology`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockOwner).
			WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner-1"))
		mock.ExpectQuery(countTechnologies).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		_, err := handler.Update("project-1", "owner-1", projectData("go", "cobol"))
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`not owner`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockOwner).
			WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner-1"))
		mock.ExpectRollback()

		_, err := handler.Update("project-1", "stranger", projectData("go"))
		require.True(t, apperrors.Is(err, apperrors.KindNotAuthorized))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`missing project`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectBegin()
		mock.ExpectQuery(lockOwner).
			WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))
		mock.ExpectRollback()

		_, err := handler.Update("project-1", "owner-1", projectData("go"))
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveProject(t *testing.T) {
	t.Run(`collaborator leaves`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectExec(deleteCollaborator).
			WithArgs("project-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.Nil(t, handler.LeaveProject("user-1", "project-1"))
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`not a collaborator`, func(t *testing.T) {
		handler, mock := newHandler(t)
		mock.ExpectExec(deleteCollaborator).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := handler.LeaveProject("user-1", "project-1")
		require.True(t, apperrors.Is(err, apperrors.KindNotFound))
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestDifference(t *testing.T) {
	require.Equal(t, []string{"docker"}, difference([]string{"go", "docker"}, []string{"go", "rust"}))
	require.Empty(t, difference([]string{"go"}, []string{"go"}))
}
