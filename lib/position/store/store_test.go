package positionstore

import (
	testdb "collab-backend/lib/utils/test-db"
	"collab-backend/models"
	apimodels "collab-backend/models/api"
	positionapimodels "collab-backend/models/api/position"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

const requesterID = "user-1"

var (
	countOpenForeign  = regexp.QuoteMeta(`SELECT count(*) FROM "positions" WHERE positions.user_id <> $1 AND positions.vacancies > 0`)
	selectOpenForeign = regexp.QuoteMeta(`SELECT positions.*, ` + applicantsSelect + ` FROM "positions" WHERE positions.user_id <> $1 AND positions.vacancies > 0`)
	titleLike         = regexp.QuoteMeta(`AND LOWER(positions.title) like $2`)
	anyTechnology     = regexp.QuoteMeta(`AND positions.id in (SELECT position_id FROM "positions_technologies_relations" WHERE technology_id in ($2,$3))`)
	groupByPosition   = regexp.QuoteMeta(`GROUP BY "position_id" HAVING count(distinct technology_id) = $4`)
	selectByProject   = regexp.QuoteMeta(`SELECT positions.*, ` + applicantsSelect + ` FROM "positions" WHERE positions.project_id = $1 AND positions.vacancies > 0 ORDER BY positions.title asc`)
	preloadLevel      = regexp.QuoteMeta(`SELECT * FROM "levels" WHERE "levels"."id" = $1`)
	preloadRole       = regexp.QuoteMeta(`SELECT * FROM "roles" WHERE "roles"."id" = $1`)
	preloadTechnology = regexp.QuoteMeta(`SELECT * FROM "positions_technologies_relations" WHERE "positions_technologies_relations"."position_id" IN ($1,$2)`)
	decrementVacancy  = regexp.QuoteMeta(`UPDATE positions SET vacancies = vacancies - 1, updated_at = now() WHERE id = $1 AND vacancies > 0 RETURNING vacancies`)
)

func newStore(t *testing.T) (Provider, sqlmock.Sqlmock) {
	gormDB, mock := testdb.New(t)
	return NewInstance(gormDB), mock
}

func TestListAllCount(t *testing.T) {
	t.Run(`own and closed positions are excluded`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(countOpenForeign + `$`).
			WithArgs(requesterID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		count, err := store.ListAllCount(requesterID, positionapimodels.PositionFilter{})
		require.Nil(t, err)
		require.Equal(t, int64(4), count)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`search is case insensitive`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(countOpenForeign+` `+titleLike).
			WithArgs(requesterID, "%backend dev%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		count, err := store.ListAllCount(requesterID, positionapimodels.PositionFilter{Search: "Backend Dev"})
		require.Nil(t, err)
		require.Equal(t, int64(1), count)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`any matches intersection`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(countOpenForeign+` `+anyTechnology).
			WithArgs(requesterID, "go", "postgres").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := store.ListAllCount(requesterID, positionapimodels.PositionFilter{
			Technologies: []string{"go", "postgres"},
			Match:        models.TechnologyMatchAny,
		})
		require.Nil(t, err)
		require.Equal(t, int64(3), count)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`all requires every technology`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(countOpenForeign+`.+`+groupByPosition).
			WithArgs(requesterID, "go", "postgres", 2).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		count, err := store.ListAllCount(requesterID, positionapimodels.PositionFilter{
			Technologies: []string{"go", "postgres"},
			Match:        models.TechnologyMatchAll,
		})
		require.Nil(t, err)
		require.Equal(t, int64(1), count)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`any does not group`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(anyTechnology + `$`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		_, err := store.ListAllCount(requesterID, positionapimodels.PositionFilter{
			Technologies: []string{"go", "postgres"},
			Match:        models.TechnologyMatchAny,
		})
		require.Nil(t, err)
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestListAll(t *testing.T) {
	sorts := map[models.PositionSort]string{
		models.PositionSortNameAsc:  "ORDER BY positions.title asc",
		models.PositionSortNameDesc: "ORDER BY positions.title desc",
		models.PositionSortDateAsc:  "ORDER BY positions.created_at asc",
		models.PositionSortDateDesc: "ORDER BY positions.created_at desc",
		"":                          "ORDER BY positions.created_at desc",
	}
	for sort, order := range sorts {
		sort, order := sort, order
		t.Run(`sort `+string(sort), func(t *testing.T) {
			store, mock := newStore(t)
			mock.ExpectQuery(selectOpenForeign + ` ` + regexp.QuoteMeta(order+` LIMIT $2`) + `$`).
				WithArgs(requesterID, sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id"}))

			list, err := store.ListAll(requesterID, positionapimodels.PositionFilter{Sort: sort})
			require.Nil(t, err)
			require.Empty(t, list)
			require.Nil(t, mock.ExpectationsWereMet())
		})
	}
	t.Run(`second page`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY positions.title asc LIMIT $4 OFFSET $5`)).
			WithArgs(requesterID, "go", "postgres", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		list, err := store.ListAll(requesterID, positionapimodels.PositionFilter{
			Pagination:   apimodels.Pagination{Page: 2, Limit: 5},
			Technologies: []string{"go", "postgres"},
			Match:        models.TechnologyMatchAny,
			Sort:         models.PositionSortNameAsc,
		})
		require.Nil(t, err)
		require.Empty(t, list)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`sort value never reaches sql`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY positions.created_at desc LIMIT $2`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.ListAll(requesterID, positionapimodels.PositionFilter{Sort: "title; drop table positions"})
		require.Nil(t, err)
		require.Nil(t, mock.ExpectationsWereMet())
	})
}

func TestListByProject(t *testing.T) {
	t.Run(`ordered by title with pending applicants`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(selectByProject + `$`).
			WithArgs("project-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "title", "vacancies", "role_id", "level_id", "applicants"}).
				AddRow("position-1", "project-1", "Backend developer", 2, "role-1", "level-1", 3).
				AddRow("position-2", "project-1", "Frontend developer", 1, "role-1", "level-1", 0))
		mock.ExpectQuery(preloadLevel).
			WithArgs("level-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).AddRow("level-1", "Middle"))
		mock.ExpectQuery(preloadRole).
			WithArgs("role-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).AddRow("role-1", "Developer"))
		mock.ExpectQuery(preloadTechnology).
			WithArgs("position-1", "position-2").
			WillReturnRows(sqlmock.NewRows([]string{"position_id", "technology_id"}))

		list, err := store.ListByProject("project-1")
		require.Nil(t, err)
		require.Len(t, list, 2)
		require.Equal(t, "Backend developer", list[0].Title)
		require.Equal(t, int64(3), list[0].Applicants)
		require.Equal(t, int64(0), list[1].Applicants)
		require.Equal(t, "Middle", list[1].Level.Label)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`applicants count only pending`, func(t *testing.T) {
		require.Contains(t, applicantsSelect, "a.status = 'pending'")
		require.Contains(t, applicantsSelect, "a.position_id = positions.id")
	})
}

func TestDecrementVacancy(t *testing.T) {
	t.Run(`last vacancy`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(decrementVacancy).
			WithArgs("position-1").
			WillReturnRows(sqlmock.NewRows([]string{"vacancies"}).AddRow(0))

		remaining, ok, err := store.DecrementVacancy("position-1")
		require.Nil(t, err)
		require.True(t, ok)
		require.Equal(t, 0, remaining)
		require.Nil(t, mock.ExpectationsWereMet())
	})
	t.Run(`no vacancies left`, func(t *testing.T) {
		store, mock := newStore(t)
		mock.ExpectQuery(decrementVacancy).
			WithArgs("position-1").
			WillReturnRows(sqlmock.NewRows([]string{"vacancies"}))

		_, ok, err := store.DecrementVacancy("position-1")
		require.Nil(t, err)
		require.False(t, ok)
		require.Nil(t, mock.ExpectationsWereMet())
	})
}
