package apimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagination(t *testing.T) {
	t.Run(`zero values use defaults`, func(t *testing.T) {
		p := Pagination{}
		require.Nil(t, p.Validate())
		page, limit := p.GetPage()
		require.Equal(t, 1, page)
		require.Equal(t, 10, limit)
	})
	t.Run(`explicit page`, func(t *testing.T) {
		p := Pagination{Page: 3, Limit: 25}
		require.Nil(t, p.Validate())
		page, limit := p.GetPage()
		require.Equal(t, 3, page)
		require.Equal(t, 25, limit)
	})
	t.Run(`max limit is accepted`, func(t *testing.T) {
		require.Nil(t, Pagination{Limit: 100}.Validate())
	})
	t.Run(`negative page`, func(t *testing.T) {
		require.NotNil(t, Pagination{Page: -1}.Validate())
	})
	t.Run(`negative limit`, func(t *testing.T) {
		require.NotNil(t, Pagination{Limit: -5}.Validate())
	})
	t.Run(`limit over max`, func(t *testing.T) {
		err := Pagination{Limit: 101}.Validate()
		require.NotNil(t, err)
		require.Contains(t, err.Error(), "100")
	})
}
