package models

// PositionSort допустимые варианты сортировки списка позиций
type PositionSort string

const (
	PositionSortNameAsc  PositionSort = "nameasc"
	PositionSortNameDesc PositionSort = "namedesc"
	PositionSortDateAsc  PositionSort = "dateasc"
	PositionSortDateDesc PositionSort = "datedesc"
)

func (s PositionSort) IsValid() bool {
	switch s {
	case PositionSortNameAsc, PositionSortNameDesc, PositionSortDateAsc, PositionSortDateDesc:
		return true
	}
	return false
}

// OrderClause выражение сортировки, никогда не берется из запроса напрямую
func (s PositionSort) OrderClause() string {
	switch s {
	case PositionSortNameAsc:
		return "positions.title asc"
	case PositionSortNameDesc:
		return "positions.title desc"
	case PositionSortDateAsc:
		return "positions.created_at asc"
	default:
		return "positions.created_at desc"
	}
}

// TechnologyMatch способ сопоставления набора технологий в фильтре
type TechnologyMatch string

const (
	TechnologyMatchAny TechnologyMatch = "any" // пересечение
	TechnologyMatchAll TechnologyMatch = "all" // позиция содержит все технологии фильтра
)

func (m TechnologyMatch) IsValid() bool {
	return m == TechnologyMatchAny || m == TechnologyMatchAll
}
