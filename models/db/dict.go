package dbmodels

type Technology struct {
	DictModel
}

type Language struct {
	DictModel
}

type Role struct {
	DictModel
}

type Level struct {
	DictModel
}
