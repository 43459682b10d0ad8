package db

import (
	dictstore "collab-backend/lib/dicts/store"
)

func InitPreload(dir string) {
	fillCatalog(dir, dictstore.TableTechnologies)
	fillCatalog(dir, dictstore.TableLanguages)
	fillCatalog(dir, dictstore.TableRoles)
	fillCatalog(dir, dictstore.TableLevels)
}
