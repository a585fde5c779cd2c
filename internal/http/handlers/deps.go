package handlers

import (
	"selectshop/internal/repos"
	"selectshop/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler *ProductHandler
	FolderHandler  *FolderHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	prodRepo := repos.NewProductRepo(db)
	folderRepo := repos.NewFolderRepo(db)
	pfRepo := repos.NewProductFolderRepo(db)

	prodSvc := services.NewProductService(prodRepo, folderRepo, pfRepo)
	folderSvc := services.NewFolderService(folderRepo)

	return &Deps{
		ProductHandler: &ProductHandler{Products: prodSvc},
		FolderHandler:  &FolderHandler{Folders: folderSvc},
	}
}
