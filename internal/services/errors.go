package services

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrFolderNotFound      = errors.New("folder not found")
	ErrPriceBelowMin       = errors.New("target price below minimum")
	ErrNotOwner            = errors.New("not the owner of this product or folder")
	ErrDuplicateFolder     = errors.New("product already filed under this folder")
	ErrDuplicateFolderName = errors.New("folder name already in use")
	ErrBadSortField        = errors.New("unknown sort field")
	ErrBadInput            = errors.New("invalid input")
	ErrBadCreds            = errors.New("invalid username or password")
)
