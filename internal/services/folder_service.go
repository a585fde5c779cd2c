package services

import (
	"fmt"

	"github.com/google/uuid"

	"selectshop/internal/domain"
	"selectshop/internal/repos"
	"selectshop/internal/validate"
)

type FolderService struct {
	Folders *repos.FolderRepo
}

func NewFolderService(f *repos.FolderRepo) *FolderService { return &FolderService{Folders: f} }

// AddFolders creates one folder per name for the user. If any name is
// already taken by one of the user's folders, nothing is created.
func (s *FolderService) AddFolders(user *domain.User, names []string) ([]FolderResponse, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no folder names", ErrBadInput)
	}
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		name, ok := validate.FolderName(n)
		if !ok {
			return nil, fmt.Errorf("%w: folder name %q", ErrBadInput, n)
		}
		cleaned = append(cleaned, name)
	}

	existing, err := s.Folders.ByUserAndNames(user.ID, cleaned)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(existing))
	for _, f := range existing {
		taken[f.Name] = true
	}
	// Reject before creating anything so a conflict leaves no partial state.
	for _, name := range cleaned {
		if taken[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateFolderName, name)
		}
		taken[name] = true // catches repeats within the request too
	}

	out := make([]FolderResponse, 0, len(cleaned))
	for _, name := range cleaned {
		f := domain.Folder{ID: uuid.NewString(), UserID: user.ID, Name: name}
		if err := s.Folders.Create(f); err != nil {
			return nil, err
		}
		out = append(out, FolderResponse{ID: f.ID, Name: f.Name})
	}
	return out, nil
}

func (s *FolderService) GetFolders(user *domain.User) ([]FolderResponse, error) {
	folders, err := s.Folders.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}
	out := make([]FolderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, FolderResponse{ID: f.ID, Name: f.Name})
	}
	return out, nil
}
