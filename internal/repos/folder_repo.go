package repos

import (
	"github.com/jmoiron/sqlx"

	"selectshop/internal/domain"
)

type FolderRepo struct{ db *sqlx.DB }

func NewFolderRepo(db *sqlx.DB) *FolderRepo { return &FolderRepo{db: db} }

func (r *FolderRepo) Create(f domain.Folder) error {
	_, err := r.db.Exec(`
	  INSERT INTO folders(id, user_id, name, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, f.ID, f.UserID, f.Name)
	return err
}

func (r *FolderRepo) ByID(id string) (domain.Folder, error) {
	var f domain.Folder
	err := r.db.Get(&f, `SELECT id, user_id, name, COALESCE(created_at,'') AS created_at FROM folders WHERE id = ?`, id)
	return f, err
}

func (r *FolderRepo) ListByUser(userID string) ([]domain.Folder, error) {
	var out []domain.Folder
	err := r.db.Select(&out, `
	  SELECT id, user_id, name, COALESCE(created_at,'') AS created_at
	  FROM folders
	  WHERE user_id = ?
	  ORDER BY name
	`, userID)
	return out, err
}

// ByUserAndNames returns the user's folders whose names are in the given
// set; the folder service uses it to reject duplicate names up front.
func (r *FolderRepo) ByUserAndNames(userID string, names []string) ([]domain.Folder, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
	  SELECT id, user_id, name, COALESCE(created_at,'') AS created_at
	  FROM folders
	  WHERE user_id = ? AND name IN (?)
	`, userID, names)
	if err != nil {
		return nil, err
	}
	var out []domain.Folder
	err = r.db.Select(&out, query, args...)
	return out, err
}
