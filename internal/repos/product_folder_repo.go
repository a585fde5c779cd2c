package repos

import (
	"github.com/jmoiron/sqlx"

	"selectshop/internal/domain"
)

type ProductFolderRepo struct{ db *sqlx.DB }

func NewProductFolderRepo(db *sqlx.DB) *ProductFolderRepo { return &ProductFolderRepo{db: db} }

// Find looks up the association for one (product, folder) pair. Returns
// sql.ErrNoRows when no link exists.
func (r *ProductFolderRepo) Find(productID, folderID string) (domain.ProductFolder, error) {
	var pf domain.ProductFolder
	err := r.db.Get(&pf, `
	  SELECT id, product_id, folder_id, COALESCE(created_at,'') AS created_at
	  FROM product_folders
	  WHERE product_id = ? AND folder_id = ?
	`, productID, folderID)
	return pf, err
}

func (r *ProductFolderRepo) Create(pf domain.ProductFolder) error {
	_, err := r.db.Exec(`
	  INSERT INTO product_folders(id, product_id, folder_id, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	`, pf.ID, pf.ProductID, pf.FolderID)
	return err
}

type productFolderRow struct {
	ProductID string `db:"product_id"`
	FolderID  string `db:"folder_id"`
	Name      string `db:"name"`
}

// FoldersForProducts batch-fetches the folders for a page of products in one
// query, keyed by product id. Response assembly uses this instead of a
// per-product lookup.
func (r *ProductFolderRepo) FoldersForProducts(productIDs []string) (map[string][]domain.Folder, error) {
	out := make(map[string][]domain.Folder, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
	  SELECT pf.product_id, f.id AS folder_id, f.name
	  FROM product_folders pf
	  JOIN folders f ON f.id = pf.folder_id
	  WHERE pf.product_id IN (?)
	  ORDER BY f.name
	`, productIDs)
	if err != nil {
		return nil, err
	}
	var rows []productFolderRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProductID] = append(out[row.ProductID], domain.Folder{ID: row.FolderID, Name: row.Name})
	}
	return out, nil
}
