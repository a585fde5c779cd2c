package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"selectshop/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    id, user_id, title, link, image, lprice, myprice,
    created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, user_id, title, link, image, lprice, myprice, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.UserID, p.Title, p.Link, p.Image, p.Lprice, p.Myprice)
	return err
}

func (r *ProductRepo) ByID(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// UpdateMyprice overwrites the target price inside a single transaction so
// the read-modify-write cannot interleave with a concurrent update. Returns
// sql.ErrNoRows via Get when the id is unknown.
func (r *ProductRepo) UpdateMyprice(id string, myprice int) (domain.Product, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Product{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var p domain.Product
	if err := tx.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	if _, err := tx.Exec(`UPDATE products SET myprice=?, updated_at=? WHERE id=?`,
		myprice, time.Now().UTC().Format(time.RFC3339), id); err != nil {
		return domain.Product{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Product{}, err
	}
	p.Myprice = myprice
	return p, nil
}

// UpdateListing overwrites the display fields from an external item record.
// The target price is untouched.
func (r *ProductRepo) UpdateListing(id string, it domain.Item) (domain.Product, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Product{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var p domain.Product
	if err := tx.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	if _, err := tx.Exec(`
	  UPDATE products SET title=?, link=?, image=?, lprice=?, updated_at=? WHERE id=?
	`, it.Title, it.Link, it.Image, it.Lprice, time.Now().UTC().Format(time.RFC3339), id); err != nil {
		return domain.Product{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Product{}, err
	}
	p.Title, p.Link, p.Image, p.Lprice = it.Title, it.Link, it.Image, it.Lprice
	return p, nil
}

// orderClause builds "ORDER BY <col> ASC|DESC". col must already be
// whitelisted by the caller (validate.SortColumn).
func orderClause(col string, asc bool) string {
	dir := "DESC"
	if asc {
		dir = "ASC"
	}
	return ` ORDER BY ` + col + ` ` + dir
}

func (r *ProductRepo) PageByUser(userID string, limit, offset int, sortCol string, asc bool) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE user_id = ?`+orderClause(sortCol, asc)+`
	  LIMIT ? OFFSET ?
	`, userID, limit, offset)
	return out, err
}

func (r *ProductRepo) CountByUser(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE user_id = ?`, userID)
	return n, err
}

func (r *ProductRepo) PageAll(limit, offset int, sortCol string, asc bool) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products`+orderClause(sortCol, asc)+`
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *ProductRepo) CountAll() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

// PageByUserAndFolder lists the user's products filed under one folder,
// joined through product_folders.
func (r *ProductRepo) PageByUserAndFolder(userID, folderID string, limit, offset int, sortCol string, asc bool) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT p.id, p.user_id, p.title, p.link, p.image, p.lprice, p.myprice,
	         p.created_at, COALESCE(p.updated_at,'') AS updated_at
	  FROM products p
	  JOIN product_folders pf ON pf.product_id = p.id
	  WHERE p.user_id = ? AND pf.folder_id = ?`+orderClause("p."+sortCol, asc)+`
	  LIMIT ? OFFSET ?
	`, userID, folderID, limit, offset)
	return out, err
}

func (r *ProductRepo) CountByUserAndFolder(userID, folderID string) (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*)
	  FROM products p
	  JOIN product_folders pf ON pf.product_id = p.id
	  WHERE p.user_id = ? AND pf.folder_id = ?
	`, userID, folderID)
	return n, err
}

// AllIDs feeds the price refresh loop.
func (r *ProductRepo) AllIDs() ([]string, error) {
	var ids []string
	err := r.db.Select(&ids, `SELECT id FROM products ORDER BY created_at`)
	return ids, err
}
