package services

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"selectshop/internal/domain"
	"selectshop/internal/repos"
	"selectshop/internal/validate"
)

// MinMyprice is the lowest target price a user may set.
const MinMyprice = 100

type ProductService struct {
	Products       *repos.ProductRepo
	Folders        *repos.FolderRepo
	ProductFolders *repos.ProductFolderRepo
}

func NewProductService(p *repos.ProductRepo, f *repos.FolderRepo, pf *repos.ProductFolderRepo) *ProductService {
	return &ProductService{Products: p, Folders: f, ProductFolders: pf}
}

// CreateProduct registers a product the user wants to track. The target
// price starts at zero; the user raises it afterwards.
func (s *ProductService) CreateProduct(user *domain.User, req ProductRequest) (ProductResponse, error) {
	title, ok := validate.Title(req.Title)
	if !ok {
		return ProductResponse{}, fmt.Errorf("%w: title", ErrBadInput)
	}
	if req.Lprice < 0 {
		return ProductResponse{}, fmt.Errorf("%w: lprice", ErrBadInput)
	}
	p := domain.Product{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Title:   title,
		Link:    req.Link,
		Image:   req.Image,
		Lprice:  req.Lprice,
		Myprice: 0,
	}
	if err := s.Products.Create(p); err != nil {
		return ProductResponse{}, err
	}
	return newProductResponse(p, nil), nil
}

// UpdateMyprice sets a new target price on an existing product.
func (s *ProductService) UpdateMyprice(id string, myprice int) (ProductResponse, error) {
	if myprice < MinMyprice {
		return ProductResponse{}, fmt.Errorf("%w: must be at least %d", ErrPriceBelowMin, MinMyprice)
	}
	p, err := s.Products.UpdateMyprice(id, myprice)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductResponse{}, ErrProductNotFound
	}
	if err != nil {
		return ProductResponse{}, err
	}
	return s.assemble(p)
}

// GetProducts pages through products. The standard role sees only its own;
// the admin role spans all owners.
func (s *ProductService) GetProducts(user *domain.User, page, size int, sortBy string, asc bool) (ProductPage, error) {
	page, size, col, err := pageArgs(page, size, sortBy)
	if err != nil {
		return ProductPage{}, err
	}
	offset := (page - 1) * size

	var (
		products []domain.Product
		total    int
	)
	if user.IsAdmin() {
		if products, err = s.Products.PageAll(size, offset, col, asc); err != nil {
			return ProductPage{}, err
		}
		if total, err = s.Products.CountAll(); err != nil {
			return ProductPage{}, err
		}
	} else {
		if products, err = s.Products.PageByUser(user.ID, size, offset, col, asc); err != nil {
			return ProductPage{}, err
		}
		if total, err = s.Products.CountByUser(user.ID); err != nil {
			return ProductPage{}, err
		}
	}
	return s.assemblePage(products, page, size, total)
}

// GetProductsInFolder pages through the user's products filed under one
// folder. Always owner-scoped, admin or not.
func (s *ProductService) GetProductsInFolder(user *domain.User, folderID string, page, size int, sortBy string, asc bool) (ProductPage, error) {
	page, size, col, err := pageArgs(page, size, sortBy)
	if err != nil {
		return ProductPage{}, err
	}
	offset := (page - 1) * size

	products, err := s.Products.PageByUserAndFolder(user.ID, folderID, size, offset, col, asc)
	if err != nil {
		return ProductPage{}, err
	}
	total, err := s.Products.CountByUserAndFolder(user.ID, folderID)
	if err != nil {
		return ProductPage{}, err
	}
	return s.assemblePage(products, page, size, total)
}

// UpdateBySearch overwrites a product's listing fields from an external
// item record. The user's target price is untouched.
func (s *ProductService) UpdateBySearch(id string, it domain.Item) (ProductResponse, error) {
	p, err := s.Products.UpdateListing(id, it)
	if errors.Is(err, sql.ErrNoRows) {
		return ProductResponse{}, ErrProductNotFound
	}
	if err != nil {
		return ProductResponse{}, err
	}
	return s.assemble(p)
}

// AddFolder files a product under a folder. Both must exist, both must
// belong to the requesting user, and the pair must not already be linked.
func (s *ProductService) AddFolder(productID, folderID string, user *domain.User) error {
	p, err := s.Products.ByID(productID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	f, err := s.Folders.ByID(folderID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFolderNotFound
	}
	if err != nil {
		return err
	}

	if p.UserID != user.ID || f.UserID != user.ID {
		return ErrNotOwner
	}

	_, err = s.ProductFolders.Find(productID, folderID)
	if err == nil {
		return ErrDuplicateFolder
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	return s.ProductFolders.Create(domain.ProductFolder{
		ID:        uuid.NewString(),
		ProductID: productID,
		FolderID:  folderID,
	})
}

func pageArgs(page, size int, sortBy string) (int, int, string, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 10
	}
	col, ok := validate.SortColumn(sortBy)
	if !ok {
		return 0, 0, "", fmt.Errorf("%w: %q", ErrBadSortField, sortBy)
	}
	return page, size, col, nil
}

func (s *ProductService) assemble(p domain.Product) (ProductResponse, error) {
	byProduct, err := s.ProductFolders.FoldersForProducts([]string{p.ID})
	if err != nil {
		return ProductResponse{}, err
	}
	return newProductResponse(p, byProduct[p.ID]), nil
}

// assemblePage fetches the folder lists for the whole page in one batch
// query and flattens each product into its response view.
func (s *ProductService) assemblePage(products []domain.Product, page, size, total int) (ProductPage, error) {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	byProduct, err := s.ProductFolders.FoldersForProducts(ids)
	if err != nil {
		return ProductPage{}, err
	}

	out := ProductPage{
		Items: make([]ProductResponse, 0, len(products)),
		Page:  page,
		Size:  size,
		Total: total,
	}
	for _, p := range products {
		out.Items = append(out.Items, newProductResponse(p, byProduct[p.ID]))
	}
	out.TotalPages = (total + size - 1) / size
	return out, nil
}
