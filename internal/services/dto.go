package services

import "selectshop/internal/domain"

// ProductRequest carries the fields a client submits when it starts
// tracking a product.
type ProductRequest struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Image  string `json:"image"`
	Lprice int    `json:"lprice"`
}

type FolderResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductResponse is the flattened view of a product and the folders it is
// filed under.
type ProductResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Link           string           `json:"link"`
	Image          string           `json:"image"`
	Lprice         int              `json:"lprice"`
	Myprice        int              `json:"myprice"`
	ProductFolders []FolderResponse `json:"productFolders"`
}

// ProductPage is one page of product views plus paging metadata.
type ProductPage struct {
	Items      []ProductResponse `json:"items"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"totalPages"`
}

func newProductResponse(p domain.Product, folders []domain.Folder) ProductResponse {
	resp := ProductResponse{
		ID:             p.ID,
		Title:          p.Title,
		Link:           p.Link,
		Image:          p.Image,
		Lprice:         p.Lprice,
		Myprice:        p.Myprice,
		ProductFolders: []FolderResponse{},
	}
	for _, f := range folders {
		resp.ProductFolders = append(resp.ProductFolders, FolderResponse{ID: f.ID, Name: f.Name})
	}
	return resp
}
