package domain

type Product struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Title     string `db:"title"`
	Link      string `db:"link"`
	Image     string `db:"image"`
	Lprice    int    `db:"lprice"`  // listed price reported by the search source
	Myprice   int    `db:"myprice"` // user-chosen target price
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

type Folder struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

// ProductFolder files one product under one folder. Pair uniqueness is
// checked in the service layer, not by the schema.
type ProductFolder struct {
	ID        string `db:"id"`
	ProductID string `db:"product_id"`
	FolderID  string `db:"folder_id"`
	CreatedAt string `db:"created_at"`
}

// Item is the record shape the external price source reports for one
// listing. Its fields are a fixed external contract.
type Item struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Image  string `json:"image"`
	Lprice int    `json:"lprice"`
}
