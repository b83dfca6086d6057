package entity

// Category is a department-level grouping (top-level category).
// IntDate is the listing lifetime in days for ads filed under it.
type Category struct {
	NumbID  int    `bson:"numb_id" json:"numb_id"`
	Name    string `bson:"name" json:"name"`
	IntDate int    `bson:"int_date" json:"int_date"`
}

// SubCategory is the leaf a single ad is tagged with; ParentID points at its
// department.
type SubCategory struct {
	NumbID   int    `bson:"numb_id" json:"numb_id"`
	Name     string `bson:"name" json:"name"`
	ParentID int    `bson:"parent_id" json:"parent_id"`
}
