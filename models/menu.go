package models

import "time"

// Menu categories used by the bundled dataset. The set is open: backends may
// hold items in other categories.
const (
	CategoryCoffee  = "Coffee"
	CategoryTea     = "Tea"
	CategoryPastry  = "Pastry"
	CategoryDessert = "Dessert"
	CategoryFood    = "Food"
)

type MenuItem struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey" bson:"_id,omitempty"`
	Name         string    `json:"name" gorm:"not null" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	Category     string    `json:"category" gorm:"index" bson:"category"`
	Price        float64   `json:"price" gorm:"not null" bson:"price"`
	Available    bool      `json:"available" gorm:"index" bson:"available"`
	IsBestseller bool      `json:"isBestseller" bson:"isBestseller"`
	SalesCount   int       `json:"salesCount" bson:"salesCount"`
	Rating       float64   `json:"rating" bson:"rating"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// MenuItemPatch carries a partial menu update. Nil fields are left untouched.
type MenuItemPatch struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category"`
	Price        *float64 `json:"price" binding:"omitempty,gte=0"`
	Available    *bool    `json:"available"`
	IsBestseller *bool    `json:"isBestseller"`
}

// Apply copies the set fields of p onto item.
func (p MenuItemPatch) Apply(item *MenuItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
	if p.IsBestseller != nil {
		item.IsBestseller = *p.IsBestseller
	}
}
