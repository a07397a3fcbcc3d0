package models

// Product statuses. A product is never deleted from the sheet; disabling it
// hides it from the public catalog.
const (
	ProductStatusActive   = "active"
	ProductStatusDisabled = "disabled"
)

// Product represents one row of the Products sheet.
type Product struct {
	ID               string  `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	Name             string  `json:"product_name" validate:"required,min=3,max=100"`
	Category         string  `json:"category" validate:"required"`
	Type             string  `json:"type"`
	Capacity         string  `json:"capacity"`
	ShortDescription string  `json:"short_description" validate:"omitempty,max=200"`
	LongDescription  string  `json:"long_description" validate:"omitempty,max=2000"`
	ImageURL         string  `json:"image_url" validate:"omitempty,url"`
	Price            float64 `json:"price" validate:"gte=0"`
	Status           string  `json:"status"`
	CreatedAt        string  `json:"created_at"`
}

// ProductPatch carries a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Name             *string  `json:"product_name"`
	Category         *string  `json:"category"`
	Type             *string  `json:"type"`
	Capacity         *string  `json:"capacity"`
	ShortDescription *string  `json:"short_description"`
	LongDescription  *string  `json:"long_description"`
	ImageURL         *string  `json:"image_url"`
	Price            *float64 `json:"price"`
	Status           *string  `json:"status"`
}

// Apply merges the patch onto p.
func (patch ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.Capacity != nil {
		p.Capacity = *patch.Capacity
	}
	if patch.ShortDescription != nil {
		p.ShortDescription = *patch.ShortDescription
	}
	if patch.LongDescription != nil {
		p.LongDescription = *patch.LongDescription
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
}

// Column indexes for the Products sheet (range Products!A2:K). The order is
// fixed by the live spreadsheet and must not change.
const (
	ProductColID = iota
	ProductColName
	ProductColCategory
	ProductColType
	ProductColCapacity
	ProductColShortDescription
	ProductColLongDescription
	ProductColImageURL
	ProductColPrice
	ProductColStatus
	ProductColCreatedAt
	ProductColumnCount
)
