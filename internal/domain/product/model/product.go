package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sort"

	baseModel "github.com/Bange254/Bttshoes/pkg/model"
)

// Product statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// WholesaleBrand marks products stocked specifically for the wholesale
// channel.
const WholesaleBrand = "BTT"

// WholesaleTier defines a quantity break: orders of at least MinQty
// units get the tier price.
type WholesaleTier struct {
	MinQty int     `json:"minQty"`
	Price  float64 `json:"price"`
}

// WholesaleTiers stores the quantity breaks as a jsonb column.
type WholesaleTiers []WholesaleTier

func (t WholesaleTiers) Value() (driver.Value, error) { return json.Marshal(t) }

func (t *WholesaleTiers) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return errors.New("unsupported jsonb source type")
	}
}

// StringList stores string slices (images, sizes, colors, tags) as jsonb.
type StringList []string

func (l StringList) Value() (driver.Value, error) { return json.Marshal(l) }

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported jsonb source type")
	}
}

// Product is a catalog entry.
type Product struct {
	baseModel.BaseModel
	Name             string         `gorm:"not null" json:"name"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"shortDescription"`
	Price            float64        `gorm:"not null" json:"price"`
	Category         string         `gorm:"index" json:"category"`
	Subcategory      string         `json:"subcategory"`
	Brand            string         `gorm:"index" json:"brand"`
	SKU              string         `gorm:"uniqueIndex" json:"sku"`
	Images           StringList     `gorm:"type:jsonb" json:"images"`
	Sizes            StringList     `gorm:"type:jsonb" json:"sizes"`
	Colors           StringList     `gorm:"type:jsonb" json:"colors"`
	Tags             StringList     `gorm:"type:jsonb" json:"tags"`
	WholesaleTiers   WholesaleTiers `gorm:"type:jsonb" json:"wholesaleTiers"`
	Status           string         `gorm:"not null;default:'active';index" json:"status"`
}

// WholesalePrice returns the unit price for the given quantity,
// applying the deepest tier the quantity reaches. Without tiers the
// retail price applies.
func (p *Product) WholesalePrice(quantity int) float64 {
	if len(p.WholesaleTiers) == 0 {
		return p.Price
	}

	tiers := make([]WholesaleTier, len(p.WholesaleTiers))
	copy(tiers, p.WholesaleTiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinQty > tiers[j].MinQty })

	for _, tier := range tiers {
		if quantity >= tier.MinQty {
			return tier.Price
		}
	}
	return p.Price
}
