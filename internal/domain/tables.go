package domain

import "time"

// CatalogSlot is the single key-value row holding the serialized
// catalog when the postgres backend is selected.
type CatalogSlot struct {
	Name      string    `gorm:"primaryKey;size:64" json:"name"`
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (CatalogSlot) TableName() string {
	return "catalog_slot"
}

var Tables = []interface{}{
	&CatalogSlot{},
}
