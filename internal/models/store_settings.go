package models

import "time"

// StoreSettings is the singleton open/closed switch. The document is created
// lazily with isOpen=true the first time anyone asks.
type StoreSettings struct {
	ID        string    `bson:"_id" json:"-"`
	IsOpen    bool      `bson:"isOpen" json:"isOpen"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StoreSettingsID is the _id of the singleton settings document.
const StoreSettingsID = "store"
