package models

// Classifier is a closed lookup row (vehicle category, transmission type,
// document type, license type). A type+value pair is unique among live rows.
type Classifier struct {
	ID          int     `gorm:"primary_key;auto_increment" json:"id"`
	Type        string  `gorm:"size:50;not null;index" json:"type"`
	Value       string  `gorm:"size:100;not null" json:"value"`
	Description *string `gorm:"size:255" json:"description"`
}
