package models

// TranslationEntry is one localized label or message, keyed by symbolic name
// and language code.
type TranslationEntry struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;uniqueIndex:idx_translations_name_lang" json:"name"`
	Text string `gorm:"size:100;not null" json:"text"`
	Lang string `gorm:"size:100;not null;default:de;uniqueIndex:idx_translations_name_lang" json:"lang"`
}
