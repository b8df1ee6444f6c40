package ledger

import (
	"gorm.io/gorm"

	"gobudget/models"
)

// Translate looks up the stored text for a symbolic label name in the given
// language. Missing entries fall back to the name itself so an incomplete
// translation table never blanks out the UI.
func Translate(db *gorm.DB, name, lang string) string {
	var entry models.TranslationEntry
	if err := db.Where("name = ? AND lang = ?", name, lang).First(&entry).Error; err != nil {
		return name
	}
	return entry.Text
}
