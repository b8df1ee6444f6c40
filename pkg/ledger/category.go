package ledger

import (
	"gorm.io/gorm"

	"gobudget/models"
)

// Descendants returns every category transitively below c, walking the
// parent edges level by level. The result slice is freshly allocated on each
// call; nothing is shared between invocations.
func Descendants(db *gorm.DB, c *models.Category) ([]models.Category, error) {
	var out []models.Category
	frontier := []uint{c.ID}
	for len(frontier) > 0 {
		var children []models.Category
		if err := db.Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
			return nil, err
		}
		if len(children) == 0 {
			break
		}
		out = append(out, children...)
		frontier = make([]uint, 0, len(children))
		for _, child := range children {
			frontier = append(frontier, child.ID)
		}
	}
	return out, nil
}
