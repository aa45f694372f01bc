package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByCreatedAsc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// OrderByDateDesc puts the most recent calendar day first, newest insert first within a day.
func OrderByDateDesc(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC").Order("created_at DESC")
}

func OrderByDateAsc(db *gorm.DB) *gorm.DB {
	return db.Order("date ASC").Order("created_at ASC")
}
