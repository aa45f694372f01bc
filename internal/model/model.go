package model

import "github.com/google/uuid"

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every table, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserProvider{},
		&Subject{},
		&Chapter{},
		&StudySession{},
		&DailyTask{},
		&Note{},
	}
}
