package model

// AllModels lists every table in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Note{},
		&Comment{},
	}
}
