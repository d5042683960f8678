package models

// All lists every table owned by the store, in migration order.
func All() []interface{} {
	return []interface{}{
		&SiteSetting{},
		&Category{},
		&Product{},
		&Customer{},
		&Order{},
		&MediaFile{},
	}
}
