package app

import "example.com/internal/store"

func ok() {
	store.Select(store.TableLinks)
	_ = "main_table"
}

func bad() {
	store.Select("main_table") // want `используйте константу store.Table вместо литерала "main_table"`

	var t store.Table = "lists_users" // want `используйте константу store.Table`
	_ = t
}
