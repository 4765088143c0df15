package store

type Table string

const TableLinks Table = "main_table"

func Select(t Table) {}
