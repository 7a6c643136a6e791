package ioschema

import "fmt"

// formatCollationSQL fills a collation statement template.
func formatCollationSQL(
	template string,
	table string,
	column string,
	varchar int,
) string {
	return fmt.Sprintf(template, table, column, varchar)
}
