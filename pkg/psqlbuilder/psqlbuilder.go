// Package psqlbuilder squirrel builder с плейсхолдерами PostgreSQL ($1, $2, ...)
package psqlbuilder

import "github.com/Masterminds/squirrel"

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
