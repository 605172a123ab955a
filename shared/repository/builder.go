package repository

import "github.com/Masterminds/squirrel"

// Psql is the statement builder for hand-written queries the generic repository cannot express.
var Psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
