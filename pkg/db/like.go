package db

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern builds a contains-match LIKE pattern from user input,
// escaping the LIKE metacharacters so they match literally. Queries using
// it must carry an ESCAPE '\' clause.
func LikePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}
