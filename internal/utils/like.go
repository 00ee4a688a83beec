package utils

import "strings"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// EscapeLike 转义 LIKE 模式中的通配符，SQL 中配合 ESCAPE '!' 使用。
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
