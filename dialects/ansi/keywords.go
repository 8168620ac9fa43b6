package ansi

// reservedKeywords cannot be used as an unqualified identifier; they form
// the "reserved" keyword set, one of a dialect's two keyword sets (the
// other being unreservedKeywords).
var reservedKeywords = []string{
	"SELECT", "FROM", "WHERE", "AND", "OR", "NOT", "AS", "ON", "JOIN",
	"INNER", "LEFT", "RIGHT", "FULL", "OUTER", "CROSS", "GROUP", "BY",
	"ORDER", "HAVING", "DISTINCT", "ALL", "UNION", "INTERSECT", "EXCEPT",
	"CASE", "WHEN", "THEN", "ELSE", "END", "NULL", "TRUE", "FALSE",
	"IN", "IS", "BETWEEN", "LIKE", "EXISTS", "WITH", "ASC", "DESC",
	"LIMIT", "OFFSET", "INTO", "VALUES", "INSERT", "UPDATE", "DELETE",
	"CREATE", "TABLE", "DROP", "ALTER", "PRIMARY", "KEY", "FOREIGN",
	"REFERENCES", "DEFAULT", "CAST",
}

// unreservedKeywords may still appear as an unqualified identifier (e.g.
// a column literally named "count").
var unreservedKeywords = []string{
	"COUNT", "SUM", "AVG", "MIN", "MAX", "TYPE", "NAME", "DATA",
}
