package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"Repokit/internal/repository"
)

var (
	comparisonRegex = regexp.MustCompile(`(?i)(\w+)\s+(eq|ne|gt|ge|lt|le|startswith|contains|endswith)\s+(?:'([^']*)'|"([^"]*)"|(-?\d+(?:\.\d+)?))`)
	connectiveRegex = regexp.MustCompile(`(?i)^(\s|\(|\)|\band\b|\bor\b|\bnot\b)*$`)
	keywordRegex    = regexp.MustCompile(`\b(and|or|not)\b`)
)

// ParseFilter turns an expression such as `name eq 'red' and size gt 10` into a
// parameterized WHERE clause. Only columns present in columns (public name to column
// name) may be referenced; everything between comparisons must be and/or/not or parentheses.
func ParseFilter(filter string, columns map[string]string) (*repository.QueryFilter, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil, nil
	}

	var (
		params  []interface{}
		builder strings.Builder
		last    int
	)
	matches := comparisonRegex.FindAllStringSubmatchIndex(filter, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("invalid filter: %q", filter)
	}
	for _, m := range matches {
		if err := writeConnective(&builder, filter[last:m[0]]); err != nil {
			return nil, err
		}
		last = m[1]

		field := filter[m[2]:m[3]]
		column, ok := columns[strings.ToLower(field)]
		if !ok {
			return nil, fmt.Errorf("unknown filter field: %s", field)
		}
		operator := strings.ToLower(filter[m[4]:m[5]])
		var value string
		var arg interface{}
		switch {
		case m[6] >= 0:
			value = filter[m[6]:m[7]]
			arg = value
		case m[8] >= 0:
			value = filter[m[8]:m[9]]
			arg = value
		default:
			value = filter[m[10]:m[11]]
			arg = numericArg(value)
		}

		var sqlExpr string
		switch operator {
		case "eq":
			sqlExpr = fmt.Sprintf("%s = ?", column)
			params = append(params, arg)
		case "ne":
			sqlExpr = fmt.Sprintf("%s <> ?", column)
			params = append(params, arg)
		case "gt":
			sqlExpr = fmt.Sprintf("%s > ?", column)
			params = append(params, arg)
		case "ge":
			sqlExpr = fmt.Sprintf("%s >= ?", column)
			params = append(params, arg)
		case "lt":
			sqlExpr = fmt.Sprintf("%s < ?", column)
			params = append(params, arg)
		case "le":
			sqlExpr = fmt.Sprintf("%s <= ?", column)
			params = append(params, arg)
		case "startswith":
			sqlExpr = fmt.Sprintf("%s LIKE ?", column)
			params = append(params, value+"%")
		case "contains":
			sqlExpr = fmt.Sprintf("%s LIKE ?", column)
			params = append(params, "%"+value+"%")
		case "endswith":
			sqlExpr = fmt.Sprintf("%s LIKE ?", column)
			params = append(params, "%"+value)
		}
		builder.WriteString(sqlExpr)
	}
	if err := writeConnective(&builder, filter[last:]); err != nil {
		return nil, err
	}

	return repository.NewQueryFilter(strings.TrimSpace(builder.String()), params...), nil
}

// numericArg keeps unquoted literals numeric so they compare against numeric columns.
func numericArg(literal string) interface{} {
	if i, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(literal, 64); err == nil {
		return f
	}
	return literal
}

func writeConnective(builder *strings.Builder, text string) error {
	if !connectiveRegex.MatchString(text) {
		return fmt.Errorf("invalid filter near %q", strings.TrimSpace(text))
	}
	builder.WriteString(keywordRegex.ReplaceAllStringFunc(strings.ToLower(text), strings.ToUpper))
	return nil
}

// ParseOrderBy validates a comma separated `field [asc|desc]` list against columns.
func ParseOrderBy(orderBy string, columns map[string]string) ([]string, error) {
	var orders []string
	for _, part := range strings.Split(orderBy, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		column, ok := columns[strings.ToLower(fields[0])]
		if !ok {
			return nil, fmt.Errorf("unknown order field: %s", fields[0])
		}
		direction := "ASC"
		if len(fields) > 1 {
			switch strings.ToLower(fields[1]) {
			case "asc":
			case "desc":
				direction = "DESC"
			default:
				return nil, fmt.Errorf("invalid order direction: %s", fields[1])
			}
		}
		if len(fields) > 2 {
			return nil, fmt.Errorf("invalid order clause: %s", part)
		}
		orders = append(orders, column+" "+direction)
	}
	return orders, nil
}

// ParseInclude validates a comma separated list of relations against relations (public
// name to association name) and returns the association names to preload.
func ParseInclude(include string, relations map[string]string) (string, error) {
	var names []string
	for _, part := range strings.Split(include, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		relation, ok := relations[strings.ToLower(name)]
		if !ok {
			return "", fmt.Errorf("unknown relation: %s", name)
		}
		names = append(names, relation)
	}
	return strings.Join(names, ","), nil
}
