package store

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"time"
)

// Row представляет строку таблицы: столбец -> значение
type Row map[string]any

// Clone возвращает поверхностную копию строки
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Columns возвращает имена столбцов в отсортированном порядке
func (r Row) Columns() []string {
	cols := make([]string, 0, len(r))
	for k := range r {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// Has сообщает, есть ли в строке непустое значение столбца
func (r Row) Has(col string) bool {
	v, ok := r[col]
	return ok && v != nil
}

// Int64 возвращает целое значение столбца
func (r Row) Int64(col string) (int64, bool) {
	return toInt64(r[col])
}

// String возвращает строковое значение столбца
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// Bool возвращает логическое значение столбца
func (r Row) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		n, ok := toInt64(v)
		return ok && n != 0
	}
}

// Time возвращает значение столбца как время
func (r Row) Time(col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, v); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// toInt64 приводит числовые представления к int64
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	case []byte:
		i, err := strconv.ParseInt(string(n), 10, 64)
		return i, err == nil
	}
	return 0, false
}

// normalizeValue приводит значение к каноническому виду хранения:
// целые числа хранятся как int64, время в UTC.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int, int32, uint32:
		i, _ := toInt64(n)
		return i
	case float64:
		if i, ok := toInt64(n); ok {
			return i
		}
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i
		}
		if f, err := n.Float64(); err == nil {
			return f
		}
		return n.String()
	case []byte:
		return string(n)
	case time.Time:
		return n.UTC()
	case json.RawMessage:
		return string(n)
	default:
		return v
	}
}

// normalizeRow возвращает копию строки с нормализованными значениями
func normalizeRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = normalizeValue(v)
	}
	return out
}

// equalValues сравнивает значения после нормализации
func equalValues(a, b any) bool {
	a, b = normalizeValue(a), normalizeValue(b)
	if ai, ok := a.(int64); ok {
		bi, ok := toInt64(b)
		return ok && ai == bi
	}
	if bi, ok := b.(int64); ok {
		ai, ok := toInt64(a)
		return ok && ai == bi
	}
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	return a == b
}

// inValues возвращает элементы значения фильтра, если это срез
func inValues(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []int64:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	case []int:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = int64(x)
		}
		return out, true
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	}
	return nil, false
}

// Matches сообщает, удовлетворяет ли строка фильтру
func (f Filter) Matches(r Row) bool {
	for col, want := range f {
		got := r[col]
		if values, ok := inValues(want); ok {
			found := false
			for _, v := range values {
				if equalValues(got, v) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			continue
		}
		if want == nil {
			if got != nil {
				return false
			}
			continue
		}
		if !equalValues(got, want) {
			return false
		}
	}
	return true
}

// lessValues упорядочивает значения для сортировки выборки
func lessValues(a, b any) bool {
	a, b = normalizeValue(a), normalizeValue(b)
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	if ai, ok := a.(int64); ok {
		if bi, ok := toInt64(b); ok {
			return ai < bi
		}
	}
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Before(bt)
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as < bs
		}
	}
	return false
}

// sortRows сортирует и обрезает строки согласно параметрам выборки
func sortRows(rows []Row, o SelectOptions) []Row {
	if o.OrderBy != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			if o.Desc {
				return lessValues(rows[j][o.OrderBy], rows[i][o.OrderBy])
			}
			return lessValues(rows[i][o.OrderBy], rows[j][o.OrderBy])
		})
	}
	if o.Limit > 0 && len(rows) > o.Limit {
		rows = rows[:o.Limit]
	}
	return rows
}
