package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Upsert is the conflict handling of UpsertModel.
type Upsert struct {
	// Conflict is the unique key the insert may collide with.
	Conflict []string
	// Keep lists columns left untouched when the row already exists.
	Keep      []string
	Returning []string
}

// InsertModel inserts the db-tagged fields of model in declaration order.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := ModelColumns(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// UpsertModel inserts model and, on a conflict, overwrites every column
// outside u.Conflict and u.Keep with the incoming value.
func UpsertModel(table string, model any, u Upsert) (string, []any, error) {
	if len(u.Conflict) == 0 {
		return "", nil, fmt.Errorf("upsert into %s: conflict columns are required", table)
	}
	cols, vals, err := ModelColumns(model)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, 0, len(cols))
	for _, col := range cols {
		if slices.Contains(u.Conflict, col) || slices.Contains(u.Keep, col) {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	if len(sets) == 0 {
		return "", nil, fmt.Errorf("upsert into %s: no columns to update", table)
	}

	suffix := "ON CONFLICT (" + strings.Join(u.Conflict, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", ")
	if len(u.Returning) > 0 {
		suffix += " RETURNING " + strings.Join(u.Returning, ", ")
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// ModelColumns reads the `db` tags of a struct (or pointer to one). Untagged,
// unexported and "-" fields are skipped, and options after a comma are ignored.
func ModelColumns(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", value.Kind())
	}

	typ := value.Type()
	var (
		cols []string
		vals []any
	)
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return cols, vals, nil
}
