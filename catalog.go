package lakesql

import (
	"context"

	"github.com/thoas/go-funk"
	"gorm.io/gorm"
)

// TableKind classifies a catalog entry the way the engine reports it.
type TableKind string

const (
	TableKindManaged  TableKind = "MANAGED"
	TableKindExternal TableKind = "EXTERNAL"
	TableKindView     TableKind = "VIEW"
)

// Table is one catalog entry.
type Table struct {
	Name      string
	Database  string
	Kind      TableKind
	Temporary bool
}

// Catalog lists tables and views of the session's current database.
type Catalog struct {
	db *gorm.DB
}

type showTablesRow struct {
	Namespace   string `gorm:"column:namespace"`
	TableName   string `gorm:"column:tableName"`
	IsTemporary bool   `gorm:"column:isTemporary"`
}

type showViewsRow struct {
	Namespace   string `gorm:"column:namespace"`
	ViewName    string `gorm:"column:viewName"`
	IsTemporary bool   `gorm:"column:isTemporary"`
}

// ListTables returns the tables of the current database.
func (c Catalog) ListTables(ctx context.Context) ([]Table, error) {
	var rows []showTablesRow
	if err := c.db.WithContext(ctx).Raw("SHOW TABLES").Scan(&rows).Error; err != nil {
		return nil, err
	}

	tables := make([]Table, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, Table{
			Name:      row.TableName,
			Database:  row.Namespace,
			Kind:      TableKindManaged,
			Temporary: row.IsTemporary,
		})
	}
	return tables, nil
}

// ListViews returns the views of the current database.
func (c Catalog) ListViews(ctx context.Context) ([]Table, error) {
	var rows []showViewsRow
	if err := c.db.WithContext(ctx).Raw("SHOW VIEWS").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]Table, 0, len(rows))
	for _, row := range rows {
		views = append(views, Table{
			Name:      row.ViewName,
			Database:  row.Namespace,
			Kind:      TableKindView,
			Temporary: row.IsTemporary,
		})
	}
	return views, nil
}

// HasTable reports whether the current database holds a table with the
// given name.
func (c Catalog) HasTable(ctx context.Context, name string) (bool, error) {
	var rows []showTablesRow
	err := c.db.WithContext(ctx).Raw("SHOW TABLES LIKE " + quoteLiteral(name)).Scan(&rows).Error
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// TableNames returns the names of the managed tables among the given
// entries, preserving order.
func TableNames(tables []Table) []string {
	return names(tables, TableKindManaged)
}

// ViewNames returns the names of the views among the given entries,
// preserving order.
func ViewNames(tables []Table) []string {
	return names(tables, TableKindView)
}

func names(tables []Table, kind TableKind) []string {
	matching := funk.Filter(tables, func(table Table) bool {
		return table.Kind == kind
	}).([]Table)
	return funk.Map(matching, func(table Table) string {
		return table.Name
	}).([]string)
}
