package lakesql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestCatalogListTables(t *testing.T) {
	session, mock := newMockSession(t)

	mock.ExpectQuery("SHOW TABLES").WillReturnRows(
		sqlmock.NewRows([]string{"namespace", "tableName", "isTemporary"}).
			AddRow("lh", "Sales", false).
			AddRow("lh", "SaleItem", false).
			AddRow("", "sales_stage", true),
	)

	tables, err := session.Catalog().ListTables(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Table{
		{Name: "Sales", Database: "lh", Kind: TableKindManaged},
		{Name: "SaleItem", Database: "lh", Kind: TableKindManaged},
		{Name: "sales_stage", Kind: TableKindManaged, Temporary: true},
	}, tables)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogListViews(t *testing.T) {
	session, mock := newMockSession(t)

	mock.ExpectQuery("SHOW VIEWS").WillReturnRows(
		sqlmock.NewRows([]string{"namespace", "viewName", "isTemporary"}).
			AddRow("lh", "V_TicketUsageInZone", false),
	)

	views, err := session.Catalog().ListViews(context.Background())
	require.NoError(t, err)
	require.Equal(t, []Table{
		{Name: "V_TicketUsageInZone", Database: "lh", Kind: TableKindView},
	}, views)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogHasTable(t *testing.T) {
	session, mock := newMockSession(t)

	mock.ExpectQuery("SHOW TABLES LIKE 'Sales'").WillReturnRows(
		sqlmock.NewRows([]string{"namespace", "tableName", "isTemporary"}).
			AddRow("lh", "Sales", false),
	)
	mock.ExpectQuery("SHOW TABLES LIKE 'Nope'").WillReturnRows(
		sqlmock.NewRows([]string{"namespace", "tableName", "isTemporary"}),
	)

	catalog := session.Catalog()
	ok, err := catalog.HasTable(context.Background(), "Sales")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = catalog.HasTable(context.Background(), "Nope")
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTableAndViewNames(t *testing.T) {
	entries := []Table{
		{Name: "Ticket", Kind: TableKindManaged},
		{Name: "V_TicketUsageInZone", Kind: TableKindView},
		{Name: "TicketUsage", Kind: TableKindManaged},
		{Name: "raw_events", Kind: TableKindExternal},
	}

	require.Equal(t, []string{"Ticket", "TicketUsage"}, TableNames(entries))
	require.Equal(t, []string{"V_TicketUsageInZone"}, ViewNames(entries))
	require.Empty(t, TableNames(nil))
}
