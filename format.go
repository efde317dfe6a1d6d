package lakesql

// Format identifies a data source format understood by the engine. The
// value is the identifier used in USING clauses and reader/writer format
// options.
type Format string

const (
	FormatDelta   Format = "delta"
	FormatIceberg Format = "iceberg"
	FormatParquet Format = "parquet"
	FormatCsv     Format = "csv"
	FormatText    Format = "text"
	FormatJson    Format = "json"
	FormatExcel   Format = "com.crealytics.spark.excel"
	FormatJdbc    Format = "jdbc"
)
