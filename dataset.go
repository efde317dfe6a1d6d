package lakesql

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/lakekit/lakesql/merge"
)

// Dataset reads and writes datasets through the session's engine. Reads
// and writes are expressed as Spark-SQL statement text (temporary views,
// CTAS, INSERT) rendered from the fluent reader/writer configuration and
// submitted through gorm.
type Dataset struct {
	db *gorm.DB
}

// Read returns an unconfigured reader.
func (d Dataset) Read() *Reader {
	return &Reader{db: d.db}
}

// ReadParquet returns a reader preset for a parquet source at path.
func (d Dataset) ReadParquet(path string) *Reader {
	return d.Read().Format(FormatParquet).Path(path)
}

// ReadCsv returns a reader preset for a csv source at path.
func (d Dataset) ReadCsv(path string) *Reader {
	return d.Read().Format(FormatCsv).Path(path)
}

// ReadJson returns a reader preset for a json source at path.
func (d Dataset) ReadJson(path string) *Reader {
	return d.Read().Format(FormatJson).Path(path)
}

// Write returns a writer for the rows produced by the given query.
func (d Dataset) Write(query string) *Writer {
	return &Writer{db: d.db, query: query}
}

// MergeInto starts a merge statement targeting the given table. The
// rendered statement is executed through Session.Exec.
func (d Dataset) MergeInto(table string) *merge.Writer {
	return merge.Into(table)
}

// Reader configures one dataset read. Terminals either register the
// source as a temporary view or scan its rows into a destination.
type Reader struct {
	db      *gorm.DB
	path    string
	format  Format
	schema  string
	options map[string]string
}

// Path sets the source location.
func (r *Reader) Path(path string) *Reader {
	r.path = path
	return r
}

// Format sets the source format.
func (r *Reader) Format(format Format) *Reader {
	r.format = format
	return r
}

// Schema sets an explicit schema as a DDL column list, e.g.
// "organization STRING, website STRING".
func (r *Reader) Schema(ddl string) *Reader {
	r.schema = ddl
	return r
}

// Option sets one source option.
func (r *Reader) Option(key, value string) *Reader {
	if r.options == nil {
		r.options = map[string]string{}
	}
	r.options[key] = value
	return r
}

// Options sets several source options at once.
func (r *Reader) Options(options map[string]string) *Reader {
	for key, value := range options {
		r.Option(key, value)
	}
	return r
}

// SourceSQL renders the path-addressed source relation, e.g.
// "parquet.`Files/orders`". It requires format and path.
func (r *Reader) SourceSQL() (string, error) {
	if r.format == "" {
		return "", ErrMissingFormat
	}
	if r.path == "" {
		return "", ErrMissingPath
	}
	return fmt.Sprintf("%s.`%s`", r.format, r.path), nil
}

// CreateView registers the source as a temporary view under the given
// name, making it addressable from merge and write statements:
//
//	CREATE OR REPLACE TEMPORARY VIEW orders (id INT, qty INT)
//	USING csv
//	OPTIONS (header 'true', path 'Files/orders')
func (r *Reader) CreateView(ctx context.Context, name string) error {
	if r.format == "" {
		return ErrMissingFormat
	}

	var b strings.Builder
	b.WriteString("CREATE OR REPLACE TEMPORARY VIEW ")
	b.WriteString(name)
	if r.schema != "" {
		b.WriteString(" (")
		b.WriteString(r.schema)
		b.WriteString(")")
	}
	b.WriteString("\nUSING ")
	b.WriteString(string(r.format))

	options := r.options
	if r.path != "" {
		options = make(map[string]string, len(r.options)+1)
		for key, value := range r.options {
			options[key] = value
		}
		options["path"] = r.path
	}
	if clause := optionsClause(options); clause != "" {
		b.WriteString("\n")
		b.WriteString(clause)
	}

	return r.db.WithContext(ctx).Exec(b.String()).Error
}

// Into scans every row of the source into dest, which follows gorm's scan
// rules (a slice of structs or of maps).
func (r *Reader) Into(ctx context.Context, dest interface{}) error {
	source, err := r.SourceSQL()
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Raw("SELECT * FROM " + source).Scan(dest).Error
}

// Writer configures one dataset write. The rows come from the query the
// writer was created with; terminals materialize them into a table or a
// location.
type Writer struct {
	db          *gorm.DB
	query       string
	format      Format
	mode        SaveMode
	partitionBy []string
	options     map[string]string
}

// Format sets the storage format of the written data.
func (w *Writer) Format(format Format) *Writer {
	w.format = format
	return w
}

// Mode sets the save mode. The zero value behaves as SaveModeErrorIfExists.
func (w *Writer) Mode(mode SaveMode) *Writer {
	w.mode = mode
	return w
}

// PartitionBy sets the partition columns of the written data.
func (w *Writer) PartitionBy(columns ...string) *Writer {
	w.partitionBy = columns
	return w
}

// Option sets one storage option.
func (w *Writer) Option(key, value string) *Writer {
	if w.options == nil {
		w.options = map[string]string{}
	}
	w.options[key] = value
	return w
}

// Options sets several storage options at once.
func (w *Writer) Options(options map[string]string) *Writer {
	for key, value := range options {
		w.Option(key, value)
	}
	return w
}

// TableSQL renders the statement SaveAsTable would execute. The save mode
// picks the statement shape:
//
//	append         INSERT INTO t <query>
//	overwrite      CREATE OR REPLACE TABLE t ... AS <query>
//	ignore         CREATE TABLE IF NOT EXISTS t ... AS <query>
//	error (zero)   CREATE TABLE t ... AS <query>
func (w *Writer) TableSQL(table string) (string, error) {
	if strings.TrimSpace(w.query) == "" {
		return "", ErrEmptyQuery
	}

	if w.mode == SaveModeAppend {
		return fmt.Sprintf("INSERT INTO %s\n%s", table, w.query), nil
	}

	var b strings.Builder
	switch w.mode {
	case SaveModeOverwrite:
		b.WriteString("CREATE OR REPLACE TABLE ")
	case SaveModeIgnore:
		b.WriteString("CREATE TABLE IF NOT EXISTS ")
	default:
		b.WriteString("CREATE TABLE ")
	}
	b.WriteString(table)

	if w.format != "" {
		b.WriteString("\nUSING ")
		b.WriteString(string(w.format))
	}
	if len(w.partitionBy) > 0 {
		b.WriteString("\nPARTITIONED BY (")
		b.WriteString(strings.Join(w.partitionBy, ", "))
		b.WriteString(")")
	}
	if clause := optionsClause(w.options); clause != "" {
		b.WriteString("\n")
		b.WriteString(clause)
	}
	b.WriteString("\nAS ")
	b.WriteString(w.query)
	return b.String(), nil
}

// SaveAsTable materializes the query into the named table according to the
// configured save mode.
func (w *Writer) SaveAsTable(ctx context.Context, table string) error {
	query, err := w.TableSQL(table)
	if err != nil {
		return err
	}
	return w.db.WithContext(ctx).Exec(query).Error
}

// LocationSQL renders the statement Save would execute. Append inserts
// into the path-addressed relation; every other mode overwrites the
// directory.
func (w *Writer) LocationSQL(path string) (string, error) {
	if strings.TrimSpace(w.query) == "" {
		return "", ErrEmptyQuery
	}
	if w.format == "" {
		return "", ErrMissingFormat
	}

	if w.mode == SaveModeAppend {
		return fmt.Sprintf("INSERT INTO %s.`%s`\n%s", w.format, path, w.query), nil
	}

	var b strings.Builder
	b.WriteString("INSERT OVERWRITE DIRECTORY ")
	b.WriteString(quoteLiteral(path))
	b.WriteString("\nUSING ")
	b.WriteString(string(w.format))
	if clause := optionsClause(w.options); clause != "" {
		b.WriteString("\n")
		b.WriteString(clause)
	}
	b.WriteString("\n")
	b.WriteString(w.query)
	return b.String(), nil
}

// Save materializes the query at the given location.
func (w *Writer) Save(ctx context.Context, path string) error {
	query, err := w.LocationSQL(path)
	if err != nil {
		return err
	}
	return w.db.WithContext(ctx).Exec(query).Error
}

// optionsClause renders "OPTIONS (k 'v', ...)" with keys sorted so the
// statement text is stable.
func optionsClause(options map[string]string) string {
	if len(options) == 0 {
		return ""
	}

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+" "+quoteLiteral(options[key]))
	}
	return "OPTIONS (" + strings.Join(pairs, ", ") + ")"
}
