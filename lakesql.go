// Package lakesql is a helper library for lakehouse SQL engines reachable
// through GORM. It wraps a gorm handle in a Session exposing catalog
// listing and dataset read/write helpers, renders Spark-SQL-style
// statement text for table and location writes, and ships a merge
// subpackage that builds MERGE INTO upsert statements.
package lakesql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sijms/go-ora/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config carries the options for opening a Session.
type Config struct {
	// Dialector selects the engine. Required by Open.
	Dialector gorm.Dialector
	// Logger overrides gorm's default SQL logger when set.
	Logger logger.Interface
}

// Session owns one engine handle and hands out the catalog and dataset
// surfaces bound to it.
type Session struct {
	db *gorm.DB
}

// Open connects to the engine described by the config and returns a
// Session over the connection.
func Open(config Config) (*Session, error) {
	if config.Dialector == nil {
		return nil, ErrMissingDialector
	}

	opts := &gorm.Config{}
	if config.Logger != nil {
		opts.Logger = config.Logger
	}

	db, err := gorm.Open(config.Dialector, opts)
	if err != nil {
		return nil, err
	}
	return &Session{db: db}, nil
}

// New wraps an already opened gorm handle.
func New(db *gorm.DB) *Session {
	return &Session{db: db}
}

// DB exposes the underlying gorm handle.
func (s *Session) DB() *gorm.DB {
	return s.db
}

// Catalog returns the catalog surface of this session.
func (s *Session) Catalog() Catalog {
	return Catalog{db: s.db}
}

// Dataset returns the dataset surface of this session.
func (s *Session) Dataset() Dataset {
	return Dataset{db: s.db}
}

// Exec submits rendered statement text to the engine. It is the execution
// seam for statements produced by the merge writer and the dataset
// builders.
func (s *Session) Exec(ctx context.Context, query string, values ...interface{}) error {
	return s.db.WithContext(ctx).Exec(query, values...).Error
}

// BuildUrl creates a connection URL from server, port, service, user,
// password and options, converting special characters to their URL form.
//
//goland:noinspection GoUnusedExportedFunction
func BuildUrl(server string, port int, service, user, password string, options map[string]string) string {
	return go_ora.BuildUrl(server, port, service, user, password, options)
}

// AddSessionParams sets connection session parameters on the underlying
// database when its driver supports them. Returns the keys that were set
// so they can be handed to DelSessionParams later.
func (s *Session) AddSessionParams(params map[string]string) (keys []string, err error) {
	sqlDB, err := s.sqlDB()
	if sqlDB == nil || err != nil {
		return nil, err
	}

	for key, value := range params {
		if key == "" || value == "" {
			continue
		}
		if err = go_ora.AddSessionParam(sqlDB, key, fmt.Sprintf("'%s'", value)); err != nil {
			return
		}
		keys = append(keys, key)
	}
	return
}

// DelSessionParams removes session parameters previously set with
// AddSessionParams.
func (s *Session) DelSessionParams(keys []string) {
	sqlDB, err := s.sqlDB()
	if sqlDB == nil || err != nil {
		return
	}

	for _, key := range keys {
		if key == "" {
			continue
		}
		go_ora.DelSessionParam(sqlDB, key)
	}
}

func (s *Session) sqlDB() (*sql.DB, error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	if _, ok := sqlDB.Driver().(*go_ora.OracleDriver); !ok {
		return nil, nil
	}
	return sqlDB, nil
}

// quoteLiteral renders a string value as a single-quoted SQL literal,
// escaping embedded single quotes by doubling them.
func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
