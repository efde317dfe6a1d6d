package lakesql

// SaveMode controls how a dataset writer behaves when the target table or
// location already holds data.
type SaveMode string

const (
	// SaveModeErrorIfExists fails when the target already exists. This is
	// the default.
	SaveModeErrorIfExists SaveMode = "error"
	// SaveModeAppend adds the written rows to existing data.
	SaveModeAppend SaveMode = "append"
	// SaveModeOverwrite replaces existing data with the written rows.
	SaveModeOverwrite SaveMode = "overwrite"
	// SaveModeIgnore leaves existing data untouched and skips the write.
	SaveModeIgnore SaveMode = "ignore"
)
