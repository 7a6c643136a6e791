package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Estimation errors
	InvalidInputError
	DataGapError

	// Local store errors
	StoreOpenError
	StoreNotOpenError
	StoreReadError
	StoreWriteError

	// Import errors
	ImportDecodeError
	ImportKindError
	ImportEmptyError

	// Calibration errors
	CalibrationReadError
	CalibrationSeasonError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableCheckError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError

	// Archive errors
	ArchiveRunError
	ArchiveInsertError
	ArchiveQueryError

	// Report errors
	ReportSheetError
	ReportSaveError
)
