// Package iostore keeps imported farm records in a local SQLite file.
// Records are stored as GOB blobs keyed by kind, scope and key, so
// re-importing a record replaces the previous version.
package iostore

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/skippy/farm/pkg/records"
	_ "modernc.org/sqlite"
)

// Kind of stored record.
type Kind string

const (
	KindAnimal  Kind = "animal"
	KindPaddock Kind = "paddock"
	KindSoil    Kind = "soil"
	KindWeather Kind = "weather"
	KindNDVI    Kind = "ndvi"
)

// Kinds lists all record kinds.
var Kinds = []Kind{KindAnimal, KindPaddock, KindSoil, KindWeather, KindNDVI}

const schema = `CREATE TABLE IF NOT EXISTS records (
	kind TEXT NOT NULL,
	scope TEXT NOT NULL,
	key TEXT NOT NULL,
	payload BLOB NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (kind, scope, key)
)`

// Store is the local record store.
type Store struct {
	db   *sql.DB
	path string
	enc  gnfmt.GNgob
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	if err := gnsys.MakeDir(filepath.Dir(path)); err != nil {
		return nil, StoreOpenError(path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, StoreOpenError(path, err)
	}
	// one writer at a time for SQLite
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, StoreOpenError(path, err)
	}
	slog.Debug("Record store opened", "path", path)
	return &Store{db: db, path: path}, nil
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type entry struct {
	scope, key string
	value      any
}

func (s *Store) put(ctx context.Context, kind Kind, entries []entry) (int, error) {
	if s.db == nil {
		return 0, StoreNotOpenError()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, StoreWriteError(kind, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records
	(kind, scope, key, payload, updated_at) VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (kind, scope, key)
	DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`)
	if err != nil {
		return 0, StoreWriteError(kind, err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, v := range entries {
		payload, err := s.enc.Encode(v.value)
		if err != nil {
			return 0, StoreWriteError(kind, err)
		}
		_, err = stmt.ExecContext(ctx, string(kind), v.scope, v.key, payload, now)
		if err != nil {
			return 0, StoreWriteError(kind, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, StoreWriteError(kind, err)
	}
	return len(entries), nil
}

// load decodes all records of a kind and scope ordered by key. An empty
// scope matches all scopes.
func load[T any](
	ctx context.Context,
	s *Store,
	kind Kind,
	scope string,
) ([]T, error) {
	if s.db == nil {
		return nil, StoreNotOpenError()
	}
	q := `SELECT payload FROM records WHERE kind = ? ORDER BY scope, key`
	args := []any{string(kind)}
	if scope != "" {
		q = `SELECT payload FROM records WHERE kind = ? AND scope = ? ORDER BY key`
		args = append(args, scope)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, StoreReadError(kind, err)
	}
	defer rows.Close()

	var res []T
	for rows.Next() {
		var payload []byte
		if err = rows.Scan(&payload); err != nil {
			return nil, StoreReadError(kind, err)
		}
		var v T
		if err = s.enc.Decode(payload, &v); err != nil {
			return nil, StoreReadError(kind, err)
		}
		res = append(res, v)
	}
	if err = rows.Err(); err != nil {
		return nil, StoreReadError(kind, err)
	}
	return res, nil
}

// PutAnimals saves animal records. Records without an id are skipped.
func (s *Store) PutAnimals(
	ctx context.Context,
	animals []records.AnimalRecord,
) (int, error) {
	entries := make([]entry, 0, len(animals))
	for _, v := range animals {
		if v.AnimalID == "" {
			continue
		}
		entries = append(entries, entry{key: v.AnimalID, value: v})
	}
	return s.put(ctx, KindAnimal, entries)
}

// Herd loads all animals.
func (s *Store) Herd(ctx context.Context) (records.Herd, error) {
	res, err := load[records.AnimalRecord](ctx, s, KindAnimal, "")
	if err != nil {
		return nil, err
	}
	return records.NewHerd(res), nil
}

// PutPaddocks saves paddocks.
func (s *Store) PutPaddocks(
	ctx context.Context,
	paddocks []records.Paddock,
) (int, error) {
	entries := make([]entry, 0, len(paddocks))
	for _, v := range paddocks {
		if v.ID == "" {
			continue
		}
		entries = append(entries, entry{key: v.ID, value: v})
	}
	return s.put(ctx, KindPaddock, entries)
}

// Paddocks loads paddocks ordered by id.
func (s *Store) Paddocks(ctx context.Context) ([]records.Paddock, error) {
	return load[records.Paddock](ctx, s, KindPaddock, "")
}

// PutSoils saves soil profiles keyed by paddock.
func (s *Store) PutSoils(
	ctx context.Context,
	soils []records.SoilProfile,
) (int, error) {
	entries := make([]entry, 0, len(soils))
	for _, v := range soils {
		if v.PaddockID == "" {
			continue
		}
		entries = append(entries, entry{key: v.PaddockID, value: v})
	}
	return s.put(ctx, KindSoil, entries)
}

// Soils loads soil profiles by paddock id.
func (s *Store) Soils(
	ctx context.Context,
) (map[string]records.SoilProfile, error) {
	list, err := load[records.SoilProfile](ctx, s, KindSoil, "")
	if err != nil {
		return nil, err
	}
	res := make(map[string]records.SoilProfile, len(list))
	for _, v := range list {
		res[v.PaddockID] = v
	}
	return res, nil
}

// PutWeather saves daily weather. Series of different sources are kept
// apart and reconciled when read.
func (s *Store) PutWeather(
	ctx context.Context,
	weather []records.WeatherSample,
) (int, error) {
	entries := make([]entry, 0, len(weather))
	for _, v := range weather {
		v.Date = records.Day(v.Date)
		entries = append(entries, entry{
			scope: string(v.Source),
			key:   v.Date.Format(time.DateOnly),
			value: v,
		})
	}
	return s.put(ctx, KindWeather, entries)
}

// Weather loads daily weather of a source ordered by date.
func (s *Store) Weather(
	ctx context.Context,
	source records.WeatherSource,
) ([]records.WeatherSample, error) {
	if source == "" {
		return nil, nil
	}
	return load[records.WeatherSample](ctx, s, KindWeather, string(source))
}

// PutNDVI saves NDVI composites.
func (s *Store) PutNDVI(
	ctx context.Context,
	ndvi []records.NDVISample,
) (int, error) {
	entries := make([]entry, 0, len(ndvi))
	for _, v := range ndvi {
		if v.PaddockID == "" {
			continue
		}
		v.Date = records.Day(v.Date)
		entries = append(entries, entry{
			scope: v.PaddockID,
			key:   v.Date.Format(time.DateOnly),
			value: v,
		})
	}
	return s.put(ctx, KindNDVI, entries)
}

// NDVI loads composites of a paddock ordered by date.
func (s *Store) NDVI(
	ctx context.Context,
	paddockID string,
) ([]records.NDVISample, error) {
	if paddockID == "" {
		return nil, nil
	}
	return load[records.NDVISample](ctx, s, KindNDVI, paddockID)
}

// Counts returns the number of stored records of every kind.
func (s *Store) Counts(ctx context.Context) (map[Kind]int, error) {
	if s.db == nil {
		return nil, StoreNotOpenError()
	}
	res := make(map[Kind]int, len(Kinds))
	for _, k := range Kinds {
		res[k] = 0
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, count(*) FROM records GROUP BY kind`)
	if err != nil {
		return nil, StoreReadError("all", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int
		if err = rows.Scan(&kind, &n); err != nil {
			return nil, StoreReadError("all", err)
		}
		res[Kind(kind)] = n
	}
	return res, rows.Err()
}
