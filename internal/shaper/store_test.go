package shaper

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(filepath.Join(dir, "raw_data"), filepath.Join(dir, "clean_data"))

	path, err := st.Save(series(v(3.5), nil, v(3.6)), "UNRATE", true, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "raw_data", "UNRATE_raw.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,value\n2020-01-01,3.5\n2020-02-01,\n2020-03-01,3.6\n", string(data))
}

func TestSaveJSON(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(filepath.Join(dir, "raw_data"), filepath.Join(dir, "clean_data"))

	path, err := st.Save(series(v(3.5), nil), "UNRATE", false, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "clean_data", "UNRATE_cleaned.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var rows []struct {
		Date  string   `json:"date"`
		Value *float64 `json:"value"`
	}
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "2020-01-01", rows[0].Date)
	require.NotNil(t, rows[0].Value)
	assert.Equal(t, 3.5, *rows[0].Value)
	assert.Nil(t, rows[1].Value)
}

func TestSaveIdempotent(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(filepath.Join(dir, "raw_data"), filepath.Join(dir, "clean_data"))
	s := series(v(1), v(2), v(3))

	path, err := st.Save(s, "GDP", true, FormatCSV)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	path2, err := st.Save(s, "GDP", true, FormatCSV)
	require.NoError(t, err)
	require.Equal(t, path, path2)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "second save must not accumulate")
}

func TestSaveUnknownFormat(t *testing.T) {
	st := NewStore(t.TempDir(), t.TempDir())
	_, err := st.Save(series(v(1)), "GDP", true, Format("parquet"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
