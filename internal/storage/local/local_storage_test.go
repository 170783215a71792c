package local_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdesk/internal/port"
	"docdesk/internal/storage/local"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestLocalStorage_UploadDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := local.NewLocalStorage(filepath.Join(dir, "exports"))
	require.NoError(t, err)
	ctx := context.Background()

	out, err := store.Upload(ctx, port.UploadInput{Key: "acme/Quotation_Q1.xlsx", Body: strings.NewReader("data")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "acme", "Quotation_Q1.xlsx"), out.Location)

	got, err := os.ReadFile(out.Location)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	require.NoError(t, store.Delete(ctx, "acme/Quotation_Q1.xlsx"))
	_, err = os.Stat(out.Location)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Delete(ctx, "acme/Quotation_Q1.xlsx"))
}

func TestLocalStorage_FailedWriteLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	store, err := local.NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), port.UploadInput{Key: "x.xlsx", Body: failingReader{}})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := local.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../x.xlsx", "a/../../x.xlsx", ".."} {
		_, err := store.Upload(context.Background(), port.UploadInput{Key: key, Body: strings.NewReader("")})
		assert.Error(t, err, key)
	}
}

func TestNewLocalStorage_RequiresDir(t *testing.T) {
	_, err := local.NewLocalStorage("")
	assert.Error(t, err)
}
