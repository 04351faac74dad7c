// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	key := []byte("key")
	value := []byte("value")

	has, err := db.Has(key)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, db.Put(key, value))

	got, err := db.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	require.NoError(t, db.Delete(key))

	_, err = db.Get(key)
	assert.True(t, db.IsNotFound(err))
}

func TestBatch(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	batch := db.NewBatch()
	require.NoError(t, batch.Put([]byte("k1"), []byte("v1")))
	require.NoError(t, batch.Put([]byte("k2"), []byte("v2")))
	assert.Equal(t, 2, batch.Len())
	require.NoError(t, batch.Write())

	v1, err := db.Get([]byte("k1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), v1)
	v2, err := db.Get([]byte("k2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), v2)
}
