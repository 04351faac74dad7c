// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pets_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/meterio/dexpet/api/pets"
	"github.com/meterio/dexpet/genesis"
	"github.com/meterio/dexpet/logdb"
	"github.com/meterio/dexpet/lvldb"
	"github.com/meterio/dexpet/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initServer(t *testing.T) *httptest.Server {
	kv, err := lvldb.NewMem()
	require.NoError(t, err)
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	n, err := node.New(kv, logDB, genesis.NewDevnet())
	require.NoError(t, err)

	router := mux.NewRouter()
	pets.New(n).Mount(router, "/pets")
	return httptest.NewServer(router)
}

func httpPost(t *testing.T, url string, obj interface{}) (int, []byte) {
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, body
}

func httpGet(t *testing.T, url string) (int, []byte) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, body
}

func TestPetLifecycle(t *testing.T) {
	ts := initServer(t)
	defer ts.Close()

	admin := genesis.DevAccounts()[0].Address
	bidder := genesis.DevAccounts()[1].Address

	status, body := httpPost(t, ts.URL+"/pets", map[string]interface{}{
		"origin":    admin.String(),
		"nonce":     1,
		"name":      "rex",
		"breed":     1,
		"color":     "brown",
		"basePrice": "50",
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, float64(1), result["seq"])

	status, body = httpGet(t, ts.URL+"/pets/1")
	require.Equal(t, http.StatusOK, status, string(body))
	var pet map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &pet))
	assert.Equal(t, "rex", pet["name"])
	assert.Equal(t, false, pet["sold"])

	status, body = httpPost(t, ts.URL+"/pets/1/list", map[string]interface{}{
		"origin":        admin.String(),
		"nonce":         2,
		"startingPrice": "100",
		"duration":      3600,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = httpGet(t, ts.URL+"/pets/1/auction")
	require.Equal(t, http.StatusOK, status, string(body))
	var pa map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &pa))
	assert.Equal(t, "open", pa["status"])

	status, body = httpPost(t, ts.URL+fmt.Sprintf("/pets/%v/bid", 1), map[string]interface{}{
		"origin": bidder.String(),
		"nonce":  3,
		"amount": "200",
	})
	require.Equal(t, http.StatusOK, status, string(body))
}

func TestGetPetNotFound(t *testing.T) {
	ts := initServer(t)
	defer ts.Close()

	status, _ := httpGet(t, ts.URL+"/pets/42")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBidTooLowReturnsBadRequest(t *testing.T) {
	ts := initServer(t)
	defer ts.Close()

	admin := genesis.DevAccounts()[0].Address
	bidder := genesis.DevAccounts()[1].Address

	status, body := httpPost(t, ts.URL+"/pets", map[string]interface{}{
		"origin": admin.String(),
		"nonce":  1,
		"name":   "rex",
	})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = httpPost(t, ts.URL+"/pets/1/list", map[string]interface{}{
		"origin":        admin.String(),
		"nonce":         2,
		"startingPrice": "100",
		"duration":      3600,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = httpPost(t, ts.URL+"/pets/1/bid", map[string]interface{}{
		"origin": bidder.String(),
		"nonce":  3,
		"amount": "100",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "bid too low")
}
