/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package track

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-track/pkg/config"
	"jinr.ru/greenlab/go-track/pkg/layers"
)

func TestApiStatus(t *testing.T) {
	stats := NewStats(layers.ProfileC)
	stats.CountError(testSource)

	s := NewApiServer(context.Background(), config.NewDefaultConfig(), stats)
	s.configureRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	snapshot := &StatsSnapshot{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), snapshot))
	assert.Equal(t, "c", snapshot.Profile)
	assert.Equal(t, uint64(1), snapshot.Datagrams)
	assert.Equal(t, uint64(1), snapshot.DecodeErrors)
	assert.Equal(t, testSource.String(), snapshot.LastSource)
}

func TestApiUnknownRoute(t *testing.T) {
	s := NewApiServer(context.Background(), config.NewDefaultConfig(), NewStats(layers.ProfileA))
	s.configureRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/reset", nil)
	rec := httptest.NewRecorder()
	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
