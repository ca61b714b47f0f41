//go:build e2e

package e2e_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/pokescout-backend/internal/adapter/postgres/testhelper"
)

func TestE2E_HealthAndReady(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := ts.call(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)

	resp, err := ts.Client.Get(ts.URL + "/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestE2E_FetchIsIdempotent(t *testing.T) {
	ts := setupTestServer(t)
	name := testhelper.UniqueName("charizard")

	status, first := ts.call(t, http.MethodPost, "/api/pokemon/fetch/"+strings.ToUpper(name), nil)
	require.Equal(t, http.StatusCreated, status)
	require.True(t, first.Success)
	created := decodePokemon(t, first.Data)
	assert.Equal(t, name, created.Name)

	status, second := ts.call(t, http.MethodPost, "/api/pokemon/fetch/"+name, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, second.Message, "already exists")
	existing := decodePokemon(t, second.Data)
	assert.Equal(t, created.ID, existing.ID)

	assert.Equal(t, 1, ts.Upstream.Hits(name), "second fetch must not reach upstream")
}

func TestE2E_FetchedRecordIsComplete(t *testing.T) {
	ts := setupTestServer(t)
	name := testhelper.UniqueName("moltres")

	status, _ := ts.call(t, http.MethodPost, "/api/pokemon/fetch/"+name, nil)
	require.Equal(t, http.StatusCreated, status)

	status, byName := ts.call(t, http.MethodGet, "/api/pokemon/name/"+name, nil)
	require.Equal(t, http.StatusOK, status)
	p := decodePokemon(t, byName.Data)

	require.Len(t, p.Types, 2)
	assert.Equal(t, "fire", p.Types[0].Name)
	assert.Equal(t, 1, p.Types[0].Slot)
	assert.Equal(t, "flying", p.Types[1].Name)
	assert.Len(t, p.Stats, 6)
	require.Len(t, p.Abilities, 2)
	assert.True(t, p.Abilities[1].IsHidden)

	status, byID := ts.call(t, http.MethodGet, fmt.Sprintf("/api/pokemon/%d", p.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, name, decodePokemon(t, byID.Data).Name)
}

func TestE2E_FetchFailures(t *testing.T) {
	ts := setupTestServer(t)

	t.Run("invalid name never reaches upstream", func(t *testing.T) {
		status, body := ts.call(t, http.MethodPost, "/api/pokemon/fetch/mr.mime", nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.False(t, body.Success)
		assert.Zero(t, ts.Upstream.Hits("mr.mime"))
	})

	t.Run("unknown upstream name", func(t *testing.T) {
		name := testhelper.UniqueName("bogus")
		status, body := ts.call(t, http.MethodPost, "/api/pokemon/fetch/"+name, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Contains(t, body.Error, name)
	})

	t.Run("invalid upstream data is not stored", func(t *testing.T) {
		name := testhelper.UniqueName("broken")
		status, body := ts.call(t, http.MethodPost, "/api/pokemon/fetch/"+name, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.NotEmpty(t, body.Details)

		status, _ = ts.call(t, http.MethodGet, "/api/pokemon/name/"+name, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestE2E_Batch(t *testing.T) {
	ts := setupTestServer(t)
	name := testhelper.UniqueName("pikachu")
	bogus := testhelper.UniqueName("bogus")

	status, body := ts.call(t, http.MethodPost, "/api/pokemon/fetch/batch",
		map[string]any{"names": []string{name, name, bogus}})
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, body.Results)

	assert.Equal(t, []string{name}, body.Results.Success)
	assert.Equal(t, []string{name}, body.Results.AlreadyExists)
	assert.Equal(t, []string{bogus}, body.Results.Failed)
	assert.Equal(t, 3, body.Results.Total)

	var stored int
	err := ts.Pool.QueryRow(context.Background(),
		"SELECT count(*) FROM pokemon WHERE lower(name) = $1", name).Scan(&stored)
	require.NoError(t, err)
	assert.Equal(t, 1, stored)
}

func TestE2E_BatchTooLarge(t *testing.T) {
	ts := setupTestServer(t)

	names := make([]string, 51)
	for i := range names {
		names[i] = fmt.Sprintf("oversize-%d", i)
	}

	status, body := ts.call(t, http.MethodPost, "/api/pokemon/fetch/batch", map[string]any{"names": names})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Error, "50")
	assert.Zero(t, ts.Upstream.Hits(names[0]))
}

func TestE2E_List(t *testing.T) {
	ts := setupTestServer(t)
	for _, prefix := range []string{"listed-a", "listed-b"} {
		status, _ := ts.call(t, http.MethodPost, "/api/pokemon/fetch/"+testhelper.UniqueName(prefix), nil)
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := ts.call(t, http.MethodGet, "/api/pokemon?limit=1&offset=0", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, body.Count)
	require.NotNil(t, body.Total)
	assert.Equal(t, 1, *body.Count)
	assert.GreaterOrEqual(t, *body.Total, 2)

	status, _ = ts.call(t, http.MethodGet, "/api/pokemon?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestE2E_DeleteCascades(t *testing.T) {
	ts := setupTestServer(t)
	keep := testhelper.UniqueName("keep")
	drop := testhelper.UniqueName("drop")

	for _, n := range []string{keep, drop} {
		status, _ := ts.call(t, http.MethodPost, "/api/pokemon/fetch/"+n, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	_, body := ts.call(t, http.MethodGet, "/api/pokemon/name/"+drop, nil)
	dropped := decodePokemon(t, body.Data)

	status, _ := ts.call(t, http.MethodDelete, fmt.Sprintf("/api/pokemon/%d", dropped.ID), nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = ts.call(t, http.MethodGet, fmt.Sprintf("/api/pokemon/%d", dropped.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)

	assert.Zero(t, countRows(t, ts.Pool, "pokemon_stat", dropped.ID))
	assert.Zero(t, countRows(t, ts.Pool, "pokemon_ability", dropped.ID))
	assert.Zero(t, countRows(t, ts.Pool, "pokemon_types", dropped.ID))

	// Shared types survive and the other Pokémon keeps them.
	status, body = ts.call(t, http.MethodGet, "/api/pokemon/name/"+keep, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decodePokemon(t, body.Data).Types, 2)

	status, _ = ts.call(t, http.MethodDelete, fmt.Sprintf("/api/pokemon/%d", dropped.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}
