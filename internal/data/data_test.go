package data

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const championJSON = `{
  "type": "champion",
  "version": "14.23.1",
  "data": {
    "Ahri": {"id": "Ahri", "key": "103", "name": "Ahri", "tags": ["Mage", "Assassin"]},
    "MonkeyKing": {"id": "MonkeyKing", "key": "62", "name": "Wukong", "tags": ["Fighter"]}
  }
}`

func TestChampionCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "champion.json")
	require.NoError(t, os.WriteFile(path, []byte(championJSON), 0o644))

	c := NewChampionCatalog(path, "")
	ctx := context.Background()

	name, ok := c.NameByKey(ctx, 62)
	require.True(t, ok)
	assert.Equal(t, "Wukong", name)

	name, ok = c.NameByID(ctx, "monkeyking")
	require.True(t, ok)
	assert.Equal(t, "Wukong", name)

	_, ok = c.NameByKey(ctx, 9999)
	assert.False(t, ok)
}

func TestChampionCatalogFetchesOnce(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(championJSON))
	}))
	defer srv.Close()

	c := NewChampionCatalog(filepath.Join(t.TempDir(), "missing.json"), srv.URL)
	ctx := context.Background()

	name, ok := c.NameByKey(ctx, 103)
	require.True(t, ok)
	assert.Equal(t, "Ahri", name)
	_, _ = c.NameByKey(ctx, 62)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestChampionCatalogUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewChampionCatalog("", srv.URL)
	assert.Error(t, c.Load(context.Background()))

	_, ok := c.NameByKey(context.Background(), 103)
	assert.False(t, ok)
}

func TestStaticCatalog(t *testing.T) {
	c := NewStaticCatalog(ChampionInfo{ID: "Kaisa", Key: "145", Name: "Kai'Sa"})
	name, ok := c.NameByKey(context.Background(), 145)
	assert.True(t, ok)
	assert.Equal(t, "Kai'Sa", name)

	name, ok = c.NameByID(context.Background(), "Kaisa")
	assert.True(t, ok)
	assert.Equal(t, "Kai'Sa", name)
}

func TestChampionCatalogRetriesAfterFailure(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(championJSON))
	}))
	defer srv.Close()

	c := NewChampionCatalog("", srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := c.NameByKey(ctx, 103)
	assert.False(t, ok)

	_, ok = c.NameByKey(context.Background(), 103)
	assert.False(t, ok)

	name, ok := c.NameByKey(context.Background(), 103)
	require.True(t, ok)
	assert.Equal(t, "Ahri", name)

	_, _ = c.NameByID(context.Background(), "MonkeyKing")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestRuneTrees(t *testing.T) {
	assert.True(t, IsKeystone("Conqueror"))
	assert.False(t, IsKeystone("Triumph"))
	assert.Equal(t, TreeDomination, KeystoneTree("Electrocute"))
	assert.Equal(t, "Unknown", KeystoneTree("Triumph"))

	tree, ok := PerkTree(8214)
	assert.True(t, ok)
	assert.Equal(t, TreeSorcery, tree)

	tree, ok = PerkTree(8473)
	assert.True(t, ok)
	assert.Equal(t, TreeResolve, tree)

	_, ok = PerkTree(5005)
	assert.False(t, ok)
}

func TestChampionIconURL(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ahri", "Ahri"},
		{"zeri", "Zeri"},
		{"Wukong", "MonkeyKing"},
		{"Kai'Sa", "Kaisa"},
		{"Lee Sin", "LeeSin"},
		{"Tahm Kench", "TahmKench"},
		{"Nunu & Willump", "Nunu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChampionIconID(tt.name))
		})
	}

	assert.Equal(t,
		"https://ddragon.leagueoflegends.com/cdn/14.23.1/img/champion/MonkeyKing.png",
		ChampionIconURL("https://ddragon.leagueoflegends.com", "14.23.1", "Wukong"))
}
