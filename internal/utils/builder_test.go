package querybuilder

import (
	"reflect"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name     string
		build    func() QueryBuilder
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name: "select with schema",
			build: func() QueryBuilder {
				return NewQueryBuilder("public").Select("id", "slug").From("games").
					Where("id = ?", 1)
			},
			wantSQL:  "SELECT id, slug FROM public.games WHERE id = ?",
			wantArgs: []interface{}{1},
		},
		{
			name: "select joins conditions with AND",
			build: func() QueryBuilder {
				return NewQueryBuilder("").Select("id").From("ratings").
					Where("game_id = ?", "g").
					And("player_fp = ?", "fp")
			},
			wantSQL:  "SELECT id FROM ratings WHERE game_id = ? AND player_fp = ?",
			wantArgs: []interface{}{"g", "fp"},
		},
		{
			name: "select without conditions",
			build: func() QueryBuilder {
				return NewQueryBuilder("").Select("1").From("games")
			},
			wantSQL: "SELECT 1 FROM games",
		},
		{
			name: "insert on conflict do nothing",
			build: func() QueryBuilder {
				return NewQueryBuilder("").Insert("id", "name").Into("bots").
					Values("a", "b").OnConflict("name").DoNothing()
			},
			wantSQL:  "INSERT INTO bots (id, name) VALUES (?, ?) ON CONFLICT (name) DO NOTHING",
			wantArgs: []interface{}{"a", "b"},
		},
		{
			name: "insert multiple rows",
			build: func() QueryBuilder {
				return NewQueryBuilder("s").Insert("k", "v").Into("t").
					Values(1, 2).Values(3, 4)
			},
			wantSQL:  "INSERT INTO s.t (k, v) VALUES (?, ?), (?, ?)",
			wantArgs: []interface{}{1, 2, 3, 4},
		},
		{
			name: "conflict target without action refused",
			build: func() QueryBuilder {
				return NewQueryBuilder("").Insert("id").Into("bots").
					Values("a").OnConflict("id")
			},
			wantSQL: "",
		},
		{
			name: "update orders columns",
			build: func() QueryBuilder {
				return NewQueryBuilder("").Update("games", UpdateData{"status": "live", "slug": "x"}).
					Where("id = ?", 9)
			},
			wantSQL:  "UPDATE games SET slug = ?, status = ? WHERE id = ?",
			wantArgs: []interface{}{"x", "live", 9},
		},
		{
			name: "insert arity mismatch",
			build: func() QueryBuilder {
				return NewQueryBuilder("").Insert("a", "b").Into("t").Values(1)
			},
			wantSQL: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.build().Build()
			if sql != tt.wantSQL {
				t.Fatalf("sql = %q, want %q", sql, tt.wantSQL)
			}
			if tt.wantArgs != nil && !reflect.DeepEqual(args, tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}
