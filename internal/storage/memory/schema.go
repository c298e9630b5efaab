package memory

import "github.com/hashicorp/go-memdb"

const (
	tableUsers    = "users"
	tablePhotos   = "photos"
	tableLikes    = "likes"
	tableMessages = "messages"
	tableRegions  = "regions"
	tableCities   = "cities"
	tableGenders  = "genders"
	tableStatuses = "statuses"
)

func idIndex() *memdb.IndexSchema {
	return &memdb.IndexSchema{
		Name:         "id",
		Unique:       true,
		AllowMissing: false,
		Indexer:      &memdb.IntFieldIndex{Field: "ID"},
	}
}

func simpleTable(name string) *memdb.TableSchema {
	return &memdb.TableSchema{
		Name: name,
		Indexes: map[string]*memdb.IndexSchema{
			"id": idIndex(),
		},
	}
}

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		tableUsers: simpleTable(tableUsers),
		tablePhotos: {
			Name: tablePhotos,
			Indexes: map[string]*memdb.IndexSchema{
				"id": idIndex(),
				"userID": {
					Name:         "userID",
					Unique:       false,
					AllowMissing: false,
					Indexer:      &memdb.IntFieldIndex{Field: "UserID"},
				},
			},
		},
		tableLikes: {
			Name: tableLikes,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:         "id",
					Unique:       true,
					AllowMissing: false,
					Indexer: &memdb.CompoundIndex{
						Indexes: []memdb.Indexer{
							&memdb.IntFieldIndex{Field: "LikerID"},
							&memdb.IntFieldIndex{Field: "LikeeID"},
						},
					},
				},
			},
		},
		tableMessages: simpleTable(tableMessages),
		tableRegions:  simpleTable(tableRegions),
		tableCities:   simpleTable(tableCities),
		tableGenders:  simpleTable(tableGenders),
		tableStatuses: simpleTable(tableStatuses),
	},
}
