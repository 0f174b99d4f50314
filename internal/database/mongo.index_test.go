package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

type indexedModel struct {
	Slug      string `bson:"slug" index:"unique"`
	CreatedAt int64  `bson:"created_at" index:"single,order:-1"`
	Discount  int    `bson:"discount_pct,omitempty" index:"compound:rank_order,order:-1"`
	ProductID string `bson:"product_id" index:"compound:rank_order"`
	Ignored   string `bson:"-" index:"single"`
	Plain     string `bson:"plain"`
}

func TestIndexesFromModel(t *testing.T) {
	specs := IndexesFromModel(indexedModel{})

	assert.Len(t, specs, 3)
	assert.Equal(t, IndexSpec{Name: "slug_unique", Keys: bson.D{{Key: "slug", Value: 1}}, Unique: true}, specs[0])
	assert.Equal(t, IndexSpec{Name: "created_at_single", Keys: bson.D{{Key: "created_at", Value: -1}}}, specs[1])
	assert.Equal(t, "rank_order", specs[2].Name)
	assert.Equal(t, bson.D{{Key: "discount_pct", Value: -1}, {Key: "product_id", Value: 1}}, specs[2].Keys)
	assert.False(t, specs[2].Unique)
}

func TestParseIndexTag(t *testing.T) {
	cfgs := parseIndexTag("single,order:-1;compound:a_unique")
	assert.Len(t, cfgs, 2)
	assert.Equal(t, -1, parseOrder(cfgs[0]))
	assert.Equal(t, "a_unique", cfgs[1]["compound"])
	assert.Equal(t, 1, parseOrder(cfgs[1]))
}
