package extsync

import (
	"context"
	"errors"
	"testing"

	catalogmodels "jammshop/internal/api/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	products []catalogmodels.Product
	listErr  error
	failOn   map[primitive.ObjectID]bool
	applied  map[primitive.ObjectID]Quote
}

func (f *fakeStore) ListExternal(context.Context) ([]catalogmodels.Product, error) {
	return f.products, f.listErr
}

func (f *fakeStore) ApplyQuote(_ context.Context, id primitive.ObjectID, price float64, stock int64) (catalogmodels.Product, error) {
	if f.failOn[id] {
		return catalogmodels.Product{}, errors.New("write failed")
	}
	if f.applied == nil {
		f.applied = map[primitive.ObjectID]Quote{}
	}
	f.applied[id] = Quote{Price: price, StockQuantity: stock}
	return catalogmodels.Product{ID: id, Price: price, StockQuantity: stock}, nil
}

type providerFunc func(ctx context.Context, ref ExternalRef) (Quote, error)

func (f providerFunc) Fetch(ctx context.Context, ref ExternalRef) (Quote, error) {
	return f(ctx, ref)
}

func TestRun_SkipsFailures(t *testing.T) {
	ok, fetchFail, writeFail := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	store := &fakeStore{
		products: []catalogmodels.Product{
			{ID: ok, ExternalSource: "jumia", ExternalID: "a", Price: 10},
			{ID: fetchFail, ExternalSource: "jumia", ExternalID: "b", Price: 20},
			{ID: writeFail, ExternalSource: "alibaba", ExternalID: "c", Price: 30},
		},
		failOn: map[primitive.ObjectID]bool{writeFail: true},
	}
	provider := providerFunc(func(_ context.Context, ref ExternalRef) (Quote, error) {
		if ref.ExternalID == "b" {
			return Quote{}, errors.New("provider down")
		}
		return Quote{Price: ref.Price + 1, StockQuantity: 3}, nil
	})

	res, err := NewSyncer(store, provider).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Processed: 3, Updated: 1, Failed: 2}, res)
	assert.Equal(t, map[primitive.ObjectID]Quote{ok: {Price: 11, StockQuantity: 3}}, store.applied)
}

func TestRun_ListError(t *testing.T) {
	store := &fakeStore{listErr: errors.New("store down")}
	_, err := NewSyncer(store, NewMockProvider(1)).Run(context.Background())
	assert.EqualError(t, err, "store down")
}

func TestRun_StopsOnCancel(t *testing.T) {
	store := &fakeStore{products: []catalogmodels.Product{{ID: primitive.NewObjectID()}, {ID: primitive.NewObjectID()}}}
	ctx, cancel := context.WithCancel(context.Background())
	provider := providerFunc(func(context.Context, ExternalRef) (Quote, error) {
		cancel()
		return Quote{Price: 1}, nil
	})

	res, err := NewSyncer(store, provider).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Processed)
}
