package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestConvertMongoError(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))
	assert.ErrorIs(t, ConvertMongoError(mongo.ErrNoDocuments), ErrNotFound)
	assert.Equal(t, StatusNotFound, StatusOf(ConvertMongoError(fmt.Errorf("find: %w", mongo.ErrNoDocuments))))

	// lỗi đã phân loại giữ nguyên
	assert.Same(t, ErrInvalidID, ConvertMongoError(ErrInvalidID))
}

func TestConvertMongoError_StoreMessagePassesThrough(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: `E11000 duplicate key error collection: jammshop.categories index: slug_unique dup key: { slug: "shoes" }`,
	}}}
	err := ConvertMongoError(dup)
	require.Error(t, err)
	assert.Equal(t, StatusInternalServerError, StatusOf(err))
	assert.Contains(t, err.Error(), "E11000 duplicate key error")
	assert.Contains(t, err.Error(), `slug: "shoes"`)

	err = ConvertMongoError(context.DeadlineExceeded)
	assert.Equal(t, StatusInternalServerError, StatusOf(err))
	assert.Equal(t, context.DeadlineExceeded.Error(), err.Error())

	err = ConvertMongoError(mongo.CommandError{Code: 2, Message: " $in needs an array ", Name: "BadValue"})
	assert.Equal(t, StatusInternalServerError, StatusOf(err))
	assert.Equal(t, "$in needs an array", err.Error())

	err = ConvertMongoError(errors.New("connection reset by peer"))
	assert.Equal(t, StatusInternalServerError, StatusOf(err))
	assert.Equal(t, "connection reset by peer", err.Error())
}
