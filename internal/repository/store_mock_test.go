package repository

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockStore is a mock implementation of database.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Insert(ctx context.Context, coll string, doc any) (primitive.ObjectID, error) {
	args := m.Called(ctx, coll, doc)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockStore) InsertMany(ctx context.Context, coll string, docs []any) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, coll, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

func (m *MockStore) Find(ctx context.Context, coll string, filter any, out any) error {
	args := m.Called(ctx, coll, filter, out)
	return args.Error(0)
}

func (m *MockStore) FindOne(ctx context.Context, coll string, filter any, out any) (bool, error) {
	args := m.Called(ctx, coll, filter, out)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) FindSorted(ctx context.Context, coll string, filter any, sortField string, skip, limit int64, out any) error {
	args := m.Called(ctx, coll, filter, sortField, skip, limit, out)
	return args.Error(0)
}

func (m *MockStore) Update(ctx context.Context, coll string, filter any, patch any) (bool, error) {
	args := m.Called(ctx, coll, filter, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Upsert(ctx context.Context, coll string, filter any, set any, setOnInsert any) error {
	args := m.Called(ctx, coll, filter, set, setOnInsert)
	return args.Error(0)
}

func (m *MockStore) DeleteMany(ctx context.Context, coll string, filter any) (bool, error) {
	args := m.Called(ctx, coll, filter)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) Aggregate(ctx context.Context, coll string, pipeline any, out any) error {
	args := m.Called(ctx, coll, pipeline, out)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
